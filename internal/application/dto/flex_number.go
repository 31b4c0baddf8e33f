package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FlexNumber champ numérique tolérant: accepte un nombre JSON, une chaîne
// numérique ("12.5", "12,5") ou null. Une valeur absente ou illisible n'est pas
// une erreur; elle est simplement marquée invalide et l'appelant choisit la
// valeur par défaut via Or. C'est la coercition sûre exigée par la politique de
// tolérance du formulaire.
type FlexNumber struct {
	value decimal.Decimal
	valid bool
}

// Flex construit un FlexNumber valide (utilisé par les tests et la sérialisation).
func Flex(d decimal.Decimal) FlexNumber {
	return FlexNumber{value: d, valid: true}
}

// UnmarshalJSON ne retourne jamais d'erreur pour une valeur numérique mal
// formée: dégradation silencieuse en valeur absente.
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = FlexNumber{}
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ".")) // saisie française "12,5"
	if s == "" {
		*n = FlexNumber{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		*n = FlexNumber{}
		return nil
	}
	*n = FlexNumber{value: d, valid: true}
	return nil
}

// MarshalJSON restitue la valeur numérique, null si absente.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(n.value.String()), nil
}

// Valid indique si une valeur numérique lisible a été fournie.
func (n FlexNumber) Valid() bool { return n.valid }

// Or renvoie la valeur fournie, sinon la valeur par défaut.
func (n FlexNumber) Or(def decimal.Decimal) decimal.Decimal {
	if n.valid {
		return n.value
	}
	return def
}

// Ptr renvoie la valeur sous forme de pointeur, nil si absente.
func (n FlexNumber) Ptr() *decimal.Decimal {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}
