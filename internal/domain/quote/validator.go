package quote

import (
	"fmt"
	"strings"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// ValidationError erreur de validation rattachée à un champ.
type ValidationError struct {
	Field   string `json:"champ"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	return e.Field + ": " + e.Message
}

// ValidateQuote vérifie les champs requis avant toute génération.
// Renvoie une liste vide si le devis est exploitable; ne panique jamais.
// L'appelant doit tester la vacuité avant de poursuivre.
func ValidateQuote(q *entity.Quote) []ValidationError {
	if q == nil {
		return []ValidationError{{Field: "devis", Message: "document absent"}}
	}

	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if strings.TrimSpace(q.Number) == "" {
		add("numero", "numéro de devis requis")
	}
	if q.Date.IsZero() {
		add("date", "date du devis requise")
	}
	if strings.TrimSpace(q.Customer.Name) == "" {
		add("client.nom", "nom du client requis")
	}
	if strings.TrimSpace(q.Company.Name) == "" {
		add("entreprise.nom", "nom de l'émetteur requis")
	}
	if len(q.Items) == 0 {
		add("lignes", "au moins une ligne est requise")
	}

	for i, it := range q.Items {
		prefix := fmt.Sprintf("lignes[%d]", i)
		if strings.TrimSpace(it.Designation) == "" {
			add(prefix+".designation", "désignation requise")
		}
		if !it.Quantity.IsPositive() {
			add(prefix+".quantite", "quantité strictement positive requise")
		}
		if it.UnitPriceHT.IsNegative() {
			add(prefix+".prix_unitaire_ht", "prix unitaire négatif interdit")
		}
	}

	return errs
}
