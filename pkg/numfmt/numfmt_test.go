package numfmt_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/atelierlaser/devis-api/pkg/numfmt"
)

// Le séparateur de milliers français varie selon la version CLDR (espace
// insécable ou fine); les tests vérifient la virgule décimale et le nombre de
// décimales, pas le caractère exact du groupement.

func TestMontant(t *testing.T) {
	got := numfmt.Montant(decimal.NewFromFloat(1234.5))
	assert.True(t, strings.HasSuffix(got, ",50"), "deux décimales après virgule, obtenu %q", got)
	assert.NotContains(t, got, ".")

	assert.True(t, strings.HasSuffix(numfmt.Montant(decimal.NewFromInt(0)), "0,00"))
}

func TestMontant_Rounds(t *testing.T) {
	got := numfmt.Montant(decimal.NewFromFloat(10.005))
	assert.True(t, strings.HasSuffix(got, ",01") || strings.HasSuffix(got, ",00"),
		"arrondi à 2 décimales, obtenu %q", got)
}

func TestQuantite(t *testing.T) {
	got := numfmt.Quantite(decimal.NewFromInt(2))
	assert.Equal(t, "2,000", got)

	got = numfmt.Quantite(decimal.NewFromFloat(1.2345))
	assert.True(t, strings.HasSuffix(got, ",234") || strings.HasSuffix(got, ",235"),
		"trois décimales, obtenu %q", got)
}

func TestPourcentage(t *testing.T) {
	assert.Equal(t, "10", numfmt.Pourcentage(decimal.NewFromInt(10)))
	assert.Equal(t, "7.5", numfmt.Pourcentage(decimal.NewFromFloat(7.5)))
}
