package quote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/quote"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Dérivation des montants
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeItems_DeriveAmounts(t *testing.T) {
	items := []entity.QuoteItem{{
		Designation: "Découpe plexiglas 3mm",
		BillingMode: entity.BillingModeSurface,
		Quantity:    dec("2"),
		UnitPriceHT: dec("100"),
		DiscountPct: dec("10"),
	}}

	lines := quote.NormalizeItems(items)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, 1, l.LineNumber, "numéro de ligne attribué en séquence")
	assert.True(t, l.TotalHT.Equal(dec("180")), "2 × 100 × 0.90 = 180, obtenu %s", l.TotalHT)
	assert.True(t, l.TaxAmount.Equal(dec("36")), "180 × 20%% = 36, obtenu %s", l.TaxAmount)
	assert.True(t, l.TotalTTC.Equal(dec("216")), "180 + 36 = 216, obtenu %s", l.TotalTTC)
	assert.True(t, l.TaxRatePct.Equal(dec("20")), "TVA par défaut à 20%%")
}

func TestNormalizeItems_ProvidedAmountsWin(t *testing.T) {
	// Un devis historique porte des montants qui ne correspondent plus au
	// recalcul; ils font foi et sont conservés tels quels.
	items := []entity.QuoteItem{{
		Designation: "Gravure logo",
		Quantity:    dec("2"),
		UnitPriceHT: dec("100"),
		TotalHT:     decPtr("175.5"),
		TaxAmount:   decPtr("35.1"),
		TotalTTC:    decPtr("210.6"),
	}}

	lines := quote.NormalizeItems(items)
	require.Len(t, lines, 1)

	assert.True(t, lines[0].TotalHT.Equal(dec("175.5")))
	assert.True(t, lines[0].TaxAmount.Equal(dec("35.1")))
	assert.True(t, lines[0].TotalTTC.Equal(dec("210.6")))
}

func TestNormalizeItems_PartialProvided(t *testing.T) {
	// Seul le HT est fourni: la TVA et le TTC se dérivent du HT fourni, pas du
	// recalcul quantité × prix.
	items := []entity.QuoteItem{{
		Designation: "Découpe MDF",
		Quantity:    dec("1"),
		UnitPriceHT: dec("500"),
		TotalHT:     decPtr("450"),
	}}

	lines := quote.NormalizeItems(items)
	require.Len(t, lines, 1)

	assert.True(t, lines[0].TotalHT.Equal(dec("450")))
	assert.True(t, lines[0].TaxAmount.Equal(dec("90")), "TVA dérivée du HT fourni")
	assert.True(t, lines[0].TotalTTC.Equal(dec("540")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tolérance aux entrées dégradées
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeItems_ClampsAndDefaults(t *testing.T) {
	taxRate := dec("150") // hors borne, ramené à 100
	items := []entity.QuoteItem{
		{
			Designation: "Quantité négative",
			Quantity:    dec("-3"),
			UnitPriceHT: dec("10"),
		},
		{
			Designation: "Remise hors borne",
			Quantity:    dec("1"),
			UnitPriceHT: dec("100"),
			DiscountPct: dec("250"),
			TaxRatePct:  &taxRate,
		},
	}

	lines := quote.NormalizeItems(items)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].Quantity.IsZero(), "quantité négative ramenée à zéro")
	assert.True(t, lines[0].TotalHT.IsZero())

	assert.True(t, lines[1].DiscountPct.Equal(dec("100")), "remise bornée à 100")
	assert.True(t, lines[1].TotalHT.IsZero(), "remise totale, rien à facturer")
	assert.True(t, lines[1].TaxRatePct.Equal(dec("100")), "taux de TVA borné à 100")
}

func TestNormalizeItems_LineNumbers(t *testing.T) {
	items := []entity.QuoteItem{
		{Designation: "a", LineNumber: 7, Quantity: dec("1"), UnitPriceHT: dec("1")},
		{Designation: "b", Quantity: dec("1"), UnitPriceHT: dec("1")},
	}

	lines := quote.NormalizeItems(items)
	require.Len(t, lines, 2)
	assert.Equal(t, 7, lines[0].LineNumber, "numéro fourni conservé")
	assert.Equal(t, 2, lines[1].LineNumber, "numéro absent attribué par position")
}

func TestNormalizeItems_Empty(t *testing.T) {
	assert.Empty(t, quote.NormalizeItems(nil))
}
