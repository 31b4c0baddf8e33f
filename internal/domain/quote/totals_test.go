package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/quote"
)

func TestCalculateTotals_GlobalDiscount(t *testing.T) {
	q := &entity.Quote{
		Items: []entity.QuoteItem{{
			Designation: "Découpe série",
			Quantity:    dec("1"),
			UnitPriceHT: dec("1000"),
		}},
		GlobalDiscountPct: dec("10"),
		TaxRatePct:        dec("20"),
	}

	totals := quote.CalculateTotals(q)

	assert.True(t, totals.SubtotalHT.Equal(dec("1000")))
	assert.True(t, totals.GlobalDiscount.Equal(dec("100")), "10%% de 1000")
	assert.True(t, totals.TaxAmount.Equal(dec("180")), "20%% de 900")
	assert.True(t, totals.GrandTotalTTC.Equal(dec("1080")))
}

func TestCalculateTotals_LineDiscountsFeedSubtotal(t *testing.T) {
	q := &entity.Quote{
		Items: []entity.QuoteItem{
			{Quantity: dec("2"), UnitPriceHT: dec("100"), DiscountPct: dec("10")},
			{Quantity: dec("1"), UnitPriceHT: dec("50")},
		},
		TaxRatePct: dec("20"),
	}

	totals := quote.CalculateTotals(q)

	assert.True(t, totals.SubtotalHT.Equal(dec("230")), "180 + 50")
	assert.True(t, totals.GlobalDiscount.IsZero())
	assert.True(t, totals.TaxAmount.Equal(dec("46")))
	assert.True(t, totals.GrandTotalTTC.Equal(dec("276")))
}

func TestCalculateTotals_IgnoresProvidedLineAmounts(t *testing.T) {
	// Les montants pré-calculés servent à l'affichage des lignes; les totaux du
	// document se recalculent toujours depuis les champs bruts.
	bogus := dec("999999")
	q := &entity.Quote{
		Items: []entity.QuoteItem{{
			Quantity:    dec("1"),
			UnitPriceHT: dec("100"),
			TotalHT:     &bogus,
		}},
		TaxRatePct: dec("20"),
	}

	totals := quote.CalculateTotals(q)
	assert.True(t, totals.SubtotalHT.Equal(dec("100")))
	assert.True(t, totals.GrandTotalTTC.Equal(dec("120")))
}

func TestCalculateTotals_ConvergesWithNormalizedLines(t *testing.T) {
	// Les deux chemins de calcul (par ligne et par document) doivent converger
	// à l'arrondi près quand aucun montant n'est fourni.
	q := &entity.Quote{
		Items: []entity.QuoteItem{
			{Designation: "a", Quantity: dec("3.333"), UnitPriceHT: dec("7.77"), DiscountPct: dec("5")},
			{Designation: "b", Quantity: dec("1.5"), UnitPriceHT: dec("120.4")},
		},
		TaxRatePct: dec("20"),
	}

	totals := quote.CalculateTotals(q)

	sum := dec("0")
	for _, l := range quote.NormalizeItems(q.Items) {
		sum = sum.Add(l.TotalHT)
	}
	diff := totals.SubtotalHT.Sub(sum).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")),
		"écart %s entre somme des lignes (%s) et sous-total (%s)", diff, sum, totals.SubtotalHT)
}

func TestCalculateTotals_EmptyQuote(t *testing.T) {
	totals := quote.CalculateTotals(&entity.Quote{TaxRatePct: dec("20")})
	assert.True(t, totals.SubtotalHT.IsZero())
	assert.True(t, totals.GrandTotalTTC.IsZero())
}
