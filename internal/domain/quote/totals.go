package quote

import (
	"github.com/shopspring/decimal"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// CalculateTotals calcule les totaux du document à partir des champs bruts des
// lignes (quantité, prix unitaire, remise par ligne), jamais à partir des
// montants pré-calculés: c'est la source de vérité des totaux affichés et
// transmis pour validation. Les montants par ligne du normaliseur servent à
// l'affichage; les deux chemins doivent converger à l'arrondi près.
func CalculateTotals(q *entity.Quote) entity.DocumentTotals {
	subtotal := decimal.Zero
	for _, it := range q.Items {
		itemTotal := nonNegative(it.Quantity).Mul(nonNegative(it.UnitPriceHT))
		itemDiscount := itemTotal.Mul(clampPct(it.DiscountPct)).Div(hundred)
		subtotal = subtotal.Add(itemTotal.Sub(itemDiscount))
	}

	globalDiscount := subtotal.Mul(clampPct(q.GlobalDiscountPct)).Div(hundred)
	taxable := subtotal.Sub(globalDiscount)
	tax := taxable.Mul(clampPct(q.TaxRatePct)).Div(hundred)

	return entity.DocumentTotals{
		SubtotalHT:     subtotal.Round(2),
		GlobalDiscount: globalDiscount.Round(2),
		TaxAmount:      tax.Round(2),
		GrandTotalTTC:  taxable.Add(tax).Round(2),
	}
}
