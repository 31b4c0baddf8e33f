// Package quote porte la logique métier du devis: normalisation des lignes,
// calcul des totaux et validation avant génération.
package quote

import (
	"github.com/shopspring/decimal"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)

	// DefaultTaxRatePct taux de TVA appliqué quand la ligne n'en précise aucun.
	DefaultTaxRatePct = decimal.NewFromInt(20)
)

// NormalizeItems convertit les lignes brutes en forme canonique rendue.
//
// Politique "fournir prime sur dériver": un montant transmis par l'appelant est
// conservé tel quel (les devis historiques font foi), le recalcul n'intervient
// que pour les montants absents. Les montants dérivés sont arrondis à 3
// décimales, cohérent avec la tarification surfacique de l'atelier.
//
// Tolérance volontaire: aucune erreur n'est levée pour une ligne mal formée,
// les champs numériques illisibles retombent sur leurs valeurs par défaut.
// Revers assumé: une erreur de saisie réelle peut passer inaperçue.
func NormalizeItems(items []entity.QuoteItem) []entity.QuoteLine {
	lines := make([]entity.QuoteLine, 0, len(items))
	for i, it := range items {
		num := it.LineNumber
		if num <= 0 {
			num = i + 1
		}

		qty := nonNegative(it.Quantity)
		price := nonNegative(it.UnitPriceHT)
		discount := clampPct(it.DiscountPct)

		taxRate := DefaultTaxRatePct
		if it.TaxRatePct != nil {
			taxRate = clampPct(*it.TaxRatePct)
		}

		totalHT := deriveOr(it.TotalHT, func() decimal.Decimal {
			net := hundred.Sub(discount).Div(hundred)
			return qty.Mul(price).Mul(net).Round(3)
		})
		taxAmount := deriveOr(it.TaxAmount, func() decimal.Decimal {
			return totalHT.Mul(taxRate).Div(hundred).Round(3)
		})
		totalTTC := deriveOr(it.TotalTTC, func() decimal.Decimal {
			return totalHT.Add(taxAmount).Round(3)
		})

		lines = append(lines, entity.QuoteLine{
			LineNumber:  num,
			Designation: it.Designation,
			BillingMode: it.BillingMode,
			Quantity:    qty,
			UnitPriceHT: price,
			DiscountPct: discount,
			TaxRatePct:  taxRate,
			TotalHT:     totalHT,
			TaxAmount:   taxAmount,
			TotalTTC:    totalTTC,
		})
	}
	return lines
}

// deriveOr renvoie le montant fourni s'il existe, sinon le dérive.
func deriveOr(provided *decimal.Decimal, derive func() decimal.Decimal) decimal.Decimal {
	if provided != nil {
		return *provided
	}
	return derive()
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// clampPct borne un pourcentage à [0, 100].
func clampPct(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}
