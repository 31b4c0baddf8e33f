// Package numfmt formate les nombres affichés sur les documents.
// Convention française: groupement des milliers, virgule décimale.
// Les quantités s'affichent à 3 décimales (tarification à la surface),
// les montants monétaires à 2.
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// Montant formate un montant monétaire à 2 décimales. Ex: 1234.5 -> "1 234,50".
func Montant(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Quantite formate une quantité à 3 décimales. Ex: 2 -> "2,000".
func Quantite(d decimal.Decimal) string {
	f, _ := d.Round(3).Float64()
	return printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(3), number.MaxFractionDigits(3)))
}

// Pourcentage formate un pourcentage sans décimales superflues. Ex: 10 -> "10".
func Pourcentage(d decimal.Decimal) string {
	return d.Truncate(2).String()
}
