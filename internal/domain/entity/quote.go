package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingMode base de facturation d'une ligne de devis.
type BillingMode string

const (
	BillingModeSurface BillingMode = "surface" // tarification à la surface découpée (m²)
	BillingModeFeuille BillingMode = "feuille" // tarification à la feuille de matière
	BillingModeService BillingMode = "service" // prestation forfaitaire (étude, pliage...)
)

// ParseBillingMode résout un mode de facturation depuis les valeurs héritées du
// formulaire ("m2", "area", "sheet"...). Valeur inconnue ou vide: surface.
func ParseBillingMode(s string) BillingMode {
	switch s {
	case "surface", "m2", "area":
		return BillingModeSurface
	case "feuille", "sheet":
		return BillingModeFeuille
	case "service", "forfait":
		return BillingModeService
	default:
		return BillingModeSurface
	}
}

// Party identité d'une partie du devis (client ou émetteur).
type Party struct {
	Name       string `json:"nom"`
	Address    string `json:"adresse,omitempty"`
	PostalCode string `json:"code_postal,omitempty"`
	City       string `json:"ville,omitempty"`
	Phone      string `json:"telephone,omitempty"`
	Email      string `json:"email,omitempty"`
	ICE        string `json:"ice,omitempty"` // identifiant commun de l'entreprise
	TaxID      string `json:"if,omitempty"`  // identifiant fiscal
	LogoURL    string `json:"logo_url,omitempty"`
}

// QuoteItem ligne de devis sous forme canonique brute: champs réconciliés et
// coercés, montants fournis par l'appelant conservés tels quels s'ils existent.
type QuoteItem struct {
	LineNumber  int             `json:"numero,omitempty"` // 0 = non assigné, numéroté au normalisage
	Designation string          `json:"designation"`
	BillingMode BillingMode     `json:"mode_facturation"`
	Quantity    decimal.Decimal `json:"quantite"`
	UnitPriceHT decimal.Decimal `json:"prix_unitaire_ht"`
	DiscountPct decimal.Decimal `json:"remise_pct"`

	// Facultatifs: nil = dériver au normalisage.
	TaxRatePct *decimal.Decimal `json:"taux_tva,omitempty"`
	TotalHT    *decimal.Decimal `json:"montant_ht,omitempty"`
	TaxAmount  *decimal.Decimal `json:"montant_tva,omitempty"`
	TotalTTC   *decimal.Decimal `json:"montant_ttc,omitempty"`
}

// QuoteLine ligne normalisée, immuable une fois produite: tous les montants
// sont présents, fournis ou dérivés.
type QuoteLine struct {
	LineNumber  int             `json:"numero"`
	Designation string          `json:"designation"`
	BillingMode BillingMode     `json:"mode_facturation"`
	Quantity    decimal.Decimal `json:"quantite"`
	UnitPriceHT decimal.Decimal `json:"prix_unitaire_ht"`
	DiscountPct decimal.Decimal `json:"remise_pct"`
	TaxRatePct  decimal.Decimal `json:"taux_tva"`
	TotalHT     decimal.Decimal `json:"montant_ht"`
	TaxAmount   decimal.Decimal `json:"montant_tva"`
	TotalTTC    decimal.Decimal `json:"montant_ttc"`
}

// Quote devis soumis au rendu: entête, parties, lignes brutes et remise globale.
type Quote struct {
	ID         string     `json:"id,omitempty"`
	Number     string     `json:"numero"` // référence lisible, ex. "DEV-202501-042"
	Date       time.Time  `json:"date"`
	ValidUntil *time.Time `json:"valide_jusqu_au,omitempty"`
	Currency   string     `json:"devise"` // code ISO, ex. "MAD"

	Customer Party `json:"client"`
	Company  Party `json:"entreprise"`

	Items []QuoteItem `json:"lignes"`

	GlobalDiscountPct decimal.Decimal `json:"remise_globale_pct"` // appliquée après les remises par ligne
	TaxRatePct        decimal.Decimal `json:"taux_tva_pct"`       // taux TVA par défaut du document

	PaymentTerms string `json:"conditions_paiement,omitempty"`
	Notes        string `json:"notes,omitempty"`

	DocumentURL string    `json:"document_url,omitempty"` // dernière URL produite par le service distant
	CreatedAt   time.Time `json:"cree_le,omitempty"`
}

// DocumentTotals totaux dérivés du document; jamais persistés.
type DocumentTotals struct {
	SubtotalHT     decimal.Decimal `json:"total_ht"`
	GlobalDiscount decimal.Decimal `json:"remise_globale"`
	TaxAmount      decimal.Decimal `json:"total_tva"`
	GrandTotalTTC  decimal.Decimal `json:"total_ttc"`
}
