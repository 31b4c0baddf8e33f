package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/quote"
)

// RawQuoteItem ligne de devis telle que reçue du client HTTP: union explicite
// des formes héritées. Les anciens écrans envoient libelle/mode/qty, les
// nouveaux designation/mode_facturation/quantite; les champs numériques
// arrivent en nombre ou en chaîne. ToEntity est la projection pure vers la
// forme canonique: la politique "accepter les formes héritées" reste ainsi
// auditable et testable isolément.
type RawQuoteItem struct {
	LineNumber *int `json:"numero,omitempty"`

	Designation string `json:"designation,omitempty"`
	Libelle     string `json:"libelle,omitempty"` // alias hérité de designation

	ModeFacturation string `json:"mode_facturation,omitempty"`
	Mode            string `json:"mode,omitempty"` // alias hérité de mode_facturation

	Quantity FlexNumber `json:"quantite,omitempty"`
	Qty      FlexNumber `json:"qty,omitempty"` // alias hérité de quantite

	UnitPriceHT FlexNumber `json:"prix_unitaire_ht,omitempty"`
	DiscountPct FlexNumber `json:"remise_pct,omitempty"`
	TaxRatePct  FlexNumber `json:"taux_tva,omitempty"`

	// Montants pré-calculés éventuels (devis persistés); prioritaires sur le recalcul.
	TotalHT   FlexNumber `json:"montant_ht,omitempty"`
	TaxAmount FlexNumber `json:"montant_tva,omitempty"`
	TotalTTC  FlexNumber `json:"montant_ttc,omitempty"`
}

// ToEntity projette la ligne brute vers la forme canonique.
func (r RawQuoteItem) ToEntity() entity.QuoteItem {
	designation := r.Designation
	if designation == "" {
		designation = r.Libelle
	}
	mode := r.ModeFacturation
	if mode == "" {
		mode = r.Mode
	}
	qty := r.Quantity
	if !qty.Valid() {
		qty = r.Qty
	}
	num := 0
	if r.LineNumber != nil {
		num = *r.LineNumber
	}

	return entity.QuoteItem{
		LineNumber:  num,
		Designation: designation,
		BillingMode: entity.ParseBillingMode(mode),
		Quantity:    qty.Or(decimal.Zero),
		UnitPriceHT: r.UnitPriceHT.Or(decimal.Zero),
		DiscountPct: r.DiscountPct.Or(decimal.Zero),
		TaxRatePct:  r.TaxRatePct.Ptr(),
		TotalHT:     r.TotalHT.Ptr(),
		TaxAmount:   r.TaxAmount.Ptr(),
		TotalTTC:    r.TotalTTC.Ptr(),
	}
}

// PartyDTO partie du devis (client ou émetteur).
type PartyDTO struct {
	Name       string `json:"nom"`
	Address    string `json:"adresse,omitempty"`
	PostalCode string `json:"code_postal,omitempty"`
	City       string `json:"ville,omitempty"`
	Phone      string `json:"telephone,omitempty"`
	Email      string `json:"email,omitempty"`
	ICE        string `json:"ice,omitempty"`
	TaxID      string `json:"if,omitempty"`
	LogoURL    string `json:"logo_url,omitempty"`
}

func (p PartyDTO) toEntity() entity.Party {
	return entity.Party{
		Name:       p.Name,
		Address:    p.Address,
		PostalCode: p.PostalCode,
		City:       p.City,
		Phone:      p.Phone,
		Email:      p.Email,
		ICE:        p.ICE,
		TaxID:      p.TaxID,
		LogoURL:    p.LogoURL,
	}
}

// QuoteRequest corps de création ou de génération d'un devis.
type QuoteRequest struct {
	Number     string `json:"numero"`
	Date       string `json:"date"`                      // "2006-01-02"
	ValidUntil string `json:"valide_jusqu_au,omitempty"` // idem
	Currency   string `json:"devise,omitempty"`

	Customer PartyDTO `json:"client"`
	Company  PartyDTO `json:"entreprise"`

	Items []RawQuoteItem `json:"lignes"`

	GlobalDiscountPct FlexNumber `json:"remise_globale_pct,omitempty"`
	TaxRatePct        FlexNumber `json:"taux_tva_pct,omitempty"`

	PaymentTerms string `json:"conditions_paiement,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ToEntity projette la requête vers l'entité devis. Les dates illisibles
// restent à zéro et sont signalées par le validateur, pas ici.
func (r QuoteRequest) ToEntity() *entity.Quote {
	date, _ := time.Parse("2006-01-02", r.Date)

	var validUntil *time.Time
	if v, err := time.Parse("2006-01-02", r.ValidUntil); err == nil && r.ValidUntil != "" {
		validUntil = &v
	}

	currency := r.Currency
	if currency == "" {
		currency = "MAD"
	}

	items := make([]entity.QuoteItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.ToEntity())
	}

	return &entity.Quote{
		Number:            r.Number,
		Date:              date,
		ValidUntil:        validUntil,
		Currency:          currency,
		Customer:          r.Customer.toEntity(),
		Company:           r.Company.toEntity(),
		Items:             items,
		GlobalDiscountPct: r.GlobalDiscountPct.Or(decimal.Zero),
		TaxRatePct:        r.TaxRatePct.Or(quote.DefaultTaxRatePct),
		PaymentTerms:      r.PaymentTerms,
		Notes:             r.Notes,
	}
}

// GenerateRequest options de génération PDF.
type GenerateRequest struct {
	// Quote corps du devis pour la génération sans persistance; absent quand la
	// génération part d'un devis stocké.
	Quote *QuoteRequest `json:"devis,omitempty"`
	// TemplateID gabarit du service distant.
	TemplateID string `json:"template_id,omitempty"`
	// Background data URI (data:<mime>;base64,...) d'une image PNG/JPEG ou d'un
	// PDF existant, 10 Mo maximum.
	Background string `json:"fond_page,omitempty"`
}

// QuoteResponse devis enrichi des lignes normalisées et des totaux calculés.
type QuoteResponse struct {
	*entity.Quote
	Lines  []entity.QuoteLine    `json:"lignes_normalisees"`
	Totals entity.DocumentTotals `json:"totaux"`
}

// NewQuoteResponse assemble la réponse: les totaux sont toujours recalculés
// depuis les champs bruts (source de vérité), les lignes normalisées servent à
// l'affichage.
func NewQuoteResponse(q *entity.Quote) QuoteResponse {
	return QuoteResponse{
		Quote:  q,
		Lines:  quote.NormalizeItems(q.Items),
		Totals: quote.CalculateTotals(q),
	}
}
