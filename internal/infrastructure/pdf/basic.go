// Package pdf implémente les rendus locaux du devis.
//
// Mise en page standard (A4, sans fond de page):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  ÉMETTEUR: raison sociale + adresse │  DEVIS N° + dates     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT: nom + adresse + contact                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLEAU: Désignation | Qté | PU HT | Remise | Total HT      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX: Total HT / Remise / TVA / TOTAL TTC                 │
//	│  Conditions de paiement + notes                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/pkg/numfmt"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ render.Renderer = (*BasicRenderer)(nil)

// BasicRenderer mise en page standard sans fond de page: positions fixes
// calées sur une page A4. Dernier niveau de repli de la chaîne de rendu.
type BasicRenderer struct{}

// NewBasicRenderer construit le renderer.
func NewBasicRenderer() *BasicRenderer { return &BasicRenderer{} }

// Render produit le PDF du devis. La date de création du document reprend la
// date du devis: le même devis produit toujours les mêmes octets.
func (r *BasicRenderer) Render(
	_ context.Context,
	q *entity.Quote,
	lines []entity.QuoteLine,
	totals entity.DocumentTotals,
	_ *entity.ZoneConfig,
	_ *entity.BackgroundAsset,
) (*render.RenderedDocument, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Devis "+q.Number, true).
		WithAuthor(q.Company.Name, true).
		WithCreationDate(q.Date).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, lr := range tableLineRows(lines) {
		m.AddRows(lr)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totals, q.Currency))

	for _, fr := range footerRows(q) {
		m.AddRows(fr)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: mise en page standard: %v", domain.ErrRender, err)
	}
	b := doc.GetBytes()
	return &render.RenderedDocument{Bytes: b, Pages: countPages(b), MIME: "application/pdf"}, nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: émetteur (gauche), titre DEVIS + numéro + dates (droite).
func headerRow(q *entity.Quote) core.Row {
	left := col.New(7).Add(
		text.New(q.Company.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New(joinNonEmpty(q.Company.Address, q.Company.PostalCode+" "+q.Company.City), props.Text{
			Size: 8, Top: 9, Color: colorGray,
		}),
		text.New(joinNonEmpty(iceLabel(q.Company.ICE), ifLabel(q.Company.TaxID)), props.Text{
			Size: 8, Top: 14, Color: colorGray,
		}),
	)

	rightTexts := []core.Component{
		text.New("DEVIS", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(q.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Date: "+q.Date.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	}
	if q.ValidUntil != nil {
		rightTexts = append(rightTexts, text.New(
			"Valable jusqu'au: "+q.ValidUntil.Format("02/01/2006"),
			props.Text{Size: 8, Align: align.Right, Top: 19, Color: colorGray},
		))
	}

	return row.New(24).Add(left, col.New(5).Add(rightTexts...))
}

// customerRow: bloc client.
func customerRow(q *entity.Quote) core.Row {
	c := q.Customer
	contact := joinNonEmpty(c.Phone, c.Email)
	addr := joinNonEmpty(c.Address, c.PostalCode+" "+c.City)
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(joinNonEmpty(addr, contact, iceLabel(c.ICE)), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: entête du tableau des lignes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Désignation", 5, align.Left),
		h("Qté", 2, align.Right),
		h("PU HT", 2, align.Right),
		h("Remise", 1, align.Right),
		h("Total HT", 2, align.Right),
	)
}

// tableLineRows: une ligne de tableau par ligne normalisée.
// Quantités à 3 décimales, montants à 2 (tarification surfacique).
func tableLineRows(lines []entity.QuoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, ln := range lines {
		discount := ""
		if ln.DiscountPct.IsPositive() {
			discount = numfmt.Pourcentage(ln.DiscountPct) + "%"
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				ln.Designation,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				numfmt.Quantite(ln.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				numfmt.Montant(ln.UnitPriceHT),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				discount,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				numfmt.Montant(ln.TotalHT),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloc des totaux aligné à droite, TTC en évidence.
func totalsRow(t entity.DocumentTotals, currency string) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL TTC:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(numfmt.Montant(t.GrandTotalTTC)+" "+currency, props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	})

	labels := []core.Component{label("Total HT:")}
	values := []core.Component{value(numfmt.Montant(t.SubtotalHT) + " " + currency)}
	if t.GlobalDiscount.IsPositive() {
		labels = append(labels, label("Remise globale:"))
		values = append(values, value("-"+numfmt.Montant(t.GlobalDiscount)+" "+currency))
	}
	labels = append(labels, label("TVA:"), grandLabel)
	values = append(values, value(numfmt.Montant(t.TaxAmount)+" "+currency), grandValue)

	return row.New(30).Add(
		col.New(5),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerRows: conditions de paiement et notes, seulement si renseignées.
func footerRows(q *entity.Quote) []core.Row {
	var rows []core.Row
	if q.PaymentTerms != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New("Conditions de paiement", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}))),
			row.New(6).Add(col.New(12).Add(text.New(q.PaymentTerms, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}))),
		)
	}
	if q.Notes != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New("Notes", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}))),
			row.New(6).Add(col.New(12).Add(text.New(q.Notes, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}))),
		)
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func iceLabel(ice string) string {
	if ice == "" {
		return ""
	}
	return "ICE: " + ice
}

func ifLabel(taxID string) string {
	if taxID == "" {
		return ""
	}
	return "IF: " + taxID
}

// joinNonEmpty concatène les fragments non vides avec un séparateur lisible.
func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if out != "" {
			out += "   |   "
		}
		out += p
	}
	return out
}
