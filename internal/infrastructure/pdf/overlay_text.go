package pdf

import (
	"bytes"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/pkg/numfmt"
)

// placedText fragment de texte positionné en coordonnées page, origine en bas
// à gauche (convention PDF), unités en points.
type placedText struct {
	X, Y float64
	Size float64
	Bold bool
	Text string
}

const (
	overlayLineSpacing = 14.0 // interligne des blocs empilés
	overlayRowHeight   = 16.0 // hauteur d'une ligne du tableau
	overlayLinesWidth  = 515.0
)

// overlayTexts assemble les fragments à superposer, dans l'ordre de dessin:
// émetteur, numéro, date, bloc client, lignes, totaux.
func overlayTexts(
	q *entity.Quote,
	lines []entity.QuoteLine,
	totals entity.DocumentTotals,
	zones *entity.ZoneConfig,
) []placedText {
	if zones == nil {
		zones = entity.DefaultZoneConfig()
	}
	var out []placedText
	put := func(x, y, size float64, bold bool, s string) {
		if s == "" {
			return
		}
		out = append(out, placedText{X: x, Y: y, Size: size, Bold: bold, Text: s})
	}
	// stack empile des fragments verticalement en sautant les champs absents.
	stack := func(z entity.Zone, size float64, firstBold bool, parts ...string) {
		y := z.Y
		bold := firstBold
		for _, p := range parts {
			if p == "" {
				continue
			}
			put(z.X, y, size, bold, p)
			y -= overlayLineSpacing
			bold = false
		}
	}

	// Émetteur
	stack(zones.Entreprise, 10, true,
		q.Company.Name,
		q.Company.Address,
		cityLine(q.Company.PostalCode, q.Company.City),
		iceLabel(q.Company.ICE),
		ifLabel(q.Company.TaxID),
	)

	// Numéro et date du document
	put(zones.Numero.X, zones.Numero.Y, 11, true, "Devis "+q.Number)
	put(zones.Date.X, zones.Date.Y, 9, false, q.Date.Format("02/01/2006"))

	// Bloc client: nom, adresse, code postal + ville, téléphone. Chaque champ
	// seulement s'il est renseigné.
	stack(zones.Client, 9, true,
		q.Customer.Name,
		q.Customer.Address,
		cityLine(q.Customer.PostalCode, q.Customer.City),
		q.Customer.Phone,
	)

	// Lignes: désignation / quantité / PU / total, de haut en bas dans la
	// région bornée par la zone.
	z := zones.Lignes
	width := z.Width
	if width <= 0 {
		width = overlayLinesWidth
	}
	y := z.Y
	for _, ln := range lines {
		if z.Height > 0 && y < z.Y-z.Height {
			break // région pleine: les lignes excédentaires ne débordent pas du gabarit
		}
		put(z.X, y, 8, false, ln.Designation)
		put(z.X+width*0.55, y, 8, false, numfmt.Quantite(ln.Quantity))
		put(z.X+width*0.70, y, 8, false, numfmt.Montant(ln.UnitPriceHT))
		put(z.X+width*0.85, y, 8, false, numfmt.Montant(ln.TotalHT))
		y -= overlayRowHeight
	}

	// Totaux empilés, TTC en évidence.
	ty := zones.Totaux.Y
	put(zones.Totaux.X, ty, 9, false, "Total HT: "+numfmt.Montant(totals.SubtotalHT)+" "+q.Currency)
	ty -= overlayLineSpacing
	put(zones.Totaux.X, ty, 9, false, "TVA: "+numfmt.Montant(totals.TaxAmount)+" "+q.Currency)
	ty -= overlayLineSpacing
	put(zones.Totaux.X, ty, 11, true, "TOTAL TTC: "+numfmt.Montant(totals.GrandTotalTTC)+" "+q.Currency)

	return out
}

func cityLine(postalCode, city string) string {
	switch {
	case postalCode == "":
		return city
	case city == "":
		return postalCode
	default:
		return postalCode + " " + city
	}
}

// countPages compte les objets page d'un PDF écrit sans flux d'objets
// compressés (sorties gofpdf/maroto). Plancher à 1 par prudence.
func countPages(b []byte) int {
	n := bytes.Count(b, []byte("/Type /Page")) - bytes.Count(b, []byte("/Type /Pages"))
	if n < 1 {
		return 1
	}
	return n
}
