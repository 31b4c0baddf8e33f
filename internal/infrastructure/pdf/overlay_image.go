package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // décodage des dimensions JPEG
	_ "image/png"  // décodage des dimensions PNG
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// renderOnImage crée une page à la taille du fond matriciel (un pixel = un
// point), dessine l'image en pleine page puis superpose les fragments aux
// coordonnées des zones.
func renderOnImage(q *entity.Quote, texts []placedText, bg *entity.BackgroundAsset) (*render.RenderedDocument, error) {
	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(bg.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: image illisible: %v", domain.ErrTemplate, err)
	}
	w, h := float64(imgCfg.Width), float64(imgCfg.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions d'image invalides", domain.ErrTemplate)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetCreationDate(q.Date) // rendu reproductible
	doc.SetTitle("Devis "+q.Number, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	doc.RegisterImageOptionsReader("fond", opts, bytes.NewReader(bg.Data))
	doc.ImageOptions("fond", 0, 0, w, h, false, opts, 0, "")

	for _, t := range texts {
		style := ""
		if t.Bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, t.Size)
		// Zones en origine bas-gauche; gofpdf dessine depuis le haut.
		doc.Text(t.X, h-t.Y, tr(t.Text))
	}

	if doc.Err() {
		return nil, fmt.Errorf("%w: superposition sur image: %v", domain.ErrTemplate, doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: écriture du PDF: %v", domain.ErrTemplate, err)
	}
	b := buf.Bytes()
	return &render.RenderedDocument{Bytes: b, Pages: countPages(b), MIME: "application/pdf"}, nil
}
