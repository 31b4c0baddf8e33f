package pdf

import (
	"context"
	"fmt"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

var _ render.Renderer = (*OverlayRenderer)(nil)

// OverlayRenderer superpose les champs calculés du devis sur un fond de page
// aux coordonnées des zones configurées. Le chemin matriciel (gofpdf, page à
// la taille de l'image) ou PDF (pdfcpu, tampons sur la première page) est
// choisi selon le type MIME du fond.
//
// Jamais d'échec silencieux: un fond illisible remonte une erreur
// domain.ErrTemplate que l'orchestrateur intercepte pour replier sur la mise
// en page standard.
type OverlayRenderer struct{}

// NewOverlayRenderer construit le renderer.
func NewOverlayRenderer() *OverlayRenderer { return &OverlayRenderer{} }

// Render superpose le devis sur le fond fourni.
func (r *OverlayRenderer) Render(
	_ context.Context,
	q *entity.Quote,
	lines []entity.QuoteLine,
	totals entity.DocumentTotals,
	zones *entity.ZoneConfig,
	bg *entity.BackgroundAsset,
) (*render.RenderedDocument, error) {
	if bg == nil || len(bg.Data) == 0 {
		return nil, fmt.Errorf("%w: fond de page absent", domain.ErrTemplate)
	}

	texts := overlayTexts(q, lines, totals, zones)

	switch {
	case bg.IsImage():
		return renderOnImage(q, texts, bg)
	case bg.IsPDF():
		return renderOnPDF(texts, bg)
	default:
		return nil, fmt.Errorf("%w: type de fond non géré (%s)", domain.ErrTemplate, bg.MIME)
	}
}
