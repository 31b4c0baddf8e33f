package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// renderOnPDF superpose les fragments sur la première page d'un PDF existant
// via des tampons pdfcpu. La validation relâchée tolère les documents protégés
// quand leurs permissions le permettent.
func renderOnPDF(texts []placedText, bg *entity.BackgroundAsset) (*render.RenderedDocument, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	// Seule la première page du fond est conservée.
	var first bytes.Buffer
	if err := api.Trim(bytes.NewReader(bg.Data), &first, []string{"1"}, conf); err != nil {
		return nil, fmt.Errorf("%w: fond PDF illisible: %v", domain.ErrTemplate, err)
	}

	wms := make([]*model.Watermark, 0, len(texts))
	for _, t := range texts {
		font := "Helvetica"
		if t.Bold {
			font = "Helvetica-Bold"
		}
		desc := fmt.Sprintf(
			"fontname:%s, points:%.0f, scale:1 abs, pos:bl, off:%.1f %.1f, fillcolor:#1A1A1A, opacity:1, rot:0",
			font, t.Size, t.X, t.Y,
		)
		wm, err := api.TextWatermark(t.Text, desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: tampon invalide: %v", domain.ErrTemplate, err)
		}
		wms = append(wms, wm)
	}

	var out bytes.Buffer
	if err := api.AddWatermarksSliceMap(
		bytes.NewReader(first.Bytes()), &out,
		map[int][]*model.Watermark{1: wms}, conf,
	); err != nil {
		return nil, fmt.Errorf("%w: superposition sur PDF: %v", domain.ErrTemplate, err)
	}

	return &render.RenderedDocument{Bytes: out.Bytes(), Pages: 1, MIME: "application/pdf"}, nil
}
