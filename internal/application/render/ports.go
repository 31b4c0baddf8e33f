// Package render orchestre la génération documentaire d'un devis: validation,
// tentative distante avec relances, puis repli sur les rendus locaux.
package render

import (
	"context"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// RemoteResult réponse de succès du service de génération distant.
type RemoteResult struct {
	DocumentURL string
	FileName    string
	FileSize    int64
	PageCount   int
}

// RemoteError échec métier signalé par le service distant. Type, message et
// indications de dépannage sont transmis tels quels, jamais remappés.
type RemoteError struct {
	Type    string
	Message string
	Hints   []string
}

func (e *RemoteError) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return e.Type + ": " + e.Message
}

// RemoteGenerator port vers le service de rendu externe (webhook d'automatisation).
type RemoteGenerator interface {
	Generate(ctx context.Context, q *entity.Quote, templateID string) (*RemoteResult, error)
}

// RenderedDocument document binaire produit par un rendu local.
type RenderedDocument struct {
	Bytes []byte
	Pages int
	MIME  string
}

// Renderer stratégie de rendu local. Chaque niveau de repli expose le même
// contrat et se tente en séquence jusqu'au premier succès.
type Renderer interface {
	Render(
		ctx context.Context,
		q *entity.Quote,
		lines []entity.QuoteLine,
		totals entity.DocumentTotals,
		zones *entity.ZoneConfig,
		bg *entity.BackgroundAsset,
	) (*RenderedDocument, error)
}
