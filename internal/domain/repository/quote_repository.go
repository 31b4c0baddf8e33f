package repository

import (
	"context"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// QuoteRepository persistance des devis.
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.Quote) error
	// GetByID renvoie (nil, nil) si le devis n'existe pas.
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Quote, error)
	// UpdateDocumentURL trace la référence du document généré par le service
	// distant. Appel best-effort: l'échec n'invalide pas la génération.
	UpdateDocumentURL(ctx context.Context, id, url string) error
}
