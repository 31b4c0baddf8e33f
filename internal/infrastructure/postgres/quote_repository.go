package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implémentation PostgreSQL de QuoteRepository. L'entête du devis
// est indexée en colonnes, le document complet vit en jsonb.
//
// Schéma attendu:
//
//	CREATE TABLE devis (
//	    id           TEXT PRIMARY KEY,
//	    numero       TEXT NOT NULL,
//	    date_devis   DATE NOT NULL,
//	    devise       TEXT NOT NULL,
//	    payload      JSONB NOT NULL,
//	    document_url TEXT NOT NULL DEFAULT '',
//	    cree_le      TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type QuoteRepo struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository construit l'adaptateur.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

// Create persiste un nouveau devis.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("sérialiser le devis: %w", err)
	}
	query := `
		INSERT INTO devis (id, numero, date_devis, devise, payload, document_url, cree_le)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.pool.Exec(ctx, query,
		q.ID, q.Number, q.Date, q.Currency, payload, q.DocumentURL, q.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert devis: %w", err)
	}
	return nil
}

// GetByID charge un devis par ID; (nil, nil) s'il n'existe pas.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	var payload []byte
	var documentURL string
	err := r.pool.QueryRow(ctx,
		`SELECT payload, document_url FROM devis WHERE id = $1`, id,
	).Scan(&payload, &documentURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get devis: %w", err)
	}

	var q entity.Quote
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("désérialiser le devis %s: %w", id, err)
	}
	q.ID = id
	q.DocumentURL = documentURL
	return &q, nil
}

// List liste les devis du plus récent au plus ancien.
func (r *QuoteRepo) List(ctx context.Context, limit, offset int) ([]*entity.Quote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, payload, document_url FROM devis
		 ORDER BY date_devis DESC, numero DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list devis: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quote
	for rows.Next() {
		var id, documentURL string
		var payload []byte
		if err := rows.Scan(&id, &payload, &documentURL); err != nil {
			return nil, fmt.Errorf("scan devis: %w", err)
		}
		var q entity.Quote
		if err := json.Unmarshal(payload, &q); err != nil {
			return nil, fmt.Errorf("désérialiser le devis %s: %w", id, err)
		}
		q.ID = id
		q.DocumentURL = documentURL
		list = append(list, &q)
	}
	return list, rows.Err()
}

// UpdateDocumentURL trace l'URL du document généré par le service distant.
func (r *QuoteRepo) UpdateDocumentURL(ctx context.Context, id, url string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE devis SET document_url = $2 WHERE id = $1`, id, url,
	)
	if err != nil {
		return fmt.Errorf("update document_url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
