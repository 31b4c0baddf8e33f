package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*MemoryQuoteRepository)(nil)

// MemoryQuoteRepository stocke les devis en mémoire. Utilisé quand aucune base
// n'est configurée; les devis ne survivent pas au redémarrage.
type MemoryQuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]*entity.Quote
}

// NewMemoryQuoteRepository construit le store.
func NewMemoryQuoteRepository() *MemoryQuoteRepository {
	return &MemoryQuoteRepository{quotes: make(map[string]*entity.Quote)}
}

// Create enregistre un nouveau devis.
func (r *MemoryQuoteRepository) Create(_ context.Context, q *entity.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[q.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

// GetByID renvoie (nil, nil) si le devis n'existe pas.
func (r *MemoryQuoteRepository) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

// List renvoie les devis du plus récent au plus ancien.
func (r *MemoryQuoteRepository) List(_ context.Context, limit, offset int) ([]*entity.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entity.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		cp := *q
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].Number > all[j].Number
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// UpdateDocumentURL trace l'URL du document généré.
func (r *MemoryQuoteRepository) UpdateDocumentURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.DocumentURL = url
	return nil
}
