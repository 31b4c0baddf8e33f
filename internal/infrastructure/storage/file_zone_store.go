// Package storage fournit les adaptateurs de persistance locaux utilisés quand
// aucune base de données n'est configurée (poste d'atelier autonome, tests).
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
	"github.com/atelierlaser/devis-api/pkg/logger"
)

var _ repository.ZoneConfigRepository = (*FileZoneStore)(nil)

// FileZoneStore persiste la configuration des zones dans un fichier JSON local,
// une seule configuration par installation. Dernier-écrit-gagne pour les rares
// sauvegardes concurrentes.
type FileZoneStore struct {
	path string
	log  *logger.Logger
	mu   sync.Mutex
}

// NewFileZoneStore construit le store.
func NewFileZoneStore(path string, log *logger.Logger) *FileZoneStore {
	return &FileZoneStore{path: path, log: log}
}

// Load renvoie la configuration persistée, ou celle par défaut si le fichier
// n'existe pas ou est corrompu (avec avertissement).
func (s *FileZoneStore) Load(_ context.Context) (*entity.ZoneConfig, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entity.DefaultZoneConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("lire %s: %w", s.path, err)
	}

	var cfg entity.ZoneConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		// Fichier corrompu: ne jamais bloquer un rendu.
		s.log.Warn().Err(err).Str("fichier", s.path).
			Msg("configuration de zones corrompue, valeurs par défaut utilisées")
		return entity.DefaultZoneConfig(), nil
	}
	return &cfg, nil
}

// Save remplace le fichier entier, sans fusion partielle.
func (s *FileZoneStore) Save(_ context.Context, cfg *entity.ZoneConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("sérialiser les zones: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("créer le dossier: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("écrire %s: %w", s.path, err)
	}
	return nil
}
