package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
	"github.com/atelierlaser/devis-api/pkg/logger"
)

var _ repository.ZoneConfigRepository = (*ZoneConfigRepo)(nil)

// zoneConfigKey clé bien connue sous laquelle la configuration des zones est
// persistée, une seule par installation.
const zoneConfigKey = "zones_modele"

// ZoneConfigRepo persiste la configuration des zones en jsonb dans la table
// des paramètres.
//
// Schéma attendu:
//
//	CREATE TABLE parametres (
//	    cle    TEXT PRIMARY KEY,
//	    valeur JSONB NOT NULL,
//	    maj_le TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type ZoneConfigRepo struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewZoneConfigRepository construit l'adaptateur.
func NewZoneConfigRepository(pool *pgxpool.Pool, log *logger.Logger) *ZoneConfigRepo {
	return &ZoneConfigRepo{pool: pool, log: log}
}

// Load renvoie la configuration persistée, ou celle par défaut si aucune ligne
// n'existe ou si la donnée stockée est corrompue (avec avertissement).
func (r *ZoneConfigRepo) Load(ctx context.Context) (*entity.ZoneConfig, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT valeur FROM parametres WHERE cle = $1`, zoneConfigKey,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.DefaultZoneConfig(), nil
		}
		return nil, fmt.Errorf("load zones: %w", err)
	}

	var cfg entity.ZoneConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		// Donnée corrompue: ne jamais bloquer un rendu.
		r.log.Warn().Err(err).Str("cle", zoneConfigKey).
			Msg("configuration de zones corrompue, valeurs par défaut utilisées")
		return entity.DefaultZoneConfig(), nil
	}
	return &cfg, nil
}

// Save remplace la configuration entière (upsert, dernier-écrit-gagne).
func (r *ZoneConfigRepo) Save(ctx context.Context, cfg *entity.ZoneConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sérialiser les zones: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO parametres (cle, valeur, maj_le) VALUES ($1, $2, now())
		ON CONFLICT (cle) DO UPDATE SET valeur = EXCLUDED.valeur, maj_le = now()`,
		zoneConfigKey, raw,
	)
	if err != nil {
		return fmt.Errorf("save zones: %w", err)
	}
	return nil
}
