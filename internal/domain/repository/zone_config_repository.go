package repository

import (
	"context"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// ZoneConfigRepository persistance de la configuration des zones de gabarit.
//
// Load renvoie toujours une configuration exploitable: celle persistée si elle
// existe et se lit, sinon la configuration par défaut (donnée corrompue
// comprise: elle ne doit jamais bloquer un rendu). Save remplace la
// configuration entière, sans fusion partielle; dernier-écrit-gagne.
type ZoneConfigRepository interface {
	Load(ctx context.Context) (*entity.ZoneConfig, error)
	Save(ctx context.Context, cfg *entity.ZoneConfig) error
}
