package render

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// MaxBackgroundSize taille maximale d'un fond de page décodé (10 Mo).
const MaxBackgroundSize = 10 << 20

// ParseBackgroundDataURI décode un fond de page encodé en data URI
// (data:<mime>;base64,...). Formats acceptés: image/png, image/jpeg,
// application/pdf. Toute erreur est enveloppée dans domain.ErrTemplate pour que
// l'orchestrateur replie sur la mise en page standard.
func ParseBackgroundDataURI(s string) (*entity.BackgroundAsset, error) {
	if s == "" {
		return nil, nil
	}
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: URI de données attendu (data:<mime>;base64,...)", domain.ErrTemplate)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: URI de données sans charge utile", domain.ErrTemplate)
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, fmt.Errorf("%w: seul l'encodage base64 est géré", domain.ErrTemplate)
	}

	switch mime {
	case "image/png", "image/jpeg", "application/pdf":
	default:
		return nil, fmt.Errorf("%w: type %q non géré", domain.ErrTemplate, mime)
	}

	// Borne vérifiée avant décodage: 4 caractères base64 pour 3 octets.
	if len(payload) > (MaxBackgroundSize/3+1)*4 {
		return nil, fmt.Errorf("%w: fond de page au-delà de 10 Mo", domain.ErrTemplate)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 invalide: %v", domain.ErrTemplate, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: fond de page vide", domain.ErrTemplate)
	}
	if len(data) > MaxBackgroundSize {
		return nil, fmt.Errorf("%w: fond de page au-delà de 10 Mo", domain.ErrTemplate)
	}

	return &entity.BackgroundAsset{MIME: mime, Data: data}, nil
}
