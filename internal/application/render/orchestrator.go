package render

import (
	"context"
	"errors"
	"time"

	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/quote"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
	"github.com/atelierlaser/devis-api/pkg/logger"
	"github.com/atelierlaser/devis-api/pkg/retry"
)

// Options paramètres de génération par requête.
type Options struct {
	TemplateID string
	Background *entity.BackgroundAsset
}

// GenerateUseCase orchestre la génération d'un devis PDF, en ligne droite et
// sans retour arrière: validation → service distant (avec relances) →
// superposition sur gabarit → mise en page standard.
//
// Le service distant est une optimisation, pas une dépendance dure: son
// épuisement déclenche le repli local au lieu d'un échec.
type GenerateUseCase struct {
	remote  RemoteGenerator // nil = aucun service distant configuré
	zones   repository.ZoneConfigRepository
	overlay Renderer
	basic   Renderer
	quotes  repository.QuoteRepository // nil = pas de traçage d'URL
	policy  retry.Policy
	timeout time.Duration
	log     *logger.Logger
}

// NewGenerateUseCase construit l'orchestrateur. remote et quotes peuvent être
// nil (rendu local seul, pas de traçage).
func NewGenerateUseCase(
	remote RemoteGenerator,
	zones repository.ZoneConfigRepository,
	overlay Renderer,
	basic Renderer,
	quotes repository.QuoteRepository,
	maxAttempts int,
	timeout time.Duration,
	log *logger.Logger,
) *GenerateUseCase {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GenerateUseCase{
		remote:  remote,
		zones:   zones,
		overlay: overlay,
		basic:   basic,
		quotes:  quotes,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			Backoff:     retry.ExponentialBackoff(time.Second),
			// Relançable: non-2xx, erreur réseau, timeout. Un échec métier
			// signalé par le service (RemoteError) ne se relance pas.
			Retryable: func(err error) bool {
				var rerr *RemoteError
				return !errors.As(err, &rerr)
			},
		},
		timeout: timeout,
		log:     log,
	}
}

// Generate exécute la chaîne complète et renvoie toujours un GenerationResult;
// les erreurs réseau et gabarit sont absorbées par les replis, seule
// l'exhaustion de tous les niveaux produit un échec visible.
func (uc *GenerateUseCase) Generate(ctx context.Context, q *entity.Quote, opts Options) *entity.GenerationResult {
	// 1. Validation: aucune sortie réseau tant que le document est incomplet.
	if verrs := quote.ValidateQuote(q); len(verrs) > 0 {
		hints := make([]string, 0, len(verrs))
		for _, e := range verrs {
			hints = append(hints, e.String())
		}
		return entity.Failure(entity.CategoryValidation, "devis incomplet", hints...)
	}

	lines := quote.NormalizeItems(q.Items)
	totals := quote.CalculateTotals(q)

	// 2. Tentative distante: son échec déclenche le repli, pas une erreur.
	if uc.remote != nil {
		res, err := uc.tryRemote(ctx, q, opts.TemplateID)
		if err == nil {
			uc.recordDocumentRef(q, res.DocumentURL)
			return entity.RemoteSuccess(res.DocumentURL, res.FileName, res.FileSize, res.PageCount)
		}
		var rerr *RemoteError
		switch {
		case errors.As(err, &rerr):
			uc.log.Warn().Str("type", rerr.Type).Str("devis", q.Number).
				Msg("échec métier du service distant, repli sur le rendu local")
		case errors.Is(err, context.DeadlineExceeded):
			uc.log.Warn().Str("devis", q.Number).
				Msg("service distant trop lent, repli sur le rendu local")
		default:
			uc.log.Warn().Err(err).Str("devis", q.Number).
				Msg("service distant injoignable, repli sur le rendu local")
		}
	}

	// 3. Rendu local: superposition sur gabarit si un fond est fourni.
	zones := uc.loadZones(ctx)
	if opts.Background != nil {
		doc, err := uc.overlay.Render(ctx, q, lines, totals, zones, opts.Background)
		if err == nil {
			return entity.LocalSuccess(entity.SourceOverlay, doc.Bytes, fileName(q), doc.Pages)
		}
		uc.log.Warn().Err(err).Str("devis", q.Number).
			Msg("gabarit inexploitable, repli sur la mise en page standard")
	}

	// 4. Mise en page standard: dernier niveau, échec terminal s'il casse.
	doc, err := uc.basic.Render(ctx, q, lines, totals, zones, nil)
	if err != nil {
		uc.log.Error().Err(err).Str("devis", q.Number).Msg("rendu standard en échec")
		return entity.Failure(entity.CategoryRender, "échec du rendu PDF: "+err.Error())
	}
	return entity.LocalSuccess(entity.SourceBasic, doc.Bytes, fileName(q), doc.Pages)
}

// tryRemote soumet le devis au service distant sous la politique de relance.
// Chaque tentative porte son propre délai; le contexte appelant interrompt
// aussi l'attente entre tentatives.
func (uc *GenerateUseCase) tryRemote(ctx context.Context, q *entity.Quote, templateID string) (*RemoteResult, error) {
	var res *RemoteResult
	err := uc.policy.Do(ctx, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()
		r, err := uc.remote.Generate(attemptCtx, q, templateID)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// recordDocumentRef trace l'URL du document généré sur le devis source.
// Best-effort asynchrone: un échec se journalise sans toucher au résultat.
func (uc *GenerateUseCase) recordDocumentRef(q *entity.Quote, url string) {
	if uc.quotes == nil || q.ID == "" || url == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.quotes.UpdateDocumentURL(ctx, q.ID, url); err != nil {
			uc.log.Error().Err(err).Str("devis", q.ID).
				Msg("traçage de l'URL du document impossible")
		}
	}()
}

// loadZones charge la configuration des zones, valeurs par défaut en cas de
// panne du store: une configuration manquante ne bloque jamais un rendu.
func (uc *GenerateUseCase) loadZones(ctx context.Context) *entity.ZoneConfig {
	if uc.zones == nil {
		return entity.DefaultZoneConfig()
	}
	cfg, err := uc.zones.Load(ctx)
	if err != nil || cfg == nil {
		uc.log.Warn().Err(err).Msg("zones illisibles, configuration par défaut utilisée")
		return entity.DefaultZoneConfig()
	}
	return cfg
}

func fileName(q *entity.Quote) string {
	return q.Number + ".pdf"
}
