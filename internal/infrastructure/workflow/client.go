// Package workflow appelle le service de génération documentaire externe
// (webhook d'automatisation). Le service est un collaborateur opaque: ce
// client sérialise fidèlement le devis validé, honore le drapeau de succès de
// la réponse et restitue error/error_type tels quels en cas d'échec.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
)

// Vérification à la compilation que Client implémente le port.
var _ render.RemoteGenerator = (*Client)(nil)

// Client adaptateur HTTP du service de génération distant.
// Utilise net/http de la librairie standard; aucun SDK requis.
type Client struct {
	url        string
	orgID      string
	httpClient *http.Client
}

// NewClient construit l'adaptateur. Le timeout réseau du client dépasse le
// délai par tentative (30 s) imposé par l'orchestrateur via le contexte.
func NewClient(url, orgID string) *Client {
	return &Client{
		url:   url,
		orgID: orgID,
		httpClient: &http.Client{
			Timeout: 35 * time.Second,
		},
	}
}

// ── Protocole du webhook ──────────────────────────────────────────────────────

type generateRequest struct {
	QuoteData  *entity.Quote `json:"quote_data"`
	TemplateID string        `json:"template_id,omitempty"`
	OrgID      string        `json:"org_id,omitempty"`
}

type generateResponse struct {
	Success         bool     `json:"success"`
	DocumentURL     string   `json:"document_url"`
	FileName        string   `json:"file_name"`
	FileSize        int64    `json:"file_size"`
	PageCount       int      `json:"page_count"`
	Error           string   `json:"error"`
	ErrorType       string   `json:"error_type"`
	Troubleshooting []string `json:"troubleshooting"`
}

// ── Implémentation du port ────────────────────────────────────────────────────

// Generate soumet le devis au webhook et renvoie l'URL du document généré.
// Erreurs réseau, timeouts et statuts non-2xx remontent enveloppés dans
// domain.ErrRemote (relançables); un échec métier signalé par le service
// remonte en *render.RemoteError, sans remapping.
func (c *Client) Generate(ctx context.Context, q *entity.Quote, templateID string) (*render.RemoteResult, error) {
	body, err := json.Marshal(generateRequest{
		QuoteData:  q,
		TemplateID: templateID,
		OrgID:      c.orgID,
	})
	if err != nil {
		return nil, fmt.Errorf("workflow: sérialiser le devis: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("workflow: créer la requête: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout ou annulation: %v", domain.ErrRemote, ctx.Err())
		}
		return nil, fmt.Errorf("%w: appel HTTP: %v", domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: lire la réponse: %v", domain.ErrRemote, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrRemote, resp.StatusCode, string(rawBody))
	}

	var gr generateResponse
	if err := json.Unmarshal(rawBody, &gr); err != nil {
		return nil, fmt.Errorf("%w: réponse illisible: %v", domain.ErrRemote, err)
	}

	if !gr.Success {
		return nil, &render.RemoteError{
			Type:    gr.ErrorType,
			Message: gr.Error,
			Hints:   gr.Troubleshooting,
		}
	}
	if gr.DocumentURL == "" {
		return nil, fmt.Errorf("%w: succès sans URL de document", domain.ErrRemote)
	}

	return &render.RemoteResult{
		DocumentURL: gr.DocumentURL,
		FileName:    gr.FileName,
		FileSize:    gr.FileSize,
		PageCount:   gr.PageCount,
	}, nil
}
