package workflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/infrastructure/workflow"
)

func testQuote() *entity.Quote {
	return &entity.Quote{
		Number:   "DV-2026-001",
		Date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency: "MAD",
		Customer: entity.Party{Name: "Menuiserie Alami"},
		Company:  entity.Party{Name: "Atelier Laser"},
		Items: []entity.QuoteItem{{
			Designation: "Découpe",
			Quantity:    decimal.NewFromInt(1),
			UnitPriceHT: decimal.NewFromInt(250),
		}},
		TaxRatePct: decimal.NewFromInt(20),
	}
}

func TestGenerate_Success(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"document_url": "https://docs.example/dv-1.pdf",
			"file_name":    "dv-1.pdf",
			"file_size":    4096,
			"page_count":   2,
		})
	}))
	defer srv.Close()

	c := workflow.NewClient(srv.URL, "org-42")
	res, err := c.Generate(context.Background(), testQuote(), "tpl-7")
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example/dv-1.pdf", res.DocumentURL)
	assert.Equal(t, "dv-1.pdf", res.FileName)
	assert.Equal(t, int64(4096), res.FileSize)
	assert.Equal(t, 2, res.PageCount)

	assert.Equal(t, "tpl-7", received["template_id"])
	assert.Equal(t, "org-42", received["org_id"])
	quoteData, ok := received["quote_data"].(map[string]any)
	require.True(t, ok, "devis complet sérialisé sous quote_data")
	assert.Equal(t, "DV-2026-001", quoteData["numero"])
}

func TestGenerate_BusinessErrorPassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":         false,
			"error":           "gabarit introuvable",
			"error_type":      "template_not_found",
			"troubleshooting": []string{"vérifier l'identifiant du gabarit"},
		})
	}))
	defer srv.Close()

	c := workflow.NewClient(srv.URL, "")
	res, err := c.Generate(context.Background(), testQuote(), "tpl-inconnu")
	assert.Nil(t, res)

	var rerr *render.RemoteError
	require.ErrorAs(t, err, &rerr, "échec métier restitué tel quel")
	assert.Equal(t, "template_not_found", rerr.Type)
	assert.Equal(t, "gabarit introuvable", rerr.Message)
	assert.Equal(t, []string{"vérifier l'identifiant du gabarit"}, rerr.Hints)
}

func TestGenerate_HTTPErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service indisponible", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := workflow.NewClient(srv.URL, "")
	res, err := c.Generate(context.Background(), testQuote(), "")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrRemote, "statut non-2xx relançable")

	var rerr *render.RemoteError
	assert.False(t, errors.As(err, &rerr), "pas un échec métier")
}

func TestGenerate_NetworkErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // serveur déjà arrêté: la connexion échoue

	c := workflow.NewClient(srv.URL, "")
	_, err := c.Generate(context.Background(), testQuote(), "")
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestGenerate_SuccessWithoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := workflow.NewClient(srv.URL, "")
	_, err := c.Generate(context.Background(), testQuote(), "")
	assert.ErrorIs(t, err, domain.ErrRemote, "succès sans URL est une réponse invalide")
}

func TestGenerate_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	c := workflow.NewClient(srv.URL, "")
	_, err := c.Generate(ctx, testQuote(), "")
	assert.ErrorIs(t, err, domain.ErrRemote, "le timeout reste une erreur distante relançable")
}
