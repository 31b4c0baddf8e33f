package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/infrastructure/pdf"
	"github.com/atelierlaser/devis-api/internal/infrastructure/storage"
	apphttp "github.com/atelierlaser/devis-api/internal/interfaces/http"
	"github.com/atelierlaser/devis-api/pkg/logger"
)

// buildTestApp construit une application Fiber complète sur les adaptateurs
// autonomes: devis en mémoire, zones dans un fichier temporaire, rendu local
// uniquement (pas de service distant).
func buildTestApp(t *testing.T) (*fiber.App, *storage.MemoryQuoteRepository) {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	quotes := storage.NewMemoryQuoteRepository()
	zones := storage.NewFileZoneStore(t.TempDir()+"/zones.json", log)

	gen := render.NewGenerateUseCase(
		nil, zones,
		pdf.NewOverlayRenderer(), pdf.NewBasicRenderer(),
		quotes, 1, time.Second, log,
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Quotes: quotes, Zones: zones, Gen: gen})
	return app, quotes
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

const validQuoteBody = `{
	"numero": "DV-2026-042",
	"date": "2026-03-15",
	"client": {"nom": "Menuiserie Alami", "ville": "Casablanca"},
	"entreprise": {"nom": "Atelier Laser", "ice": "001234567000089"},
	"lignes": [
		{"designation": "Découpe plexiglas", "quantite": "2,5", "prix_unitaire_ht": 400, "remise_pct": 10},
		{"libelle": "Gravure logo", "qty": 1, "prix_unitaire_ht": 150}
	]
}`

// ──────────────────────────────────────────────────────────────────────────────
// CRUD devis
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateQuote(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/devis", validQuoteBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["id"], "identifiant attribué à la création")
	assert.Equal(t, "MAD", out["devise"], "devise par défaut")
	assert.NotNil(t, out["lignes_normalisees"])
	assert.NotNil(t, out["totaux"])
}

func TestCreateQuote_Invalid(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/devis", `{"numero": "", "lignes": []}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out["code"])
	assert.NotEmpty(t, out["hints"], "chaque champ manquant est listé")
}

func TestGetQuote_NotFound(t *testing.T) {
	app, _ := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/devis/inconnu", nil)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListQuotes(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := postJSON(t, app, "/api/devis", validQuoteBody)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/devis", nil)
	listResp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Génération PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateInline_ReturnsPDF(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/devis/pdf", `{"devis": `+validQuoteBody+`}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "DV-2026-042.pdf")
	assert.Equal(t, "standard", resp.Header.Get("X-Generation-Source"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestGenerateInline_InvalidQuote(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/devis/pdf", `{"devis": {"numero": ""}}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "validation_error", out["code"])
}

func TestGenerateInline_MissingQuote(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := postJSON(t, app, "/api/devis/pdf", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGenerateInline_BadBackgroundRejected(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := postJSON(t, app, "/api/devis/pdf",
		`{"devis": `+validQuoteBody+`, "fond_page": "http://pas-un-data-uri"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGeneratePDF_StoredQuote(t *testing.T) {
	app, _ := buildTestApp(t)

	createResp := postJSON(t, app, "/api/devis", validQuoteBody)
	require.Equal(t, fiber.StatusCreated, createResp.StatusCode)
	var created map[string]any
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp := postJSON(t, app, "/api/devis/"+id+"/pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestGeneratePDF_UnknownQuote(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := postJSON(t, app, "/api/devis/inconnu/pdf", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuration des zones
// ──────────────────────────────────────────────────────────────────────────────

func TestZoneConfig_GetDefaultsThenPut(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/config/zones", nil)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cfg map[string]map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	assert.Equal(t, 40.0, cfg["entreprise"]["x"], "valeurs par défaut avant toute sauvegarde")

	putReq := httptest.NewRequest(http.MethodPut, "/api/config/zones",
		strings.NewReader(`{"entreprise": {"x": 55, "y": 780}, "numero": {"x": 400, "y": 780},
			"date": {"x": 400, "y": 760}, "client": {"x": 55, "y": 690},
			"lignes": {"x": 55, "y": 600, "width": 480, "height": 360},
			"totaux": {"x": 380, "y": 170}}`))
	putReq.Header.Set("Content-Type", "application/json")
	putResp, err := app.Test(putReq, 10000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, putResp.StatusCode)

	getResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/config/zones", nil), 10000)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&cfg))
	assert.Equal(t, 55.0, cfg["entreprise"]["x"], "la configuration sauvée est relue")
}
