package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	Quotes repository.QuoteRepository
	Zones  repository.ZoneConfigRepository
	Gen    *render.GenerateUseCase
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Devis
	devis := api.Group("/devis")
	quoteHandler := NewQuoteHandler(deps.Quotes, deps.Gen)
	devis.Post("/", quoteHandler.Create)
	devis.Get("/", quoteHandler.List)
	devis.Post("/pdf", quoteHandler.GenerateInline)
	devis.Get("/:id", quoteHandler.GetByID)
	devis.Post("/:id/pdf", quoteHandler.GeneratePDF)

	// Configuration des zones du gabarit
	config := api.Group("/config")
	zoneHandler := NewZoneHandler(deps.Zones)
	config.Get("/zones", zoneHandler.Get)
	config.Put("/zones", zoneHandler.Put)
}
