package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
	infrapdf "github.com/atelierlaser/devis-api/internal/infrastructure/pdf"
	"github.com/atelierlaser/devis-api/internal/infrastructure/postgres"
	"github.com/atelierlaser/devis-api/internal/infrastructure/storage"
	"github.com/atelierlaser/devis-api/internal/infrastructure/workflow"
	httpRouter "github.com/atelierlaser/devis-api/internal/interfaces/http"
	"github.com/atelierlaser/devis-api/pkg/config"
	"github.com/atelierlaser/devis-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()

	// Persistance: PostgreSQL si configuré, sinon mode autonome (devis en
	// mémoire, zones dans un fichier local).
	var quoteRepo repository.QuoteRepository
	var zoneRepo repository.ZoneConfigRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connexion à PostgreSQL")
		}
		defer pool.Close()
		quoteRepo = postgres.NewQuoteRepository(pool)
		zoneRepo = postgres.NewZoneConfigRepository(pool, log)
	} else {
		log.Info().Str("zones", cfg.Render.ZonesPath).
			Msg("aucune base configurée, mode autonome")
		quoteRepo = storage.NewMemoryQuoteRepository()
		zoneRepo = storage.NewFileZoneStore(cfg.Render.ZonesPath, log)
	}

	// Service de génération distant, facultatif.
	var remote render.RemoteGenerator
	if cfg.Render.WebhookURL != "" {
		remote = workflow.NewClient(cfg.Render.WebhookURL, cfg.Render.OrgID)
		log.Info().Str("url", cfg.Render.WebhookURL).Msg("service de génération distant configuré")
	}

	genUC := render.NewGenerateUseCase(
		remote,
		zoneRepo,
		infrapdf.NewOverlayRenderer(),
		infrapdf.NewBasicRenderer(),
		quoteRepo,
		cfg.Render.MaxAttempts,
		time.Duration(cfg.Render.TimeoutSeconds)*time.Second,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // fonds de page en data URI
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Atelier Devis API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Quotes: quoteRepo,
		Zones:  zoneRepo,
		Gen:    genUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
