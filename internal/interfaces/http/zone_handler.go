package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atelierlaser/devis-api/internal/application/dto"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
)

// ZoneHandler gère la configuration des zones du gabarit.
type ZoneHandler struct {
	zones repository.ZoneConfigRepository
}

// NewZoneHandler construit le handler.
func NewZoneHandler(zones repository.ZoneConfigRepository) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// Get renvoie la configuration courante (valeurs par défaut si jamais sauvée).
// GET /api/config/zones
func (h *ZoneHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.zones.Load(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cfg)
}

// Put remplace la configuration entière, sans fusion partielle.
// PUT /api/config/zones
func (h *ZoneHandler) Put(c *fiber.Ctx) error {
	var cfg entity.ZoneConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête illisible"})
	}
	if err := h.zones.Save(c.Context(), &cfg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cfg)
}
