package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/atelierlaser/devis-api/internal/application/dto"
	"github.com/atelierlaser/devis-api/internal/application/render"
	"github.com/atelierlaser/devis-api/internal/domain"
	"github.com/atelierlaser/devis-api/internal/domain/entity"
	"github.com/atelierlaser/devis-api/internal/domain/quote"
	"github.com/atelierlaser/devis-api/internal/domain/repository"
)

// QuoteHandler gère les requêtes HTTP des devis.
type QuoteHandler struct {
	quotes repository.QuoteRepository
	gen    *render.GenerateUseCase
}

// NewQuoteHandler construit le handler.
func NewQuoteHandler(quotes repository.QuoteRepository, gen *render.GenerateUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, gen: gen}
}

// Create enregistre un nouveau devis.
// POST /api/devis
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête illisible"})
	}
	q := in.ToEntity()
	if verrs := quote.ValidateQuote(q); len(verrs) > 0 {
		hints := make([]string, 0, len(verrs))
		for _, e := range verrs {
			hints = append(hints, e.String())
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "devis incomplet", Hints: hints})
	}
	q.ID = uuid.NewString()
	q.CreatedAt = time.Now().UTC()

	if err := h.quotes.Create(c.Context(), q); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "devis déjà enregistré"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuoteResponse(q))
}

// List liste les devis, du plus récent au plus ancien.
// GET /api/devis?limit=&offset=
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()

	list, err := h.quotes.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, dto.NewQuoteResponse(q))
	}
	return c.JSON(out)
}

// GetByID renvoie un devis avec ses lignes normalisées et ses totaux.
// GET /api/devis/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	q, err := h.quotes.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if q == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "devis introuvable"})
	}
	return c.JSON(dto.NewQuoteResponse(q))
}

// GeneratePDF génère le PDF d'un devis déjà enregistré.
// POST /api/devis/:id/pdf
func (h *QuoteHandler) GeneratePDF(c *fiber.Ctx) error {
	id := c.Params("id")
	q, err := h.quotes.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if q == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "devis introuvable"})
	}

	var in dto.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête illisible"})
		}
	}
	bg, err := render.ParseBackgroundDataURI(in.Background)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BACKGROUND", Message: err.Error()})
	}

	res := h.gen.Generate(c.Context(), q, render.Options{TemplateID: in.TemplateID, Background: bg})
	return writeResult(c, res)
}

// GenerateInline génère le PDF d'un devis fourni dans le corps, sans persistance.
// POST /api/devis/pdf
func (h *QuoteHandler) GenerateInline(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps de requête illisible"})
	}
	if in.Quote == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "champ devis requis"})
	}
	bg, err := render.ParseBackgroundDataURI(in.Background)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BACKGROUND", Message: err.Error()})
	}

	res := h.gen.Generate(c.Context(), in.Quote.ToEntity(), render.Options{TemplateID: in.TemplateID, Background: bg})
	return writeResult(c, res)
}

// writeResult traduit un résultat de génération en réponse HTTP: document
// binaire pour un rendu local, métadonnées JSON pour un rendu distant, corps
// d'erreur catégorisé sinon.
func writeResult(c *fiber.Ctx, res *entity.GenerationResult) error {
	if !res.Success {
		status := fiber.StatusInternalServerError
		switch res.ErrorCategory {
		case entity.CategoryValidation:
			status = fiber.StatusBadRequest
		case entity.CategoryNetwork, entity.CategoryTimeout:
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Code:    string(res.ErrorCategory),
			Message: res.ErrorMessage,
			Hints:   res.Hints,
		})
	}
	if len(res.Document) > 0 {
		c.Set(fiber.HeaderContentType, res.MIME)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.FileName))
		c.Set("X-Generation-Source", string(res.Source))
		return c.Send(res.Document)
	}
	// Succès distant: le document reste chez le service, référencé par URL.
	return c.JSON(res)
}
