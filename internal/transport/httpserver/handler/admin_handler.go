package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-discovery-service/internal/app/service"
	"video-discovery-service/internal/domain"
	"video-discovery-service/internal/transport/httpserver/dto"
	"video-discovery-service/internal/validator"
)

// AdminHandler handles catalog administration: ingest triggers and
// moderation transitions.
type AdminHandler struct {
	ingest    *service.IngestService
	discovery *service.DiscoveryService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ingest *service.IngestService, discovery *service.DiscoveryService, v *validator.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		ingest:    ingest,
		discovery: discovery,
		validator: v,
		logger:    logger,
	}
}

// IngestAll handles POST /api/v1/admin/ingest
func (h *AdminHandler) IngestAll(c *fiber.Ctx) error {
	h.logger.Info("manual ingest triggered")

	results := h.ingest.IngestAll(c.Context())

	return c.JSON(dto.FromIngestResults(results))
}

// IngestSource handles POST /api/v1/admin/ingest/:source
func (h *AdminHandler) IngestSource(c *fiber.Ctx) error {
	name := c.Params("source")
	if name == "" {
		return badRequest(c, "source name is required")
	}

	h.logger.Info("manual source ingest triggered", zap.String("source", name))

	result := h.ingest.IngestSource(c.Context(), name)
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "source not found",
			Code:  "SOURCE_NOT_FOUND",
		})
	}
	if result.Error != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "source ingest failed",
			Code:  "INGEST_FAILED",
		})
	}

	return c.JSON(dto.IngestResultResponse{
		Source:   result.Source,
		Count:    result.Count,
		Duration: result.Duration.String(),
	})
}

// GetSources handles GET /api/v1/admin/sources
func (h *AdminHandler) GetSources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sources": h.ingest.SourceNames(),
	})
}

// SetStatus handles PATCH /api/v1/admin/videos/:id/status
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id is required")
	}

	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	err := h.discovery.SetStatus(c.Context(), id, domain.Status(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "video not found",
				Code:  "NOT_FOUND",
			})
		}

		h.logger.Error("status transition failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "service temporarily unavailable",
			Code:  "STORE_UNAVAILABLE",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
