// Package handler provides HTTP handlers for the API.
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

// DiscoveryHandler handles the discovery read paths.
type DiscoveryHandler struct {
	service   *service.DiscoveryService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(svc *service.DiscoveryService, v *validator.Validator, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/videos
func (h *DiscoveryHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	env, err := h.service.Search(c.Context(), req.ToFilter(), req.ToSort(), req.ToPage())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(dto.FromEnvelope(env))
}

// ByGenre handles GET /api/v1/videos/genre/:genre
func (h *DiscoveryHandler) ByGenre(c *fiber.Ctx) error {
	genre := c.Params("genre")

	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	env, err := h.service.ByGenre(c.Context(), genre, req.ToSort(), req.ToPage())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(dto.FromEnvelope(env))
}

// Trending handles GET /api/v1/videos/trending
func (h *DiscoveryHandler) Trending(c *fiber.Ctx) error {
	var req dto.TrendingRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	q := req.ToQuery()
	videos, err := h.service.Trending(c.Context(), q)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(dto.FromRankedVideos(videos, q.Limit))
}

// Recommendations handles GET /api/v1/videos/recommendations
func (h *DiscoveryHandler) Recommendations(c *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	if err := h.validator.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	q := req.ToQuery()
	videos, err := h.service.Recommendations(c.Context(), q)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(dto.FromRankedVideos(videos, q.Limit))
}

// GetByID handles GET /api/v1/videos/:id
func (h *DiscoveryHandler) GetByID(c *fiber.Ctx) error {
	video, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(dto.FromDomainVideo(video))
}

// Stats handles GET /api/v1/stats
func (h *DiscoveryHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(dto.FromStats(stats))
}

// respondError maps the domain error taxonomy to HTTP statuses. Store-level
// causes are logged but never echoed to the client.
func (h *DiscoveryHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_PARAMS",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "video not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, domain.ErrStoreTimeout):
		h.logger.Error("store timeout", zap.Error(err))
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Error: "request timed out",
			Code:  "STORE_TIMEOUT",
		})
	default:
		h.logger.Error("store error", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "service temporarily unavailable",
			Code:  "STORE_UNAVAILABLE",
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "INVALID_PARAMS",
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: err,
	})
}
