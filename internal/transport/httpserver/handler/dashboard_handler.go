package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"video-discovery-service/internal/app/service"
)

// DashboardHandler renders the operational dashboard.
type DashboardHandler struct {
	discovery *service.DiscoveryService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.DiscoveryService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		discovery: svc,
		logger:    logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	stats, err := h.discovery.Stats(c.Context())
	if err != nil {
		h.logger.Warn("dashboard stats unavailable", zap.Error(err))
		return c.Render("pages/dashboard", fiber.Map{
			"Title": "Video Discovery Dashboard",
		}, "layouts/base")
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":    "Video Discovery Dashboard",
		"Total":    stats.Total,
		"ByStatus": stats.ByStatus,
		"ByGenre":  stats.ByGenre,
	}, "layouts/base")
}
