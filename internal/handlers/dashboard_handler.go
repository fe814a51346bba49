package handlers

import (
	"log/slog"

	"partshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the admin summary.
type DashboardHandler struct {
	service *services.DashboardService
	log     *slog.Logger
}

func NewDashboardHandler(service *services.DashboardService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard/stats", h.HandleStats)
}

func (h *DashboardHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, stats, "")
}
