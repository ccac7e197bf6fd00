package handler

import (
	"go.uber.org/zap"

	"go-hotel-pms/internal/middleware"
	"go-hotel-pms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	errorResponder
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{errorResponder: errorResponder{logger: logger}, service: s}
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.service.GetDashboardStats(c.UserContext(), actor)
	if err != nil {
		return h.respond(c, err)
	}

	return c.JSON(stats)
}
