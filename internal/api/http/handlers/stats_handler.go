package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteerhub/internal/service"
)

// StatsHandler exposes the public aggregate counters.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Get handles GET /api/stats. Responses come from the short-lived cache.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.stats.Cached(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": stats})
}
