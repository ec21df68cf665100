package api

import (
	"github.com/gofiber/fiber/v3"

	"badtakes/internal/db"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check handles GET /healthz. Healthy means the database answers a ping.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Pool.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
