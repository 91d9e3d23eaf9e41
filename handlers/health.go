package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/leonexus/site/db"
)

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	health := fiber.Map{
		"status": "ok",
	}

	// Check database connectivity
	if err := db.Get().PingContext(c.Context()); err != nil {
		health["status"] = "unhealthy"
		health["database"] = "down"
		c.Status(fiber.StatusServiceUnavailable)
	} else {
		health["database"] = "up"
	}

	// The backend being down degrades the site but does not make it unhealthy
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()
	if err := h.API.Ping(ctx); err != nil {
		health["api"] = "down"
	} else {
		health["api"] = "up"
	}

	health["caches"] = h.Catalog.CacheStats()
	return c.JSON(health)
}
