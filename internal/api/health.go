package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	llmref "github.com/kingfs/go-llm-reference"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	catalog *llmref.Catalog
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(catalog *llmref.Catalog) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// HealthCheck reports service status and the size of the loaded catalog.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK
	if h.catalog == nil || h.catalog.Len() == 0 {
		status = "degraded"
		statusCode = fiber.StatusServiceUnavailable
	}

	models := 0
	if h.catalog != nil {
		models = h.catalog.Len()
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": fiber.Map{
			"catalog": fiber.Map{"models": models},
		},
	})
}
