package handlers

import (
	"context"
	"time"

	"susu-dashboard/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	sessions Pinger
	backend  Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions, backend Pinger) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		backend:  backend,
	}
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check the session store and the collection backend
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	sessionStatus := "healthy"
	if err := h.sessions.Ping(ctx); err != nil {
		sessionStatus = "unhealthy"
	}
	backendStatus := "healthy"
	if err := h.backend.Ping(ctx); err != nil {
		backendStatus = "unreachable"
	}

	status := fiber.StatusOK
	if sessionStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"sessions": sessionStatus,
			"backend":  backendStatus,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	mode := ""
	if config.AppConfig != nil {
		mode = config.AppConfig.AppMode
	}
	return c.JSON(fiber.Map{
		"message": "Susu Collection Dashboard API v1.0",
		"version": "1.0.0",
		"mode":    mode,
		"docs":    "/swagger/index.html",
	})
}
