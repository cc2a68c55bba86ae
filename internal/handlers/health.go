package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/pkg/config"
	"github.com/proconnect-app/backend/pkg/logger"
)

// HealthHandler exposes the database health and keep-alive endpoints.
type HealthHandler struct {
	db  *config.DB
	env string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *config.DB, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env}
}

// RegisterHealthRoutes registers the health endpoints
func (h *HealthHandler) RegisterHealthRoutes(e *echo.Echo) {
	e.GET("/api/health", h.Health)
	e.GET("/api/keep-alive", h.KeepAlive)
}

// Health reports overall status plus a database connectivity probe.
// Returns 200 when the probe passes and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	now := time.Now().UTC().Format(time.RFC3339)

	database := echo.Map{"timestamp": now}
	status := "healthy"
	code := http.StatusOK

	if err := h.db.Ping(c.Request().Context()); err != nil {
		database["healthy"] = false
		database["error"] = err.Error()
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		database["healthy"] = true
		database["status"] = "Database is healthy"
	}

	return c.JSON(code, echo.Map{
		"status":      status,
		"database":    database,
		"timestamp":   now,
		"environment": h.env,
	})
}

// KeepAlive pings the database so free-tier instances do not go to sleep.
func (h *HealthHandler) KeepAlive(c echo.Context) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := h.db.Ping(c.Request().Context()); err != nil {
		logger.Error.Printf("Database keep-alive failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":    "error",
			"error":     err.Error(),
			"timestamp": now,
		})
	}

	logger.Info.Println("Database keep-alive ping successful")
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "success",
		"message":   "Database keep-alive ping sent",
		"timestamp": now,
	})
}
