package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/logger"
)

// respondError returns the flat {"error": message} envelope the clients
// render directly. Every failure path goes through here so it is logged.
func respondError(c echo.Context, status int, message string) error {
	logger.Warn.Printf("%s %s -> %d: %s", c.Request().Method, c.Request().URL.Path, status, message)
	return c.JSON(status, echo.Map{"error": message})
}

// isNotConnected reports whether err means the server runs without a
// database connection.
func isNotConnected(err error) bool {
	return errors.Is(err, repositories.ErrNotConnected)
}
