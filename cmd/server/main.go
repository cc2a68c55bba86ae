package main

import (
	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/router"
	"github.com/proconnect-app/backend/pkg/config"
	"github.com/proconnect-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the database connection. A missing connection string is
	// not fatal: the server starts in degraded mode.
	db := config.InitDB(cfg)
	defer db.CloseDB() // Ensure the database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
