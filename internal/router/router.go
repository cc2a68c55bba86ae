package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/proconnect-app/backend/internal/handlers"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/internal/session"
	"github.com/proconnect-app/backend/pkg/config"
	"github.com/proconnect-app/backend/pkg/logger"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.Info.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config) {
	if db.Connected() {
		err := db.Postgres.AutoMigrate(
			&models.User{},
			&models.Post{},
			&models.Like{},
			&models.Share{},
			&models.Comment{},
		)
		if err != nil {
			logger.Error.Fatalf("Failed to auto migrate models: %v", err)
		}
		logger.Info.Println("PostgreSQL auto-migrations completed for all models.")
	} else {
		logger.Warn.Println("Skipping migrations: database not connected.")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	shareRepo := repositories.NewPostgresShareRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)

	sessions := session.NewManager(cfg.SessionSecret, cfg.IsProduction())

	// Health endpoints - always accessible
	healthHandler := handlers.NewHealthHandler(db, cfg.Env)
	healthHandler.RegisterHealthRoutes(e)
	logger.Info.Println("Health routes configured.")

	// Every /api route resolves the session cookie; handlers decide
	// whether authentication is required.
	api := e.Group("/api")
	api.Use(middleware.SessionAuth(sessions, userRepo))

	authHandler := handlers.NewAuthHandler(userRepo, sessions)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	logger.Info.Println("Auth routes configured.")

	postHandler := handlers.NewPostHandler(db, postRepo)
	postHandler.RegisterPostRoutes(api)
	logger.Info.Println("Post routes configured.")

	interactionHandler := handlers.NewInteractionHandler(db, likeRepo, shareRepo)
	interactionHandler.RegisterInteractionRoutes(api)
	logger.Info.Println("Interaction routes configured.")

	commentHandler := handlers.NewCommentHandler(db, commentRepo)
	commentHandler.RegisterCommentRoutes(api)
	logger.Info.Println("Comment routes configured.")

	profileHandler := handlers.NewProfileHandler(userRepo)
	profileHandler.RegisterProfileRoutes(api)
	logger.Info.Println("Profile routes configured.")

	logger.Info.Println("All routes configured.")
}
