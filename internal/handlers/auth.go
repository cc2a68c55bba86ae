package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/internal/session"
	"github.com/proconnect-app/backend/pkg/logger"
	"github.com/proconnect-app/backend/validators"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 12

// minPasswordLength is the registration password floor.
const minPasswordLength = 6

// AuthHandler handles registration, login, logout, and account deletion.
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       *session.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		sessions:       sessions,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.POST("/delete-account", h.DeleteAccount)
}

// Register handles new user registration and signs the user in on success.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Missing required fields")
	}
	if len(req.Password) < minPasswordLength {
		return respondError(c, http.StatusBadRequest, "Password must be at least 6 characters long")
	}
	if !validators.IsValidEmail(req.Email) {
		return respondError(c, http.StatusBadRequest, "Please enter a valid email address")
	}

	// Advisory pre-check; the unique index on users.email is the authority
	// and a violation on insert is handled the same way below.
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return respondError(c, http.StatusConflict, "User already exists with this email")
	} else if isNotConnected(err) {
		return respondError(c, http.StatusServiceUnavailable, "Database not connected")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error.Printf("registration email lookup failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Registration failed. Please try again.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		logger.Error.Printf("password hashing failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Registration failed. Please try again.")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if req.Bio != "" {
		user.Bio = &req.Bio
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		if repositories.IsUniqueViolation(err) {
			// Lost the check-then-act race against a concurrent registration.
			return respondError(c, http.StatusConflict, "User already exists with this email")
		}
		logger.Error.Printf("registration insert failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Registration failed. Please try again.")
	}

	if err := h.sessions.Create(c, user.ID); err != nil {
		logger.Error.Printf("session creation failed after registration: %v", err)
		return respondError(c, http.StatusInternalServerError, "Registration failed. Please try again.")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": user})
}

// Login authenticates an existing user and issues a session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password so emails cannot be enumerated.
			return respondError(c, http.StatusUnauthorized, "Invalid email or password")
		}
		logger.Error.Printf("login email lookup failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Login failed. Please try again.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.sessions.Create(c, user.ID); err != nil {
		logger.Error.Printf("session creation failed after login: %v", err)
		return respondError(c, http.StatusInternalServerError, "Login failed. Please try again.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Destroy(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteAccount deletes the authenticated user after re-verifying their
// password. Cascading foreign keys remove the user's posts, likes,
// shares, and comments.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	var req models.DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	if strings.TrimSpace(req.Password) == "" {
		return respondError(c, http.StatusBadRequest, "Password is required to delete your account")
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to delete your account")
	}

	// Re-fetch so the hash is fresh even if the context copy is stale.
	stored, err := h.userRepository.GetUserByID(user.ID)
	if err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		return respondError(c, http.StatusNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.Password)); err != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid password. Please enter your current password to confirm account deletion.")
	}

	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		logger.Error.Printf("account deletion failed for user %d: %v", user.ID, err)
		return respondError(c, http.StatusInternalServerError, "Failed to delete account. Please try again.")
	}

	h.sessions.Destroy(c)
	logger.Info.Printf("account %d deleted", user.ID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Account deleted successfully"})
}
