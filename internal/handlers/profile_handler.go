package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/logger"
	"gorm.io/gorm"
)

// ProfileHandler handles public profile reads and settings updates.
type ProfileHandler struct {
	userRepository repositories.UserRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository) *ProfileHandler {
	return &ProfileHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetUser)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

// GetUser retrieves another user's public profile by ID.
func (h *ProfileHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, http.StatusNotFound, "User not found")
		}
		logger.Error.Printf("user lookup failed: %v", err)
		return respondError(c, http.StatusInternalServerError, "Failed to load profile. Please try again.")
	}

	return c.JSON(http.StatusOK, user)
}

// GetProfile retrieves the authenticated user's own profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to view your profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's name and bio.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return respondError(c, http.StatusUnauthorized, "You must be logged in to update your profile")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Name is required and must be at most 50 characters")
	}

	user.Name = req.Name
	if req.Bio != nil {
		if *req.Bio == "" {
			user.Bio = nil
		} else {
			user.Bio = req.Bio
		}
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		if isNotConnected(err) {
			return respondError(c, http.StatusServiceUnavailable, "Database not connected")
		}
		logger.Error.Printf("profile update failed for user %d: %v", user.ID, err)
		return respondError(c, http.StatusInternalServerError, "Failed to update profile. Please try again.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}
