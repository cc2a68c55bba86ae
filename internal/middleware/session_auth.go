package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/internal/session"
)

// currentUserKey is the echo context key holding the resolved *models.User.
const currentUserKey = "currentUser"

// SessionAuth resolves the session cookie to a user row and stores it in
// the request context. Resolving against the users table is the sole
// staleness check: a cookie for a deleted account, or any lookup failure
// (including a disconnected database), leaves the request unauthenticated.
// Handlers that require authentication check CurrentUser themselves so
// they can return their own user-facing messages.
func SessionAuth(sessions *session.Manager, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := sessions.Get(c); ok {
				if user, err := users.GetUserByID(userID); err == nil {
					c.Set(currentUserKey, user)
				}
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user for the request, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(currentUserKey).(*models.User)
	return user
}
