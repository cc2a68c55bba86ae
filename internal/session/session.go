package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/pkg/logger"
)

// CookieName is the session cookie set on login/registration.
const CookieName = "session_token"

// TTL is the fixed session lifetime; there is no server-side session store,
// rotation, or revocation list. A session dies when the cookie expires or
// the user row it points at no longer exists.
const TTL = 7 * 24 * time.Hour

// Manager issues and validates session cookies. The cookie value is an
// HS256-signed token carrying the numeric user id, so a client can read
// the cookie but cannot mint one for another user.
type Manager struct {
	secret []byte
	secure bool
}

// NewManager creates a session Manager. secure controls the cookie's
// Secure flag and should be tied to the deployment environment.
func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Create signs a session token for userID and sets it as an http-only,
// lax same-site cookie with a 7-day max-age.
func (m *Manager) Create(c echo.Context, userID uint) error {
	now := time.Now()
	claims := &models.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get reads and verifies the session cookie. It never fails: a missing,
// tampered, or expired cookie yields (0, false).
func (m *Manager) Get(c echo.Context) (uint, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return 0, false
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		logger.Warn.Printf("rejected session cookie: %v", err)
		return 0, false
	}

	return claims.UserID, true
}

// Destroy clears the session cookie.
func (m *Manager) Destroy(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
