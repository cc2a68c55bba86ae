package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	PasswordHash string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Bio          *string   `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Bio      string `json:"bio,omitempty" form:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UpdateProfileRequest updates the caller's profile. Bio is a pointer so
// an absent field leaves the stored bio untouched while an explicit
// empty string clears it.
type UpdateProfileRequest struct {
	Name string  `json:"name" form:"name" validate:"required,min=1,max=50"`
	Bio  *string `json:"bio,omitempty" form:"bio" validate:"omitempty,max=500"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" form:"password"`
}

// SessionClaims are custom claims extending standard jwt.RegisteredClaims.
// The session cookie carries a token signed over these claims, so the
// numeric user id cannot be forged by editing the cookie value.
type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
