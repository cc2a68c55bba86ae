package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"weird+tag@host.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"no-at.example.com",
		"spaces in@example.com",
		"user@nodot",
		"user@ example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	type form struct {
		Email string `validate:"required,simple_email"`
	}

	assert.NoError(t, v.Validate(&form{Email: "user@example.com"}))
	assert.Error(t, v.Validate(&form{Email: "not-an-email"}))
}
