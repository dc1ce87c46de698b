package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesKind(t *testing.T) {
	err := NotFound("article %q not found", "hello")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, `article "hello" not found`, Message(err, "fallback"))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, `article "hello" not found`, Message(wrapped, "fallback"))
}

func TestConflictKeepsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: favorites.user_id")
	err := Conflict(cause, "article already favorited")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, cause))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required"`
	}

	assert.NoError(t, ValidateStruct(input{Email: "a@b.io", Password: "x"}))

	err := ValidateStruct(input{Email: "nope"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, Message(err, ""), "email must be a valid email")
	assert.Contains(t, Message(err, ""), "password must not be blank")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("a@b.io", "required,email", "email"))

	err := ValidateVar("nope", "required,email", "email")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "email must be a valid email", Message(err, ""))
}
