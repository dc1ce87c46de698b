package utils

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match with errors.Is on any error produced by the store or services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a kind, a caller-facing message and the underlying cause, if any.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) and friends match on kind.
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing article, comment, user or tag.
func NotFound(format string, args ...any) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports that the caller does not own what it tried to mutate.
func Forbidden(format string, args ...any) error {
	return &AppError{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation; cause is the storage error.
func Conflict(cause error, format string, args ...any) error {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...), Err: cause}
}

// InvalidInput reports caller data that failed validation.
func InvalidInput(format string, args ...any) error {
	return &AppError{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports bad credentials.
func Unauthorized(format string, args ...any) error {
	return &AppError{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Message returns the caller-facing message of an AppError, or fallback for anything else.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
