package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/conduit/utils"
)

// isUniqueViolation recognises duplicate-key failures from every supported driver, whether
// or not gorm's TranslateError already mapped them.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// conflictOr wraps unique violations as Conflict and returns any other error unchanged.
func conflictOr(err error, format string, args ...any) error {
	if isUniqueViolation(err) {
		return utils.Conflict(err, format, args...)
	}
	return err
}

// notFoundOr maps gorm.ErrRecordNotFound to NotFound and returns any other error unchanged.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(format, args...)
	}
	return err
}
