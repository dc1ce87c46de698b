package controllers

import (
	"strconv"

	"github.com/cppla/conduit/store"
)

const maxPageSize = 100

// parseLimitOffset falls back to the defaults for missing, malformed or negative values
// and caps limit at maxPageSize.
func parseLimitOffset(limitStr, offsetStr string) (int, int) {
	limit := store.DefaultLimit
	offset := store.DefaultOffset
	if l, err := strconv.Atoi(limitStr); err == nil && l >= 0 {
		limit = min(l, maxPageSize)
	}
	if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
		offset = o
	}
	return limit, offset
}

// sanitizedPtr applies clean to *s, keeping nil as nil.
func sanitizedPtr(s *string, clean func(string) string) *string {
	if s == nil {
		return nil
	}
	v := clean(*s)
	return &v
}
