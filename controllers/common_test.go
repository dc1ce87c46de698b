package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLimitOffset(t *testing.T) {
	cases := map[string]struct {
		limit, offset         string
		wantLimit, wantOffset int
	}{
		"defaults":       {"", "", 20, 0},
		"explicit":       {"5", "10", 5, 10},
		"zero limit":     {"0", "0", 0, 0},
		"malformed":      {"abc", "x", 20, 0},
		"negative":       {"-1", "-3", 20, 0},
		"capped at max":  {"500", "2", maxPageSize, 2},
		"exactly at max": {"100", "", 100, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			limit, offset := parseLimitOffset(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
