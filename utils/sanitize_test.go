package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePlainKeepsTextUnescaped(t *testing.T) {
	cases := map[string]struct {
		in, want string
	}{
		"ampersand and quote": {"Don't Panic & Relax", "Don't Panic & Relax"},
		"tag name":            {"R&D", "R&D"},
		"markup stripped":     {"<b>bold</b> move", "bold move"},
		"script dropped":      {"hi<script>alert(1)</script>", "hi"},
		"trimmed":             {"  spaced  ", "spaced"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizePlain(tc.in))
		})
	}
}

func TestSanitizeKeepsSafeMarkup(t *testing.T) {
	out := Sanitize("<p>body</p><script>alert(1)</script>")
	assert.Equal(t, "<p>body</p>", out)
}
