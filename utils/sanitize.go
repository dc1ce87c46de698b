package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizer = bluemonday.UGCPolicy()
	plainText = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS attacks, keeping user-generated markup.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// SanitizePlain strips all markup and returns unescaped text; used for single-line fields
// such as titles and tags, which are stored and matched as plain text.
func SanitizePlain(input string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(input)))
}
