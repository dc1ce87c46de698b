package utils

import "strings"

// Slugify lower-cases title, turns every character outside [a-z0-9] into a separator and
// joins the remaining words with single hyphens. It is pure: equal titles give equal slugs.
func Slugify(title string) string {
	lowered := strings.ToLower(title)
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}
