package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"simple":               {"Hello World", "hello-world"},
		"punctuation":          {"Hello, World! This is a test.", "hello-world-this-is-a-test"},
		"newlines":             {"Hello\nWorld\nTest", "hello-world-test"},
		"repeated spaces":      {"Hello   World    Test", "hello-world-test"},
		"mixed case":           {"HeLLo WoRlD", "hello-world"},
		"digits":               {"Hello World 123", "hello-world-123"},
		"consecutive specials": {"Hello!@#$%^&*()World", "hello-world"},
		"leading and trailing": {"  --Go--  ", "go"},
		"empty":                {"", ""},
		"only specials":        {"!!!", ""},
		"non ascii dropped":    {"Café Über", "caf-ber"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	title := "Same Title, Same Slug"
	assert.Equal(t, Slugify(title), Slugify(title))
}
