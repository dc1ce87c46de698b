package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, splitAndTrim([]string{" https://a.io , https://b.io,"}))
	assert.Equal(t, []string{"*"}, splitAndTrim([]string{"*"}))
	assert.Empty(t, splitAndTrim(nil))
}

func TestToGormLogLevel(t *testing.T) {
	assert.NotEqual(t, toGormLogLevel("debug"), toGormLogLevel("silent"))
	assert.Equal(t, toGormLogLevel("info"), toGormLogLevel("bogus"))
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(AppConfig{DBDriver: "oracle"})
	assert.Error(t, err)
}
