// Package storetest opens throwaway in-memory databases for tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/conduit/config"
	"github.com/cppla/conduit/models"
	"github.com/cppla/conduit/store"
)

// Open returns a migrated in-memory sqlite database that is closed when t ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.OpenDatabase(config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: ":memory:",
		LogLevel:    "silent",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore returns a GormStore over a fresh database, plus the database for direct setup.
func NewStore(t testing.TB) (*store.GormStore, *gorm.DB) {
	t.Helper()
	db := Open(t)
	return store.New(db), db
}

// CreateUser inserts a user with throwaway credentials.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Salt:         "00",
		Bio:          username + " bio",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
