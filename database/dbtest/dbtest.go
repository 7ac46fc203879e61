// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-api/config"
	"github.com/taskforge-api/database"
	"gorm.io/gorm"
)

// New returns a migrated in-memory database that is closed when the test ends
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db := Open(t)
	require.NoError(t, database.Migrate(db))
	return db
}

// Open returns an empty in-memory database without schema
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := database.Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		URL:          dsn,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// Logger discards everything
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
