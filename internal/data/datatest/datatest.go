// Package datatest provides an in-memory SQLite store for tests.
package datatest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"eduresource-api/internal/data"
	"eduresource-api/pkg/database"
)

// NewStore returns a migrated, empty store backed by a private in-memory database.
func NewStore(t testing.TB) *data.Store {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	dialect := database.SQLiteDialect{}
	require.NoError(t, data.Migrate(context.Background(), db, dialect))

	return data.NewStore(db, dialect)
}
