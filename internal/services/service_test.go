package services

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"reeflog/internal/db"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, dialect, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(database, dialect))
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func countRows(t *testing.T, database *sqlx.DB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, database.Get(&count, "SELECT count(*) FROM "+table))
	return count
}
