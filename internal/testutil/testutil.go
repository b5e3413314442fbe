package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/vocabflash/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The connection pool is capped at one connection so the database survives
// for the lifetime of the handle.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// NewTestAppDB is NewTestDB for callers that need the *db.DB wrapper.
func NewTestAppDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertWord adds a word row directly and returns its id.
func InsertWord(t *testing.T, database *sql.DB, source, target string) int64 {
	t.Helper()
	res, err := database.ExecContext(context.Background(),
		`INSERT INTO words (source_text, target_text) VALUES (?, ?)`, source, target)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
