package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens an in-memory SQLite database with the full schema
// applied. Closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}
