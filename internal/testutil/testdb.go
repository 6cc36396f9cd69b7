package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/contractwatch/internal/db"
)

// NewTestDB returns an empty, migrated in-memory record store that lives for
// the duration of t.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	store, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open test record store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
