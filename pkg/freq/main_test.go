package freq

import (
	"path/filepath"
	"testing"
)

// setupTestStore creates a temporary SQLite database and a Store for testing.
// Resources are released via t.Cleanup.
func setupTestStore(t *testing.T) *Store {
	dbFile := filepath.Join(t.TempDir(), "stats.db")
	db, err := OpenDB(dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}
	// Running setup twice must be harmless.
	if err := SetupSchema(db); err != nil {
		t.Fatalf("SetupSchema() is not idempotent: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return s
}
