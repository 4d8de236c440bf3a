package test_utils

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/agendum/agendum/internal/database"
)

// SetupTestDB creates a temporary SQLite database and applies all migrations.
// Each test gets its own file, so databases are completely isolated.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "agendum_test.db")
	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return db
}
