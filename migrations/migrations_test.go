package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nerrad567/quadbot-core/internal/infrastructure/database"
)

// TestMigrate_AppliesRobotsSchema verifies the embedded migrations produce
// a usable robots table, and that re-running Migrate is a no-op.
func TestMigrate_AppliesRobotsSchema(t *testing.T) {
	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// Table exists and accepts a row
	_, err = db.ExecContext(ctx,
		"INSERT INTO robots (id, name, notes, created_at, updated_at) VALUES (1, 'otto', '', '2026-08-30T00:00:00Z', '2026-08-30T00:00:00Z')")
	if err != nil {
		t.Fatalf("inserting into robots: %v", err)
	}

	// Positive-id constraint enforced
	_, err = db.ExecContext(ctx,
		"INSERT INTO robots (id, name, notes, created_at, updated_at) VALUES (0, 'bad', '', '2026-08-30T00:00:00Z', '2026-08-30T00:00:00Z')")
	if err == nil {
		t.Error("expected CHECK constraint violation for id=0")
	}

	// Idempotent
	if err := db.Migrate(ctx); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}
