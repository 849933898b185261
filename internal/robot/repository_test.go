package robot

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the robots table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create robots table matching the migration schema
	schema := `
		CREATE TABLE robots (
			id INTEGER PRIMARY KEY CHECK (id > 0),
			name TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// testRobot creates a robot record for testing.
func testRobot(id int, name string) *Robot {
	return &Robot{
		ID:    id,
		Name:  name,
		Notes: "bench unit",
	}
}

func TestSQLiteRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	robot := testRobot(1, "scout")
	if err := repo.Create(ctx, robot); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if robot.CreatedAt.IsZero() || robot.UpdatedAt.IsZero() {
		t.Error("Create() should set timestamps")
	}

	// Duplicate ID rejected
	dup := testRobot(1, "other")
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrRobotExists) {
		t.Errorf("Create() duplicate error = %v, want ErrRobotExists", err)
	}

	// Invalid record rejected before touching the database
	if err := repo.Create(ctx, &Robot{ID: 0, Name: "x"}); !errors.Is(err, ErrInvalidRobot) {
		t.Errorf("Create() invalid error = %v, want ErrInvalidRobot", err)
	}
}

func TestSQLiteRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	created := testRobot(2, "lifter")
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "lifter" || got.Notes != "bench unit" {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, ErrRobotNotFound) {
		t.Errorf("GetByID() missing error = %v, want ErrRobotNotFound", err)
	}
}

func TestSQLiteRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	// Empty list is not an error
	robots, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(robots) != 0 {
		t.Errorf("List() on empty table = %d robots", len(robots))
	}

	for _, r := range []*Robot{testRobot(3, "gamma"), testRobot(1, "alpha"), testRobot(2, "beta")} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	robots, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(robots) != 3 {
		t.Fatalf("List() = %d robots, want 3", len(robots))
	}
	// Ordered by identifier
	for i, want := range []int{1, 2, 3} {
		if robots[i].ID != want {
			t.Errorf("List()[%d].ID = %d, want %d", i, robots[i].ID, want)
		}
	}
}

func TestSQLiteRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	robot := testRobot(1, "scout")
	if err := repo.Create(ctx, robot); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	robot.Name = "scout-2"
	robot.Notes = "regeared"
	if err := repo.Update(ctx, robot); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "scout-2" || got.Notes != "regeared" {
		t.Errorf("Update() not persisted: %+v", got)
	}

	missing := testRobot(42, "ghost")
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrRobotNotFound) {
		t.Errorf("Update() missing error = %v, want ErrRobotNotFound", err)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, testRobot(1, "scout")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, 1); !errors.Is(err, ErrRobotNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrRobotNotFound", err)
	}

	if err := repo.Delete(ctx, 1); !errors.Is(err, ErrRobotNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrRobotNotFound", err)
	}
}
