package robot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for robot metadata persistence.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// GetByID retrieves a robot by its numeric identifier.
	// Returns ErrRobotNotFound if the robot does not exist.
	GetByID(ctx context.Context, id int) (*Robot, error)

	// List retrieves all robots ordered by identifier.
	List(ctx context.Context) ([]Robot, error)

	// Create inserts a new robot record.
	// Returns ErrRobotExists if a robot with the same ID already exists.
	Create(ctx context.Context, robot *Robot) error

	// Update modifies an existing robot record.
	// Returns ErrRobotNotFound if the robot does not exist.
	Update(ctx context.Context, robot *Robot) error

	// Delete removes a robot by ID.
	// Returns ErrRobotNotFound if the robot does not exist.
	Delete(ctx context.Context, id int) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a robot by its numeric identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int) (*Robot, error) {
	query := `
		SELECT id, name, notes, created_at, updated_at
		FROM robots
		WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	robot, err := scanRobot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRobotNotFound
		}
		return nil, fmt.Errorf("querying robot by id: %w", err)
	}
	return robot, nil
}

// List retrieves all robots ordered by identifier.
func (r *SQLiteRepository) List(ctx context.Context) ([]Robot, error) {
	query := `
		SELECT id, name, notes, created_at, updated_at
		FROM robots
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying robots: %w", err)
	}
	defer rows.Close()

	var robots []Robot
	for rows.Next() {
		robot, err := scanRobotFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning robot: %w", err)
		}
		robots = append(robots, *robot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating robots: %w", err)
	}

	return robots, nil
}

// Create inserts a new robot record.
func (r *SQLiteRepository) Create(ctx context.Context, robot *Robot) error {
	if err := robot.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if robot.CreatedAt.IsZero() {
		robot.CreatedAt = now
	}
	robot.UpdatedAt = now

	query := `
		INSERT INTO robots (id, name, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		robot.ID,
		robot.Name,
		robot.Notes,
		robot.CreatedAt.Format(time.RFC3339),
		robot.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrRobotExists
		}
		return fmt.Errorf("inserting robot: %w", err)
	}

	return nil
}

// Update modifies an existing robot record.
func (r *SQLiteRepository) Update(ctx context.Context, robot *Robot) error {
	if err := robot.Validate(); err != nil {
		return err
	}

	robot.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE robots SET name = ?, notes = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		robot.Name,
		robot.Notes,
		robot.UpdatedAt.Format(time.RFC3339),
		robot.ID,
	)
	if err != nil {
		return fmt.Errorf("updating robot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRobotNotFound
	}

	return nil
}

// Delete removes a robot by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM robots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting robot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRobotNotFound
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning logic.
type scanner interface {
	Scan(dest ...any) error
}

// scanRobot scans a single robot from a row.
func scanRobot(row scanner) (*Robot, error) {
	var robot Robot
	var createdAt, updatedAt string

	if err := row.Scan(&robot.ID, &robot.Name, &robot.Notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	robot.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	robot.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &robot, nil
}

// scanRobotFromRows scans a robot from a multi-row result set.
func scanRobotFromRows(rows *sql.Rows) (*Robot, error) {
	return scanRobot(rows)
}

// isUniqueConstraintError detects SQLite unique constraint violations.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
