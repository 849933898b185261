package robot

import (
	"context"
	"fmt"
	"sync"
)

// Logger defines the logging interface used by this package.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry provides robot metadata management with caching and thread safety.
// It wraps a Repository and adds an in-memory cache for fast lookups.
//
// The cache is populated on startup via RefreshCache() and kept in sync
// by cache-invalidating CRUD operations.
//
// The registry never gates dispatch: commands address any positive
// identifier whether or not a record exists here.
//
// All public methods are thread-safe.
type Registry struct {
	repo    Repository
	cache   map[int]Robot
	cacheMu sync.RWMutex
	logger  Logger
}

// NewRegistry creates a new robot registry.
// The repository is used for persistence; the registry adds caching.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[int]Robot),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// RefreshCache reloads all robots from the repository into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	robots, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading robots: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[int]Robot, len(robots))
	for _, robot := range robots {
		r.cache[robot.ID] = robot
	}

	r.logger.Info("robot cache refreshed", "count", len(robots))
	return nil
}

// Get retrieves a robot by ID.
// Returns ErrRobotNotFound if the robot does not exist.
func (r *Registry) Get(ctx context.Context, id int) (*Robot, error) {
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()

	if ok {
		robot := cached
		return &robot, nil
	}

	// Might be a new robot not yet cached.
	robot, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	r.cache[robot.ID] = *robot
	r.cacheMu.Unlock()

	return robot, nil
}

// List retrieves all robots ordered by identifier.
func (r *Registry) List(ctx context.Context) ([]Robot, error) {
	// Always hit the repository for ordering; the cache serves point lookups.
	return r.repo.List(ctx)
}

// Create inserts a new robot record and caches it.
func (r *Registry) Create(ctx context.Context, robot *Robot) error {
	if err := r.repo.Create(ctx, robot); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[robot.ID] = *robot
	r.cacheMu.Unlock()

	r.logger.Info("robot created", "robot_id", robot.ID, "name", robot.Name)
	return nil
}

// Update modifies an existing robot record and refreshes its cache entry.
func (r *Registry) Update(ctx context.Context, robot *Robot) error {
	if err := r.repo.Update(ctx, robot); err != nil {
		return err
	}

	r.cacheMu.Lock()
	r.cache[robot.ID] = *robot
	r.cacheMu.Unlock()

	r.logger.Info("robot updated", "robot_id", robot.ID)
	return nil
}

// Delete removes a robot record and evicts it from the cache.
func (r *Registry) Delete(ctx context.Context, id int) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, id)
	r.cacheMu.Unlock()

	r.logger.Info("robot deleted", "robot_id", id)
	return nil
}
