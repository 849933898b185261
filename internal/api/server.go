package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/quadbot-core/internal/infrastructure/config"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/logging"
	"github.com/nerrad567/quadbot-core/internal/robot"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Dispatcher is the command surface the API exposes over HTTP.
// Satisfied by *robot.Dispatcher.
type Dispatcher interface {
	Dispatch(action string, targets any, params map[string]any) (map[int]robot.CommandResult, error)
}

// HealthChecker reports the readiness of a backing component.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config     config.APIConfig
	Logger     *logging.Logger
	Dispatcher Dispatcher
	Registry   *robot.Registry
	MQTT       HealthChecker // optional: reported in /health
	Database   HealthChecker // optional: reported in /health
	Version    string
}

// Server is the HTTP API server for Quadbot Core.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg        config.APIConfig
	logger     *logging.Logger
	dispatcher Dispatcher
	registry   *robot.Registry
	mqttHealth HealthChecker
	dbHealth   HealthChecker
	version    string
	server     *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("robot registry is required")
	}

	return &Server{
		cfg:        deps.Config,
		logger:     deps.Logger,
		dispatcher: deps.Dispatcher,
		registry:   deps.Registry,
		mqttHealth: deps.MQTT,
		dbHealth:   deps.Database,
		version:    deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// The listener runs in a background goroutine; the server is stopped
// with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
