// Quadbot Core - ESP32 quadruped fleet controller
//
// This is the main entry point for the Quadbot Core application. It exposes
// the robots_control tool surface over HTTP and relays action commands to
// robots over a shared MQTT connection.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/quadbot-core/migrations"

	"github.com/nerrad567/quadbot-core/internal/api"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/config"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/database"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/logging"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/quadbot-core/internal/robot"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Quadbot Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise robot registry
	robotRepo := robot.NewSQLiteRepository(db.DB)
	robotRegistry := robot.NewRegistry(robotRepo)
	robotRegistry.SetLogger(log)

	if refreshErr := robotRegistry.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading robot registry: %w", refreshErr)
	}

	// Shared MQTT connection. The manager keeps a single client for all
	// dispatches; a broker that is down at startup is not fatal since the
	// connection retries in the background.
	manager := mqtt.NewManager(log)
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := manager.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()

	mqttClient, err := manager.GetOrCreate(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating MQTT client: %w", err)
	}
	if !mqttClient.IsConnected() {
		log.Warn("MQTT broker not reachable at startup, dispatches will fail until it comes up",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		)
	}

	mqttClient.SetOnConnect(func() {
		log.Info("MQTT connection established")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Command dispatcher
	dispatcher := robot.NewDispatcher(&connectionProvider{manager: manager}, cfg.MQTT)
	dispatcher.SetLogger(log)
	if influxClient != nil {
		dispatcher.SetTelemetry(&influxTelemetry{client: influxClient})
	}

	// API server
	server, err := api.New(api.Deps{
		Config:     cfg.API,
		Logger:     log,
		Dispatcher: dispatcher,
		Registry:   robotRegistry,
		MQTT:       mqttClient,
		Database:   db,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify connections are healthy. MQTT is excluded: it reconnects in
	// the background and must not block startup.
	if err := healthCheck(ctx, db, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT
	// 4. Database

	log.Info("Quadbot Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses QUADBOT_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("QUADBOT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies the persistent infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}

// connectionProvider adapts mqtt.Manager to the dispatcher's
// ConnectionProvider interface. The indirection exists because the manager
// returns the concrete *mqtt.Client while the dispatcher wants the narrow
// Connection view.
type connectionProvider struct {
	manager *mqtt.Manager
}

// GetOrCreate implements robot.ConnectionProvider.
func (p *connectionProvider) GetOrCreate(cfg config.MQTTConfig) (robot.Connection, error) {
	client, err := p.manager.GetOrCreate(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// influxTelemetry adapts the InfluxDB client to the dispatcher's Telemetry
// interface.
type influxTelemetry struct {
	client *influxdb.Client
}

// RecordCommand implements robot.Telemetry.
func (t *influxTelemetry) RecordCommand(targetID int, action string, ok bool, duration time.Duration) {
	t.client.WriteCommandMetric(targetID, action, ok, duration)
}
