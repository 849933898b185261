package influxdb_test

import (
	"errors"
	"testing"

	"github.com/nerrad567/quadbot-core/internal/infrastructure/config"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/influxdb"
)

// testConfig returns a configuration pointing at a non-existent server.
// Connection tests exercise the opt-out and failure paths only; a live
// server is not part of the suite.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:59999",
		Token:         "quadbot-dev-token",
		Org:           "quadbot",
		Bucket:        "telemetry",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := influxdb.Connect(testConfig())
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}
