package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
api:
  host: "0.0.0.0"
  port: 8080
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.MQTT.Broker.Host != "localhost" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "localhost")
	}

	if cfg.MQTT.Broker.ClientID != "test-client" {
		t.Errorf("MQTT.Broker.ClientID = %q, want %q", cfg.MQTT.Broker.ClientID, "test-client")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// A minimal file relies on defaults for everything else.
	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "mqtt.xiaozhi.vip" {
		t.Errorf("default MQTT host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.xiaozhi.vip")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("default MQTT port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.QoS != 1 {
		t.Errorf("default QoS = %d, want 1", cfg.MQTT.QoS)
	}
	if cfg.MQTT.Broker.ClientID != "" {
		t.Errorf("default ClientID = %q, want empty (generated at connect)", cfg.MQTT.Broker.ClientID)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
mqtt:
  broker:
    host: ""
    port: 1883
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Error("Load() expected validation error for empty broker host, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUADBOT_MQTT_HOST", "broker.example.com")
	t.Setenv("QUADBOT_MQTT_PORT", "8883")
	t.Setenv("QUADBOT_MQTT_PASSWORD", "hunter2")

	cfg, err := Load(writeConfig(t, "mqtt:\n  broker:\n    host: localhost\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "broker.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want env override", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker.Port = %d, want 8883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Auth.Password != "hunter2" {
		t.Errorf("MQTT.Auth.Password not overridden from environment")
	}
}

func TestValidate_InfluxRequiresURLAndToken(t *testing.T) {
	cfg := defaultConfig()
	cfg.InfluxDB.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for enabled influxdb without url/token")
	}

	cfg.InfluxDB.URL = "http://localhost:8086"
	cfg.InfluxDB.Token = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_QoSRange(t *testing.T) {
	cfg := defaultConfig()
	cfg.MQTT.QoS = 3

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for qos=3")
	}
}
