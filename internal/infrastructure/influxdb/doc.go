// Package influxdb provides InfluxDB connectivity for Quadbot Core.
//
// It wraps the official influxdb-client-go v2 library with the patterns
// Quadbot uses for connection management, metric writing, and health
// monitoring.
//
// # Purpose
//
// This package handles time-series telemetry for:
//   - Robot command dispatch outcomes (success/failure, latency)
//   - Custom operational measurements
//
// Telemetry is strictly observational. Dispatch results are decided by the
// MQTT publish outcome alone; a dropped or failed telemetry write never
// changes a command result.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   "your-token",
//	    Org:     "quadbot",
//	    Bucket:  "telemetry",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteCommandMetric(2, "dance", true, 8*time.Millisecond)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via the
// SetOnError callback. Connection and health check errors return directly.
package influxdb
