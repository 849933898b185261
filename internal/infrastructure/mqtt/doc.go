// Package mqtt provides MQTT client connectivity for Quadbot Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Command publishing with QoS guarantees
//   - A process-wide shared connection via Manager
//   - Connection health monitoring
//
// # Architecture
//
// Quadbot uses MQTT as the command channel between the core and the ESP32
// robot fleet. Each robot subscribes to its own command topic and executes
// the action named in the payload.
//
//	Quadbot Core → MQTT Broker → esp32/robot<N>/sub → robot firmware
//
// The connection is shared: Manager.GetOrCreate hands every caller the same
// Client, so all commands ride one broker session. Connection state is a
// three-way cell (disconnected/connecting/connected) mutated only by
// transport notifications; publishes are gated on it rather than probing
// the socket.
//
// # Security Considerations
//
//   - TLS is available for deployments that need it (cfg.Broker.TLS=true)
//   - Credentials are optional; the public robot broker allows anonymous access
//   - Command payloads are plain action strings, not encrypted beyond transport
//
// # Usage
//
//	manager := mqtt.NewManager(logger)
//	client, err := manager.GetOrCreate(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	topic := mqtt.Topics{}.RobotCommand(2)
//	client.Publish(topic, []byte("dance"), mqtt.QoSAtLeastOnce, false)
package mqtt
