package robot

import (
	"fmt"
	"time"

	"github.com/nerrad567/quadbot-core/internal/infrastructure/config"
	"github.com/nerrad567/quadbot-core/internal/infrastructure/mqtt"
)

// Connection is the slice of the MQTT client the dispatcher needs.
type Connection interface {
	// IsConnected reports the last transport notification.
	IsConnected() bool

	// Publish sends a payload to a topic at the given QoS.
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// ConnectionProvider hands out the process-wide shared connection.
// Satisfied by mqtt.Manager via a thin adapter.
type ConnectionProvider interface {
	GetOrCreate(cfg config.MQTTConfig) (Connection, error)
}

// Telemetry receives per-command dispatch outcomes.
// Satisfied by the InfluxDB client via a thin adapter.
type Telemetry interface {
	RecordCommand(targetID int, action string, ok bool, duration time.Duration)
}

// noopTelemetry drops all outcomes.
type noopTelemetry struct{}

func (noopTelemetry) RecordCommand(int, string, bool, time.Duration) {}

// Dispatcher fans a single action out to one or more robots over MQTT.
//
// Each target gets its own publish to esp32/robot<N>/sub with the raw action
// string as payload. Failures are per-target: one robot's broken publish
// never stops the rest of the fleet from receiving the command.
type Dispatcher struct {
	provider  ConnectionProvider
	cfg       config.MQTTConfig
	telemetry Telemetry
	logger    Logger
}

// NewDispatcher creates a command dispatcher.
//
// The provider is consulted on every dispatch so the first command after
// startup triggers connection establishment; cfg is the MQTT configuration
// handed to it.
func NewDispatcher(provider ConnectionProvider, cfg config.MQTTConfig) *Dispatcher {
	return &Dispatcher{
		provider:  provider,
		cfg:       cfg,
		telemetry: noopTelemetry{},
		logger:    noopLogger{},
	}
}

// SetTelemetry sets the sink for per-command outcomes.
func (d *Dispatcher) SetTelemetry(t Telemetry) {
	if t != nil {
		d.telemetry = t
	}
}

// SetLogger sets the logger for dispatch events.
func (d *Dispatcher) SetLogger(logger Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// Dispatch publishes the action to every target robot.
//
// Targets accepts a single identifier or a list (see NormalizeTargets).
// Params are accepted for forward compatibility with parameterised actions;
// they are logged but never put on the wire.
//
// The returned map holds one entry per distinct target ID. Duplicate targets
// each trigger their own publish; the later outcome overwrites the earlier
// map entry.
//
// Error contract (short-circuits, nothing dispatched):
//   - ErrInvalidTarget: targets could not be normalized
//   - ErrConnectionUnavailable: no connection, or broker still unreachable
//     after the bounded connect wait
//   - ErrUnknownAction: action outside the vocabulary
//
// Per-target publish failures are reported inside the map, never as a
// dispatch error.
func (d *Dispatcher) Dispatch(action string, targets any, params map[string]any) (map[int]CommandResult, error) {
	ids, err := NormalizeTargets(targets)
	if err != nil {
		return nil, err
	}

	conn, err := d.provider.GetOrCreate(d.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}
	if conn == nil || !conn.IsConnected() {
		d.logger.Warn("dispatch refused, broker not connected",
			"action", action,
			"targets", ids,
		)
		return nil, ErrConnectionUnavailable
	}

	act := Action(action)
	if !act.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	results := make(map[int]CommandResult, len(ids))

	if len(params) > 0 {
		d.logger.Debug("dispatch params ignored on wire", "action", action, "params", params)
	}

	for _, id := range ids {
		topic := mqtt.Topics{}.RobotCommand(id)
		start := time.Now()
		pubErr := conn.Publish(topic, []byte(act.String()), mqtt.QoSAtLeastOnce, false)
		elapsed := time.Since(start)

		if pubErr != nil {
			d.logger.Error("command publish failed",
				"action", action,
				"robot_id", id,
				"topic", topic,
				"error", pubErr,
			)
			results[id] = CommandResult{TargetID: id, OK: false, Status: StatusPublishFailed(act)}
			d.telemetry.RecordCommand(id, act.String(), false, elapsed)
			continue
		}

		d.logger.Info("command dispatched",
			"action", action,
			"robot_id", id,
			"topic", topic,
		)
		results[id] = CommandResult{TargetID: id, OK: true, Status: StatusSuccess(act)}
		d.telemetry.RecordCommand(id, act.String(), true, elapsed)
	}

	return results, nil
}
