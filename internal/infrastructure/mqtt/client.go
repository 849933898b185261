package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/quadbot-core/internal/infrastructure/config"
)

// State describes the connection lifecycle.
//
// Transitions are driven exclusively by transport notifications: the paho
// connect/connection-lost handlers are the only writers after Connect sets
// the initial StateConnecting. Readers observe the last notification, which
// may lag the real socket state briefly.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Client wraps paho.mqtt.golang with Quadbot-specific functionality.
//
// It provides connection management, command publishing, and automatic
// reconnection with backoff.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
//   - Connection state is mutated only by transport callbacks.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	// state tracks the connection lifecycle, guarded by stateMu.
	state   State
	stateMu sync.RWMutex

	// connected is closed once the first Connected notification arrives.
	// Connect blocks on it (bounded) instead of polling.
	connected     chan struct{}
	connectedOnce sync.Once

	// Callbacks for connection events (optional, set via SetOnConnect/SetOnDisconnect).
	onConnect    func()
	onDisconnect func(err error)
	callbackMu   sync.RWMutex

	// logger for connection event logging (optional, set via SetLogger).
	logger   Logger
	loggerMu sync.RWMutex
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Connect starts a connection attempt against the MQTT broker and returns a
// usable handle.
//
// The paho client is configured with connect-retry and auto-reconnect, so the
// background retry loop owns connection establishment. Connect waits up to
// connectWaitTimeout for the first Connected notification, then returns the
// handle either way: a handle that is not yet connected rejects publishes
// with ErrNotConnected until the broker comes up.
//
// Returns an error only when the configuration cannot produce a client at
// all (for example an empty broker host).
func Connect(cfg config.MQTTConfig) (*Client, error) {
	if cfg.Broker.Host == "" {
		return nil, fmt.Errorf("%w: broker host is empty", ErrConnectionFailed)
	}

	opts := buildClientOptions(cfg)

	c := &Client{
		cfg:       cfg,
		state:     StateConnecting,
		connected: make(chan struct{}),
	}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleDisconnect(err)
	})

	opts.SetReconnectingHandler(func(_ pahomqtt.Client, _ *pahomqtt.ClientOptions) {
		c.setState(StateConnecting)
	})

	c.client = pahomqtt.NewClient(opts)
	c.client.Connect()

	// Bounded wait for the first Connected notification. The retry loop
	// keeps working in the background if this elapses.
	select {
	case <-c.connected:
	case <-time.After(connectWaitTimeout):
		if logger := c.getLogger(); logger != nil {
			logger.Warn("MQTT broker not reachable yet, continuing in background",
				"host", cfg.Broker.Host,
				"port", cfg.Broker.Port,
				"waited", connectWaitTimeout,
			)
		}
	}

	return c, nil
}

// handleConnect is called by the transport when the connection is established.
func (c *Client) handleConnect() {
	c.setState(StateConnected)
	c.connectedOnce.Do(func() {
		close(c.connected)
	})

	if logger := c.getLogger(); logger != nil {
		logger.Info("MQTT connected",
			"host", c.cfg.Broker.Host,
			"port", c.cfg.Broker.Port,
			"client_id", c.cfg.Broker.ClientID,
		)
	}

	c.callbackMu.RLock()
	callback := c.onConnect
	c.callbackMu.RUnlock()
	if callback != nil {
		callback()
	}
}

// handleDisconnect is called by the transport when the connection is lost.
func (c *Client) handleDisconnect(err error) {
	c.setState(StateDisconnected)

	if logger := c.getLogger(); logger != nil {
		logger.Warn("MQTT connection lost", "error", err)
	}

	c.callbackMu.RLock()
	callback := c.onDisconnect
	c.callbackMu.RUnlock()
	if callback != nil {
		callback(err)
	}
}

// setState records a connection state transition.
func (c *Client) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// Close disconnects from the MQTT broker.
//
// Safe to call multiple times and on a handle that never connected; pending
// publishes get a quiesce period before the socket drops.
func (c *Client) Close() error {
	if c.client == nil {
		c.setState(StateDisconnected)
		return nil
	}

	c.client.Disconnect(defaultDisconnectQuiesce)
	c.setState(StateDisconnected)

	return nil
}

// HealthCheck verifies the MQTT connection is alive.
//
// Returns:
//   - error: nil if connected, ErrNotConnected or the context error otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	return nil
}

// IsConnected reports whether the last transport notification was Connected.
//
// Note: This reflects the last known state and may be stale during broker
// failover; a publish issued in that window fails at the transport instead.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// State returns the current connection state.
func (c *Client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// SetOnConnect sets a callback to be invoked when connection is established.
// This is called on initial connect and on every reconnect.
func (c *Client) SetOnConnect(callback func()) {
	c.callbackMu.Lock()
	c.onConnect = callback
	c.callbackMu.Unlock()
}

// SetOnDisconnect sets a callback to be invoked when connection is lost.
// The error parameter describes why the connection was lost.
func (c *Client) SetOnDisconnect(callback func(err error)) {
	c.callbackMu.Lock()
	c.onDisconnect = callback
	c.callbackMu.Unlock()
}

// SetLogger sets a logger for connection event logging.
// If not set, connection events are not logged.
func (c *Client) SetLogger(logger Logger) {
	c.loggerMu.Lock()
	c.logger = logger
	c.loggerMu.Unlock()
}

// getLogger returns the current logger (may be nil).
func (c *Client) getLogger() Logger {
	c.loggerMu.RLock()
	defer c.loggerMu.RUnlock()
	return c.logger
}
