package mqtt

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nerrad567/quadbot-core/internal/infrastructure/config"
)

// Manager hands out a single shared Client for the whole process.
//
// Every dispatch path goes through GetOrCreate so all robot commands ride
// one broker connection. The first caller's configuration wins; later calls
// return the existing handle regardless of the config they pass.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Manager struct {
	mu     sync.Mutex
	client *Client
	logger Logger
}

// NewManager creates a connection manager.
//
// Parameters:
//   - logger: Logger for connection events (may be nil)
func NewManager(logger Logger) *Manager {
	return &Manager{logger: logger}
}

// GetOrCreate returns the shared client, starting a connection attempt on
// first use.
//
// The first call builds the client from cfg, generating a random client ID
// when cfg leaves it empty, and waits (bounded) for the broker. Subsequent
// calls return the same handle without touching cfg. The returned handle may
// not be connected yet; publishes on it fail with ErrNotConnected until the
// background retry loop succeeds.
func (m *Manager) GetOrCreate(cfg config.MQTTConfig) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}

	if cfg.Broker.ClientID == "" {
		cfg.Broker.ClientID = "robot_" + uuid.NewString()
	}

	client, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if m.logger != nil {
		client.SetLogger(m.logger)
	}

	m.client = client
	return client, nil
}

// Handle returns the shared client, or nil if GetOrCreate has not run yet.
func (m *Manager) Handle() *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// Close disconnects the shared client. Safe to call multiple times and
// before any client exists.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Close()
	m.client = nil
	return err
}
