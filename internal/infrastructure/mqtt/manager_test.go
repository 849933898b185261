package mqtt

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// Manager Tests
// =============================================================================

func TestManagerGetOrCreateSharedHandle(t *testing.T) {
	shortenConnectWait(t, 100*time.Millisecond)

	m := NewManager(nil)
	defer m.Close()

	first, err := m.GetOrCreate(testConfig())
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	second, err := m.GetOrCreate(testConfig())
	if err != nil {
		t.Fatalf("second GetOrCreate() error = %v", err)
	}

	if first != second {
		t.Error("GetOrCreate() returned different handles")
	}
}

func TestManagerGetOrCreateConcurrent(t *testing.T) {
	shortenConnectWait(t, 100*time.Millisecond)

	m := NewManager(nil)
	defer m.Close()

	const goroutines = 8
	handles := make([]*Client, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.GetOrCreate(testConfig())
			if err != nil {
				t.Errorf("GetOrCreate() error = %v", err)
				return
			}
			handles[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if handles[i] != handles[0] {
			t.Fatalf("goroutine %d got a different handle", i)
		}
	}
}

func TestManagerFirstConfigWins(t *testing.T) {
	shortenConnectWait(t, 100*time.Millisecond)

	m := NewManager(nil)
	defer m.Close()

	first := testConfig()
	first.Broker.ClientID = "quadbot-first"
	client, err := m.GetOrCreate(first)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	second := testConfig()
	second.Broker.ClientID = "quadbot-second"
	again, err := m.GetOrCreate(second)
	if err != nil {
		t.Fatalf("second GetOrCreate() error = %v", err)
	}

	if again != client {
		t.Fatal("GetOrCreate() with different config returned a new handle")
	}
	if again.cfg.Broker.ClientID != "quadbot-first" {
		t.Errorf("client ID = %q, want first caller's %q", again.cfg.Broker.ClientID, "quadbot-first")
	}
}

func TestManagerGeneratesClientID(t *testing.T) {
	shortenConnectWait(t, 100*time.Millisecond)

	m := NewManager(nil)
	defer m.Close()

	cfg := testConfig()
	cfg.Broker.ClientID = ""

	client, err := m.GetOrCreate(cfg)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if !strings.HasPrefix(client.cfg.Broker.ClientID, "robot_") {
		t.Errorf("generated client ID = %q, want robot_ prefix", client.cfg.Broker.ClientID)
	}
}

func TestManagerHandleBeforeCreate(t *testing.T) {
	m := NewManager(nil)

	if m.Handle() != nil {
		t.Error("Handle() before GetOrCreate should be nil")
	}
}

func TestManagerCloseIdempotent(t *testing.T) {
	shortenConnectWait(t, 100*time.Millisecond)

	m := NewManager(nil)
	if err := m.Close(); err != nil {
		t.Errorf("Close() before create error = %v", err)
	}

	if _, err := m.GetOrCreate(testConfig()); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if m.Handle() != nil {
		t.Error("Handle() after Close should be nil")
	}
}
