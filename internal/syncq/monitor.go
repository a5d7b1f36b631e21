// Package syncq provides the connectivity signal and the offline sync queue.
// Saves are never blocked on connectivity: while offline the generated text
// is queued on disk, and the queue is drained when the monitor observes the
// connection coming back.
package syncq

import (
	"context"
	"net"
	"sync"
	"time"
)

// probeAddr is dialed to decide whether the network is reachable. Cloudflare
// DNS answers on 443 from effectively everywhere.
const probeAddr = "1.1.1.1:443"

const probeTimeout = 3 * time.Second

// Monitor tracks whether the network is reachable. The state is observed,
// never controlled: callers read IsOnline and subscribe to transitions.
type Monitor struct {
	mu      sync.Mutex
	online  bool
	forced  bool // forced offline, set by the --offline flag
	probe   func() bool
	subs    []func(online bool)
	started bool
}

// NewMonitor creates a monitor using the default network probe
func NewMonitor() *Monitor {
	return &Monitor{
		online: true,
		probe:  dialProbe,
	}
}

// NewMonitorWithProbe creates a monitor with a custom reachability probe,
// used by tests and the forced-offline mode
func NewMonitorWithProbe(probe func() bool) *Monitor {
	return &Monitor{
		online: true,
		probe:  probe,
	}
}

func dialProbe() bool {
	conn, err := net.DialTimeout("tcp", probeAddr, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ForceOffline pins the monitor to the offline state regardless of what the
// probe reports
func (m *Monitor) ForceOffline(forced bool) {
	m.mu.Lock()
	m.forced = forced
	m.mu.Unlock()
	if forced {
		m.setOnline(false)
	}
}

// IsOnline reports the last observed connectivity state
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forced {
		return false
	}
	return m.online
}

// Subscribe registers a callback invoked on every connectivity transition.
// Callbacks run on the monitor's goroutine and should return quickly.
func (m *Monitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Check runs one probe immediately and updates the state
func (m *Monitor) Check() bool {
	m.mu.Lock()
	forced := m.forced
	probe := m.probe
	m.mu.Unlock()

	if forced {
		m.setOnline(false)
		return false
	}

	online := probe()
	m.setOnline(online)
	return online
}

// Start probes connectivity at the given interval until the context ends
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		m.Check()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check()
			}
		}
	}()
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	subs := make([]func(bool), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(online)
	}
}
