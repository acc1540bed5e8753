package monitor

import (
	"context"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe checks that one store is reachable.
type Probe func(ctx context.Context) error

type Monitor struct {
	probes  map[string]Probe
	timeout time.Duration

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(probes map[string]Probe, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		probes:   probes,
		timeout:  3 * time.Second,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Start checks every store once and then keeps checking in the background
// until Stop is called.
func (m *Monitor) Start() {
	m.refresh()
	go m.loop()
}

// Stop ends the background checks and waits for the loop to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		<-m.done
	})
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Online()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{Stores: maps.Clone(m.status.Stores), LastCheck: m.status.LastCheck}
}

func (m *Monitor) loop() {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	stores := make(map[string]bool, len(m.probes))
	for name, probe := range m.probes {
		stores[name] = m.check(probe)
	}

	m.mu.Lock()
	previous := m.status.Stores
	m.status = Status{Stores: stores, LastCheck: time.Now()}
	m.mu.Unlock()

	for name, ok := range stores {
		was, seen := previous[name]
		switch {
		case !ok && (!seen || was):
			m.logger.Warn("store offline", zap.String("store", name))
		case ok && seen && !was:
			m.logger.Info("store online", zap.String("store", name))
		}
	}
}

func (m *Monitor) check(probe Probe) bool {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	return probe(ctx) == nil
}
