package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// CloseFunc releases one long-lived resource, such as a store connection.
type CloseFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   CloseFunc
}

// Manager closes registered resources in reverse order and turns OS
// termination signals into run cancellation.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	hooks  []hook
	closed bool
}

// New creates a lifecycle manager with the desired close timeout.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a close hook. Hooks run in reverse registration order.
func (m *Manager) Register(name string, fn CloseFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Shutdown runs every hook once, respecting the configured timeout. A failing
// hook does not stop the remaining ones; all failures are joined.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		if err := h.fn(ctx); err != nil {
			m.logger.Error("close hook failed", zap.String("component", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Debug("component closed", zap.String("component", h.name))
	}
	return result
}

// Listen cancels the run when SIGINT or SIGTERM arrives. The returned stop
// function detaches the signal handler.
func (m *Manager) Listen(cancel context.CancelFunc) (stop func()) {
	if cancel == nil {
		return func() {}
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			m.logger.Warn("termination signal received, aborting run", zap.String("signal", sig.String()))
			cancel()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}
