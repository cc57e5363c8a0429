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

// ShutdownFunc releases one component.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager owns the process-wide components built at startup and tears them down
// in reverse registration order.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	signals []os.Signal

	mu    sync.Mutex
	hooks []hook
	done  bool
}

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
		signals: []os.Signal{syscall.SIGTERM, syscall.SIGINT},
	}
}

// Register adds a named shutdown hook. Hooks registered after Shutdown are ignored.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		m.logger.Warn("hook registered after shutdown", zap.String("component", name))
		return
	}
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Components lists registered hook names in shutdown order.
func (m *Manager) Components() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.hooks))
	for i := len(m.hooks) - 1; i >= 0; i-- {
		names = append(names, m.hooks[i].name)
	}
	return names
}

// Shutdown runs every hook once, newest first, within the configured timeout.
// Failing hooks do not stop the remaining ones; their errors are joined.
// Subsequent calls are no-ops.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return nil
	}
	m.done = true
	hooks := m.hooks
	m.hooks = nil
	m.mu.Unlock()

	var result error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		started := time.Now()
		if err := h.fn(ctx); err != nil {
			m.logger.Error("shutdown hook failed", zap.String("component", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped",
			zap.String("component", h.name),
			zap.Duration("took", time.Since(started)),
		)
	}
	if err := ctx.Err(); err != nil {
		result = errors.Join(result, err)
	}
	return result
}

// NotifyContext returns a context cancelled on SIGINT or SIGTERM.
func (m *Manager) NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, m.signals...)
}
