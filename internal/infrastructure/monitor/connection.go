package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Probe is a dependency the monitor pings.
type Probe interface {
	Name() string
	Ping(ctx context.Context) error
}

// Monitor pings the store and cache on a cron schedule and keeps the latest result.
type Monitor struct {
	probes  []Probe
	timeout time.Duration

	status Status
	mu     sync.RWMutex
	cron   *cron.Cron
	logger *zap.Logger
}

func New(probes []Probe, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		probes:  probes,
		timeout: 3 * time.Second,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger,
	}
	if m.timeout > interval {
		m.timeout = interval
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := m.cron.AddFunc(schedule, m.Refresh); err != nil {
		logger.Error("health schedule rejected", zap.String("schedule", schedule), zap.Error(err))
	}
	return m
}

// Start runs a first check synchronously, then launches the scheduler.
func (m *Monitor) Start() {
	m.Refresh()
	m.cron.Start()
}

// Stop halts the scheduler and waits for a running check to finish or ctx to expire.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	services := make(map[string]bool, len(m.status.Services))
	for name, ok := range m.status.Services {
		services[name] = ok
	}
	return Status{Services: services, LastCheck: m.status.LastCheck}
}

// Refresh pings every probe once and stores the result.
func (m *Monitor) Refresh() {
	services := make(map[string]bool, len(m.probes))
	for _, p := range m.probes {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		err := p.Ping(ctx)
		cancel()

		services[p.Name()] = err == nil
		if err != nil {
			m.logger.Warn("dependency ping failed", zap.String("service", p.Name()), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.status = Status{Services: services, LastCheck: time.Now()}
	m.mu.Unlock()
}

type funcProbe struct {
	name string
	ping func(ctx context.Context) error
}

func (p funcProbe) Name() string                   { return p.name }
func (p funcProbe) Ping(ctx context.Context) error { return p.ping(ctx) }

// NewProbe adapts a ping function to a Probe.
func NewProbe(name string, ping func(ctx context.Context) error) Probe {
	return funcProbe{name: name, ping: ping}
}
