package service

import (
	"context"
	"sync"
	"time"

	"examgateway/domain"
	"examgateway/helpers"
	"examgateway/interfaces"
	"examgateway/metrics"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// healthMonitor implements interfaces.HealthSource. It maintains a fresh HealthSnapshot per
// registered backend: a background loop polls each backend's metrics endpoint on a fixed interval
// with a per-poll timeout and classifies the backend from the result. A successful poll makes the
// backend healthy, zeroes its failure counter and overwrites the registry's active count with the
// self-reported value; a failed poll only flips the backend to unhealthy after failureThreshold
// consecutive failures, so one transient miss does not cause flapping. Snapshots are immutable
// records superseded each tick; HealthySnapshot and Snapshot read the cache and never touch the
// network. Poll errors are logged, never returned. Fields under mu: snapshots, failures, closed.
type healthMonitor struct {
	registry         interfaces.Registry
	client           interfaces.MetricsClient
	interval         time.Duration
	pollTimeout      time.Duration
	failureThreshold int
	timeProvider     interfaces.TimeProvider
	logger           log.Logger

	mu        sync.RWMutex
	snapshots map[domain.BackendID]domain.HealthSnapshot
	failures  map[domain.BackendID]int
	closed    bool
	done      chan struct{}
}

// NewHealthMonitor creates the monitor, runs the first poll cycle synchronously and starts the
// background loop. Panics on nil registry, client, timeProvider or logger and on non-positive
// interval, pollTimeout or failureThreshold (fail-fast at startup).
//
// Parameters: registry — backend catalog (List for targets, SetObservedActive on success);
// client — per-backend metrics poller; interval — poll period (e.g. 5s); pollTimeout — per-poll
// deadline (e.g. 2s); failureThreshold — consecutive failures before unhealthy (e.g. 2);
// timeProvider — snapshot timestamps; logger — poll failures and transitions are logged.
//
// Returns: *healthMonitor implementing interfaces.HealthSource, with PollNow and Close.
//
// Called from cmd/main when building the gateway.
func NewHealthMonitor(
	registry interfaces.Registry,
	client interfaces.MetricsClient,
	interval time.Duration,
	pollTimeout time.Duration,
	failureThreshold int,
	timeProvider interfaces.TimeProvider,
	logger log.Logger,
) *healthMonitor {
	if interval <= 0 {
		panic("service.monitor.go: interval must be positive")
	}
	if pollTimeout <= 0 {
		panic("service.monitor.go: pollTimeout must be positive")
	}
	if failureThreshold <= 0 {
		panic("service.monitor.go: failureThreshold must be positive")
	}
	m := &healthMonitor{
		registry:         helpers.NilPanic(registry, "service.monitor.go: registry is required"),
		client:           helpers.NilPanic(client, "service.monitor.go: client is required"),
		interval:         interval,
		pollTimeout:      pollTimeout,
		failureThreshold: failureThreshold,
		timeProvider:     helpers.NilPanic(timeProvider, "service.monitor.go: timeProvider is required"),
		logger:           log.With(helpers.NilPanic(logger, "service.monitor.go: logger is required"), "component", "health_monitor"),
		snapshots:        make(map[domain.BackendID]domain.HealthSnapshot),
		failures:         make(map[domain.BackendID]int),
		done:             make(chan struct{}),
	}
	m.pollAll()
	go m.pollLoop()
	return m
}

// PollNow runs one poll cycle immediately, outside the timer, so a freshly added backend does not
// have to stay unknown for a full interval.
func (m *healthMonitor) PollNow() {
	m.pollAll()
}

// Close stops the background loop. Idempotent; snapshots remain readable after Close.
//
// Called from cmd/main via defer on graceful shutdown.
func (m *healthMonitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

// pollLoop runs pollAll every interval until Close.
//
// Called only from NewHealthMonitor in a separate goroutine.
func (m *healthMonitor) pollLoop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.pollAll()
		case <-m.done:
			return
		}
	}
}

// pollAll polls every registered backend once and updates snapshots, failure counters and the
// registry's observed active counts. Backends no longer in the registry have their state dropped.
//
// Called from pollLoop on timer, once from NewHealthMonitor at startup, and from PollNow.
func (m *healthMonitor) pollAll() {
	backends := m.registry.List()
	for _, b := range backends {
		ctx, cancel := context.WithTimeout(context.Background(), m.pollTimeout)
		report, err := m.client.Poll(ctx, b)
		cancel()
		if err == nil && report.Status != "ok" {
			err = NewGatewayError(ErrInternalServerError, "backend reported status "+report.Status, nil)
		}
		if err != nil {
			m.recordFailure(b, err)
			continue
		}
		m.recordSuccess(b, report)
	}
	m.dropRemoved(backends)
}

// recordSuccess marks the backend healthy, zeroes its failure counter, caches a fresh snapshot and
// overwrites the registry's active count with the backend's self-reported value.
func (m *healthMonitor) recordSuccess(b domain.Backend, report domain.BackendMetrics) {
	now := m.timeProvider.Now()
	m.mu.Lock()
	prev, had := m.snapshots[b.ID]
	m.failures[b.ID] = 0
	m.snapshots[b.ID] = domain.HealthSnapshot{
		BackendID: b.ID,
		Status:    domain.HealthHealthy,
		Active:    report.Active,
		Capacity:  report.Capacity,
		Timestamp: now,
	}
	m.mu.Unlock()
	m.registry.SetObservedActive(b.ID, report.Active)
	metrics.BackendHealthy.WithLabelValues(string(b.ID)).Set(1)
	if !had || prev.Status != domain.HealthHealthy {
		level.Info(m.logger).Log("msg", "backend is healthy", "backend", b.ID, "active", report.Active, "capacity", report.Capacity)
	}
}

// recordFailure increments the consecutive-failure counter and flips the backend to unhealthy once
// the threshold is reached. Below the threshold the previous snapshot stays in place, so a single
// transient failure leaves a healthy backend healthy.
func (m *healthMonitor) recordFailure(b domain.Backend, pollErr error) {
	now := m.timeProvider.Now()
	m.mu.Lock()
	m.failures[b.ID]++
	count := m.failures[b.ID]
	transitioned := false
	if count >= m.failureThreshold {
		prev, had := m.snapshots[b.ID]
		if !had || prev.Status != domain.HealthUnhealthy {
			transitioned = true
		}
		m.snapshots[b.ID] = domain.HealthSnapshot{
			BackendID: b.ID,
			Status:    domain.HealthUnhealthy,
			Active:    prev.Active,
			Capacity:  prev.Capacity,
			Timestamp: now,
		}
	}
	m.mu.Unlock()
	level.Info(m.logger).Log("msg", "poll failed", "backend", b.ID, "consecutive_failures", count, "err", pollErr)
	if transitioned {
		metrics.BackendHealthy.WithLabelValues(string(b.ID)).Set(0)
		level.Error(m.logger).Log("msg", "backend is unhealthy", "backend", b.ID, "consecutive_failures", count)
	}
}

// dropRemoved deletes snapshot and failure state for backends that left the registry.
func (m *healthMonitor) dropRemoved(current []domain.Backend) {
	seen := make(map[domain.BackendID]bool, len(current))
	for _, b := range current {
		seen[b.ID] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.snapshots {
		if !seen[id] {
			delete(m.snapshots, id)
			delete(m.failures, id)
		}
	}
}

// HealthySnapshot returns the latest snapshot for every backend currently healthy, in registry order.
// Reads the cache only; never blocks on network I/O.
//
// Called from service.selector.Choose on every selection.
func (m *healthMonitor) HealthySnapshot() []domain.HealthSnapshot {
	backends := m.registry.List()
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.HealthSnapshot, 0, len(backends))
	for _, b := range backends {
		if s, ok := m.snapshots[b.ID]; ok && s.Status == domain.HealthHealthy {
			out = append(out, s)
		}
	}
	return out
}

// Snapshot returns the latest snapshot for every registered backend in registry order; backends
// with no completed poll yet appear as unknown with the declared capacity and a zero timestamp.
//
// Called from handlers.GetBackends for the admin display.
func (m *healthMonitor) Snapshot() []domain.HealthSnapshot {
	backends := m.registry.List()
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.HealthSnapshot, 0, len(backends))
	for _, b := range backends {
		if s, ok := m.snapshots[b.ID]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, domain.HealthSnapshot{
			BackendID: b.ID,
			Status:    domain.HealthUnknown,
			Capacity:  b.Capacity,
		})
	}
	return out
}
