package service

import (
	"sync"
	"time"

	"examgateway/domain"
	"examgateway/helpers"
	"examgateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// sessionTable implements interfaces.SessionTable. One mutex guards the whole table and is the
// linearization point for session routing: BindOrLookup runs the chooser while holding it, so two
// concurrent first requests for the same new key cannot create two bindings — the second racer
// observes the first's. The table is also the only writer of the registry's active counters
// (IncActive on bind, DecActive on release), keeping increment-and-bind atomic with respect to
// concurrent selections. A background sweeper releases bindings idle longer than idleWindow.
// Fields under mu: bindings, closed.
type sessionTable struct {
	registry      interfaces.Registry
	timeProvider  interfaces.TimeProvider
	idleWindow    time.Duration
	sweepInterval time.Duration
	logger        log.Logger

	mu       sync.Mutex
	bindings map[string]*domain.SessionBinding
	closed   bool
	done     chan struct{}
}

// NewSessionTable creates the table and starts the idle sweeper. Panics on nil registry,
// timeProvider or logger and on non-positive idleWindow or sweepInterval (fail-fast at startup).
//
// Parameters: registry — owner of the active counters the table increments and decrements;
// timeProvider — CreatedAt/LastSeen stamps and the sweeper's idle check; idleWindow — bindings
// with no request for this long are swept (e.g. 30m); sweepInterval — sweeper period (e.g. 1m);
// logger — sweeps are logged.
//
// Returns: *sessionTable implementing interfaces.SessionTable.
//
// Called from cmd/main when building the gateway.
func NewSessionTable(
	registry interfaces.Registry,
	timeProvider interfaces.TimeProvider,
	idleWindow time.Duration,
	sweepInterval time.Duration,
	logger log.Logger,
) *sessionTable {
	if idleWindow <= 0 {
		panic("service.session_table.go: idleWindow must be positive")
	}
	if sweepInterval <= 0 {
		panic("service.session_table.go: sweepInterval must be positive")
	}
	t := &sessionTable{
		registry:      helpers.NilPanic(registry, "service.session_table.go: registry is required"),
		timeProvider:  helpers.NilPanic(timeProvider, "service.session_table.go: timeProvider is required"),
		idleWindow:    idleWindow,
		sweepInterval: sweepInterval,
		logger:        log.With(helpers.NilPanic(logger, "service.session_table.go: logger is required"), "component", "session_table"),
		bindings:      make(map[string]*domain.SessionBinding),
		done:          make(chan struct{}),
	}
	go t.sweepLoop()
	return t
}

// BindOrLookup returns the backend bound to key, or runs choose under the table lock and binds the
// result. The chooser only does in-memory work (snapshot reads), so holding the lock across it is
// cheap and buys the per-key linearization the routing contract requires. On a fresh bind the
// chosen backend's active count is incremented; when choose errors nothing changes.
//
// Parameters: key — non-empty session key; choose — picks a backend for a fresh binding.
//
// Returns: (id, true, nil) on sticky reuse; (id, false, nil) after a fresh bind; ("", false, err)
// when the key was unbound and choose failed (typically no_healthy_backend).
//
// Called from service.gateway for requests that may start a new session.
func (t *sessionTable) BindOrLookup(key string, choose func() (domain.BackendID, error)) (domain.BackendID, bool, error) {
	now := t.timeProvider.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.bindings[key]; ok {
		b.LastSeen = now
		return b.BackendID, true, nil
	}
	id, err := choose()
	if err != nil {
		return "", false, err
	}
	t.bindings[key] = &domain.SessionBinding{Key: key, BackendID: id, CreatedAt: now, LastSeen: now}
	t.registry.IncActive(id)
	return id, false, nil
}

// Bind creates or overwrites the binding key → id, adjusting active counts when the backend
// changes. Used when the backend mints the session key on exam start, so the key only becomes
// known from its response.
//
// Called from service.gateway after a successful exam-start forward.
func (t *sessionTable) Bind(key string, id domain.BackendID) {
	now := t.timeProvider.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.bindings[key]; ok {
		if b.BackendID == id {
			b.LastSeen = now
			return
		}
		t.registry.DecActive(b.BackendID)
	}
	t.bindings[key] = &domain.SessionBinding{Key: key, BackendID: id, CreatedAt: now, LastSeen: now}
	t.registry.IncActive(id)
}

// Lookup returns the bound backend for key and refreshes the binding's last-seen time.
//
// Called from service.gateway for requests carrying a session key.
func (t *sessionTable) Lookup(key string) (domain.BackendID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.bindings[key]
	if !ok {
		return "", false
	}
	b.LastSeen = t.timeProvider.Now()
	return b.BackendID, true
}

// Release removes the binding and decrements the bound backend's active count by exactly one.
// Idempotent: a second release of the same key is a no-op.
//
// Returns: true when a binding was actually removed.
//
// Called from service.gateway on session termination and from sweepIdle.
func (t *sessionTable) Release(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.releaseLocked(key)
}

// releaseLocked removes the binding and decrements its backend's counter. Caller must hold t.mu.
func (t *sessionTable) releaseLocked(key string) bool {
	b, ok := t.bindings[key]
	if !ok {
		return false
	}
	delete(t.bindings, key)
	t.registry.DecActive(b.BackendID)
	return true
}

// Bindings returns a copy of all live bindings, for the admin display and tests.
func (t *sessionTable) Bindings() []domain.SessionBinding {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.SessionBinding, 0, len(t.bindings))
	for _, b := range t.bindings {
		out = append(out, *b)
	}
	return out
}

// Close stops the sweeper goroutine. Idempotent; live bindings stay readable after Close.
//
// Called from cmd/main via defer on graceful shutdown.
func (t *sessionTable) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.done)
	return nil
}

// sweepLoop runs sweepIdle every sweepInterval until Close.
//
// Called only from NewSessionTable in a separate goroutine.
func (t *sessionTable) sweepLoop() {
	ticker := time.NewTicker(t.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.sweepIdle()
		case <-t.done:
			return
		}
	}
}

// sweepIdle releases every binding whose last request is older than idleWindow, decrementing the
// bound backends' active counts.
func (t *sessionTable) sweepIdle() {
	now := t.timeProvider.Now()
	t.mu.Lock()
	var expired []string
	for key, b := range t.bindings {
		if now.Sub(b.LastSeen) >= t.idleWindow {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		t.releaseLocked(key)
	}
	t.mu.Unlock()
	if len(expired) > 0 {
		level.Info(t.logger).Log("msg", "swept idle sessions", "count", len(expired))
	}
}
