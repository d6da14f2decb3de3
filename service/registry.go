package service

import (
	"fmt"
	"sync"

	"examgateway/domain"
	"examgateway/interfaces"
)

// registry implements interfaces.Registry. It is the in-memory catalog of backend exam servers and the
// single synchronization point for their gateway-tracked active-session counters: the session table
// increments on bind and decrements on release, the health monitor overwrites the count with the
// backend's self-reported value on every successful poll, the selector only reads. List preserves
// registration order so selector tie-breaks stay deterministic. Fields under mu: order, entries
// (id → *entry with backend + active count).
type registry struct {
	mu      sync.RWMutex
	order   []domain.BackendID
	entries map[domain.BackendID]*registryEntry
}

// registryEntry holds one backend and its gateway-tracked active-session count.
type registryEntry struct {
	backend domain.Backend
	active  int
}

// NewRegistry creates an empty backend registry.
//
// Returns: interfaces.Registry (*registry).
//
// Called from cmd/main at startup; the configured backend list is then added via Register.
func NewRegistry() interfaces.Registry {
	return &registry{
		entries: make(map[domain.BackendID]*registryEntry),
	}
}

// Register adds the backend to the catalog after domain.ValidateBackend. Idempotent by id: the exact
// same entry again is a no-op; the same id with a different address or capacity is duplicate_backend.
//
// Parameter b — backend entry (from YAML config or the admin register endpoint).
//
// Returns: nil on success or idempotent repeat; bad_parameter on invalid entry; duplicate_backend on conflict.
//
// Called from cmd/main for configured backends and from handlers.RegisterBackend.
func (r *registry) Register(b domain.Backend) error {
	if err := domain.ValidateBackend(b); err != nil {
		return NewBadParameterError("invalid backend", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[b.ID]; ok {
		if existing.backend == b {
			return nil
		}
		return NewDuplicateBackendError(
			fmt.Sprintf("backend %s already registered with address %s capacity %d",
				b.ID, existing.backend.Address, existing.backend.Capacity), nil)
	}
	r.entries[b.ID] = &registryEntry{backend: b}
	r.order = append(r.order, b.ID)
	return nil
}

// Remove deletes the backend and its counter; unknown id is a no-op.
//
// Called from handlers.DeregisterBackend.
func (r *registry) Remove(id domain.BackendID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// List returns a copy of the backends in registration order.
//
// Called from service.healthMonitor on every tick and service.selector on every choice.
func (r *registry) List() []domain.Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Backend, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].backend)
	}
	return out
}

// Get returns the backend for id and whether it exists.
func (r *registry) Get(id domain.BackendID) (domain.Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return domain.Backend{}, false
	}
	return e.backend, true
}

// IncActive increments the active-session count for id, clamped at capacity so the
// [0, capacity] invariant holds even if a poll overwrite and a bind race. Unknown id is a no-op.
//
// Called from service.sessionTable when a binding is created.
func (r *registry) IncActive(id domain.BackendID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return
	}
	if e.active < e.backend.Capacity {
		e.active++
	}
}

// DecActive decrements the active-session count for id, never below zero. Unknown id is a no-op.
//
// Called from service.sessionTable when a binding is released.
func (r *registry) DecActive(id domain.BackendID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return
	}
	if e.active > 0 {
		e.active--
	}
}

// ActiveCount returns the current active-session count for id (0 for unknown id).
//
// Called from service.selector when ranking eligible backends.
func (r *registry) ActiveCount(id domain.BackendID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return 0
	}
	return e.active
}

// SetObservedActive overwrites the active-session count with the value the backend reported,
// clamped to [0, capacity]. The health monitor is the source of truth for load on each successful
// poll; gateway increments and decrements adjust the estimate between polls. Unknown id is a no-op.
//
// Called from service.healthMonitor after every successful poll.
func (r *registry) SetObservedActive(id domain.BackendID, active int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return
	}
	if active < 0 {
		active = 0
	}
	if active > e.backend.Capacity {
		active = e.backend.Capacity
	}
	e.active = active
}
