package interfaces

import "examgateway/domain"

// Registry is the in-memory catalog of backend exam servers and the single
// owner of their gateway-side active-session counters. List order is the
// registration order and is the final tie-break for the selector, so it must
// be stable. No network I/O happens here.
//
// Implemented by service.registry. Called from service.selector (List,
// ActiveCount), service.healthMonitor (List, SetObservedActive),
// service.gateway (IncActive, DecActive via the session table) and
// handlers.HTTPServer (Register, Remove, Snapshot).
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register adds a backend to the catalog. Idempotent by id: re-registering the same id with identical address and capacity is a no-op.
	// Parameter b — backend entry; validated via domain.ValidateBackend.
	// Returns: nil on success or idempotent repeat; bad_parameter on invalid entry; duplicate_backend when the id exists with a conflicting address or capacity.
	// Called from cmd/main for the configured backend list and from handlers.RegisterBackend.
	Register(b domain.Backend) error

	// Remove deletes the backend from the catalog; unknown id is a no-op.
	// Called from handlers.DeregisterBackend.
	Remove(id domain.BackendID)

	// List returns backends in registration order. The slice is a copy; callers may not mutate registry state through it.
	// Called from service.healthMonitor on every poll tick and from service.selector on every choice.
	List() []domain.Backend

	// Get returns the backend for id and whether it exists.
	// Called from service.gateway when forwarding to a bound backend.
	Get(id domain.BackendID) (domain.Backend, bool)

	// IncActive increments the gateway-tracked active-session count for id, clamped at the backend's capacity. Unknown id is a no-op.
	// Called from service.sessionTable when a new binding is created.
	IncActive(id domain.BackendID)

	// DecActive decrements the gateway-tracked active-session count for id, never below zero. Unknown id is a no-op.
	// Called from service.sessionTable when a binding is released.
	DecActive(id domain.BackendID)

	// ActiveCount returns the current gateway-tracked active-session count for id (0 for unknown id).
	// Called from service.selector when ranking eligible backends.
	ActiveCount(id domain.BackendID) int

	// SetObservedActive overwrites the active-session count for id with the value the backend itself reported. The health monitor is the source of truth for load on each successful poll; the gateway's increments and decrements adjust the estimate between polls.
	// Called from service.healthMonitor after every successful poll.
	SetObservedActive(id domain.BackendID, active int)
}
