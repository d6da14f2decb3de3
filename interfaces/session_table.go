package interfaces

import (
	"examgateway/domain"
)

// SessionTable maps opaque session keys to the backend that serves them.
// Binding is atomic check-then-bind: concurrent first requests for one new
// key linearize so exactly one binding is created and every racer observes
// it. Once bound, a key stays bound to the same backend for its lifetime
// even if that backend later becomes unhealthy; only explicit release or
// idle expiry removes the binding.
//
// Implemented by service.sessionTable. Called from service.gateway on every
// routed request and from handlers on session termination.
//
//go:generate moq -stub -out mock/session_table.go -pkg mock . SessionTable
type SessionTable interface {
	// BindOrLookup returns the backend bound to key, running choose under the table's linearization point when the key is unbound. On a successful fresh bind the chosen backend's active count is incremented; when choose errors nothing is bound and no count changes.
	// Parameters: key — non-empty session key; choose — picks a backend for a fresh binding (typically Selector.Choose).
	// Returns: (id, true, nil) when the key was already bound (sticky reuse); (id, false, nil) after a fresh bind; ("", false, err) when the key was unbound and choose failed.
	BindOrLookup(key string, choose func() (domain.BackendID, error)) (domain.BackendID, bool, error)

	// Bind creates or refreshes the binding key → id without consulting a chooser, incrementing the backend's active count when the binding is new. Used when the backend itself mints the session key on exam start.
	Bind(key string, id domain.BackendID)

	// Lookup returns the bound backend for key and refreshes the binding's last-seen time.
	// Returns: (id, true) when bound; ("", false) otherwise.
	Lookup(key string) (domain.BackendID, bool)

	// Release removes the binding and decrements the bound backend's active count by exactly one. Idempotent: releasing an unknown or already-released key is a no-op.
	// Returns: true when a binding was actually removed.
	Release(key string) bool

	// Bindings returns a copy of all live bindings, for the admin display and tests.
	Bindings() []domain.SessionBinding

	// Close stops the idle sweeper goroutine. Idempotent.
	Close() error
}
