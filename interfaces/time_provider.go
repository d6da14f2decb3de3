package interfaces

import "time"

// TimeProvider supplies the current time for binding timestamps and idle
// expiry. Injected so tests can use a fixed clock instead of time.Now().
//
// Used by service.sessionTable for CreatedAt/LastSeen and the sweeper's
// idle check, and by service.gateway for decision timestamps. Constructed in
// cmd/main as NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests — fixed time for deterministic expiry checks).
	Now() time.Time
}
