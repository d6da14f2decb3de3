package interfaces

import "examgateway/domain"

// HealthSource exposes the health monitor's last-cached snapshots. Both
// methods read in-memory state only and never block on network I/O; the
// polling that refreshes the snapshots runs in the monitor's own background
// loop.
//
// Implemented by service.healthMonitor. Called from service.selector
// (HealthySnapshot) and handlers.ListBackends (Snapshot).
//
//go:generate moq -stub -out mock/health_source.go -pkg mock . HealthSource
type HealthSource interface {
	// HealthySnapshot returns the latest snapshot for every backend currently classified healthy, in registry order.
	// Returns: possibly empty slice; never an error — a backend with no successful poll yet is simply absent.
	// Called from service.selector.Choose on every selection.
	HealthySnapshot() []domain.HealthSnapshot

	// Snapshot returns the latest snapshot for every registered backend in registry order, including unknown and unhealthy ones (status unknown with zero counts when no poll has completed yet).
	// Called from handlers.ListBackends for the admin display.
	Snapshot() []domain.HealthSnapshot
}
