package domain

import "time"

// HealthSnapshot is a per-backend record produced by the health monitor on
// each poll tick: status, the active-session count and capacity the backend
// reported, and the measurement timestamp. Immutable once created; a newer
// snapshot for the same backend supersedes it, it is never mutated in place.
type HealthSnapshot struct {
	BackendID BackendID
	Status    HealthStatus
	Active    int
	Capacity  int
	Timestamp time.Time
}

// LoadRatio returns Active/Capacity as a float64, or 1.0 when Capacity is
// not positive so a misreporting backend is treated as full rather than free.
func (s HealthSnapshot) LoadRatio() float64 {
	if s.Capacity <= 0 {
		return 1.0
	}
	return float64(s.Active) / float64(s.Capacity)
}
