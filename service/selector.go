package service

import (
	"examgateway/domain"
	"examgateway/helpers"
	"examgateway/interfaces"
)

// selector implements interfaces.Selector with the least-connections strategy. Eligibility and
// ranking combine the two load sources deliberately: health comes from the monitor's cached
// snapshots, the active count comes from the registry's live gateway-tracked counters so that a
// session started a millisecond ago already weighs on the next choice instead of waiting for the
// next poll. Declared capacity comes from the registry. Stateless; safe for concurrent use.
type selector struct {
	registry interfaces.Registry
	health   interfaces.HealthSource
}

// NewSelector creates the selector. Panics on nil registry or health (fail-fast at startup).
//
// Parameters: registry — live active counts, declared capacities and the registration order used
// as the final tie-break; health — the monitor's healthy-set reader.
//
// Returns: *selector implementing interfaces.Selector.
//
// Called from cmd/main when building the gateway.
func NewSelector(registry interfaces.Registry, health interfaces.HealthSource) *selector {
	return &selector{
		registry: helpers.NilPanic(registry, "service.selector.go: registry is required"),
		health:   helpers.NilPanic(health, "service.selector.go: health is required"),
	}
}

// Choose picks the eligible backend with the lowest load ratio (active/capacity). Eligible means
// currently healthy, not excluded, and active < capacity — a backend at full capacity is skipped
// even when healthy. Ties break by lowest absolute active count, then by registry order, so
// identical state always yields the same choice.
//
// Parameter exclude — backend ids to skip regardless of eligibility; nil means none.
//
// Returns: (id, nil) on success; ("", no_healthy_backend GatewayError) when no backend is eligible.
//
// Called from service.gateway (inside the session table's bind linearization) for new sessions.
func (s *selector) Choose(exclude map[domain.BackendID]struct{}) (domain.BackendID, error) {
	healthy := s.health.HealthySnapshot()

	var (
		bestID     domain.BackendID
		bestRatio  float64
		bestActive int
		found      bool
	)
	for _, snap := range healthy {
		if _, skip := exclude[snap.BackendID]; skip {
			continue
		}
		b, ok := s.registry.Get(snap.BackendID)
		if !ok {
			// Snapshot outlived the registry entry; skip.
			continue
		}
		active := s.registry.ActiveCount(b.ID)
		if active >= b.Capacity {
			continue
		}
		// Rank on the live count, not the polled one: the snapshot may lag a bind by up to one
		// poll interval.
		snap.Active = active
		snap.Capacity = b.Capacity
		ratio := snap.LoadRatio()
		if !found || ratio < bestRatio || (ratio == bestRatio && active < bestActive) {
			bestID = b.ID
			bestRatio = ratio
			bestActive = active
			found = true
		}
	}
	if !found {
		return "", NewNoHealthyBackendError("no healthy backend with free capacity", nil)
	}
	return bestID, nil
}
