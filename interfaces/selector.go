package interfaces

import "examgateway/domain"

// Selector picks the backend for a new session among the currently healthy
// ones. Deterministic: identical snapshots and counts always produce the
// same choice.
//
// Implemented by service.selector. Called from service.gateway when a
// request carries no bound session key.
//
//go:generate moq -stub -out mock/selector.go -pkg mock . Selector
type Selector interface {
	// Choose returns the eligible backend with the lowest load ratio; ties broken by lowest absolute active count, then registry order. A backend at full capacity is skipped even when healthy.
	// Parameter exclude — backend ids to skip regardless of eligibility; nil means none.
	// Returns: (id, nil) on success; ("", no_healthy_backend) when no eligible backend exists.
	Choose(exclude map[domain.BackendID]struct{}) (domain.BackendID, error)
}
