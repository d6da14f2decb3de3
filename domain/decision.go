package domain

import "time"

// RoutingReason explains how a routing decision picked (or failed to pick) a backend.
type RoutingReason string

const (
	ReasonStickyReuse      RoutingReason = "sticky-reuse"
	ReasonLeastConnections RoutingReason = "least-connections"
	ReasonNoHealthyBackend RoutingReason = "no-healthy-backend"
)

// RoutingDecision is the ephemeral result of one routing decision, kept only
// for observability (logs, counters, the admin recent-decisions feed).
// BackendID is empty when Reason is no-healthy-backend.
type RoutingDecision struct {
	ID         string // uuid, correlates log lines with the admin feed
	SessionKey string
	BackendID  BackendID
	Reason     RoutingReason
	Timestamp  time.Time
}
