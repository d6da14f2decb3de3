package interfaces

import (
	"context"

	"examgateway/domain"
)

// MetricsClient polls one backend's health/metrics endpoint. Any transport
// error, non-2xx status, malformed payload or timeout is returned as an
// error and counts as a poll failure; the monitor, not the client, decides
// when failures flip the backend to unhealthy.
//
// Implemented by adapters.MetricsHTTP. Called from service.healthMonitor on
// every poll tick with the per-poll timeout already applied to ctx.
//
//go:generate moq -stub -out mock/metrics_client.go -pkg mock . MetricsClient
type MetricsClient interface {
	// Poll performs one metrics request against the backend.
	// Parameters: ctx — carries the per-poll timeout; backend — target entry (Address is the base URL).
	// Returns: (metrics, nil) on a well-formed 2xx response; (zero, error) otherwise.
	Poll(ctx context.Context, backend domain.Backend) (domain.BackendMetrics, error)
}
