package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"examgateway/domain"
	"examgateway/helpers"
)

// metricsPayload is the wire shape of a backend's GET /metrics answer. Older exam servers report
// the active count as "active_sessions", newer ones as "active"; both are accepted. A missing
// status field is treated as "ok" — the poll reaching a parseable body is the health signal.
type metricsPayload struct {
	Status         *string `json:"status"`
	Active         *int    `json:"active"`
	ActiveSessions *int    `json:"active_sessions"`
	Capacity       int     `json:"capacity"`
}

// metricsHTTP implements interfaces.MetricsClient over plain HTTP: one GET {address}/metrics per
// poll. Any transport failure, non-2xx status or malformed body is an error — the health monitor
// counts it as a failed probe.
type metricsHTTP struct {
	client *http.Client
}

// NewMetricsHTTP creates the HTTP metrics client. Panics on nil client; the per-poll deadline is
// the caller's context, so the injected client normally carries no timeout of its own.
//
// Returns: interfaces.MetricsClient (*metricsHTTP).
//
// Called from cmd/main when building the health monitor.
func NewMetricsHTTP(client *http.Client) *metricsHTTP {
	return &metricsHTTP{client: helpers.NilPanic(client, "adapters.metrics_http.go: client is required")}
}

// Poll fetches backend's metrics endpoint and decodes the load report.
//
// Parameters: ctx — carries the poll deadline; backend — target, Address is the base URL.
//
// Returns: (domain.BackendMetrics, nil) on a parseable 2xx answer; (zero, error) otherwise.
//
// Called from the health monitor on every poll tick.
func (m *metricsHTTP) Poll(ctx context.Context, backend domain.Backend) (domain.BackendMetrics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, backend.Address+"/metrics", nil)
	if err != nil {
		return domain.BackendMetrics{}, fmt.Errorf("can't build metrics request for backend '%s': %w", backend.ID, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return domain.BackendMetrics{}, fmt.Errorf("metrics poll of backend '%s' failed: %w", backend.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.BackendMetrics{}, fmt.Errorf("metrics poll of backend '%s' returned status %d", backend.ID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.BackendMetrics{}, fmt.Errorf("can't read metrics body of backend '%s': %w", backend.ID, err)
	}

	var payload metricsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.BackendMetrics{}, fmt.Errorf("can't parse metrics body of backend '%s': %w", backend.ID, err)
	}

	out := domain.BackendMetrics{Status: "ok", Capacity: payload.Capacity}
	if payload.Status != nil {
		out.Status = *payload.Status
	}
	switch {
	case payload.Active != nil:
		out.Active = *payload.Active
	case payload.ActiveSessions != nil:
		out.Active = *payload.ActiveSessions
	}
	return out, nil
}

// DefaultPollClient returns the http.Client used for metrics polling in prod. No client-level
// timeout: the monitor bounds each poll with a context deadline.
func DefaultPollClient() *http.Client {
	return &http.Client{Transport: &http.Transport{
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}}
}
