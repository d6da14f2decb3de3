package handlers

import (
	"encoding/json"
	"sort"
	"time"

	"examgateway/domain"
	"examgateway/interfaces"
	"examgateway/service"
)

// BackendRequest is the body of POST /admin/backends.
type BackendRequest struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// BackendResponse is one entry of GET /admin/backends.
type BackendResponse struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
	Active   int    `json:"active"`
}

// SessionResponse is one entry of GET /admin/sessions.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	BackendID string    `json:"backend_id"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// DecisionResponse is one entry of GET /admin/decisions.
type DecisionResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	BackendID string    `json:"backend_id,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// AggregateResponse is the merged answer of the fan-out read endpoints (/exams, /results).
type AggregateResponse struct {
	Items  []any    `json:"items"`
	Failed []string `json:"failed_backends,omitempty"`
}

// ConfigureResult is one backend's outcome in the answer of POST /configure_exam_all.
type ConfigureResult struct {
	BackendID string `json:"backend_id"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

func fromBackendRequest(req BackendRequest) domain.Backend {
	return domain.Backend{
		ID:       domain.BackendID(req.ID),
		Address:  req.Address,
		Capacity: req.Capacity,
	}
}

// toBackendsResponse joins the catalog with the monitor's snapshots; snapshots come back in
// registry order, so a single index walk pairs them up.
func toBackendsResponse(backends []domain.Backend, snaps []domain.HealthSnapshot, registry interfaces.Registry) []BackendResponse {
	byID := make(map[domain.BackendID]domain.HealthSnapshot, len(snaps))
	for _, s := range snaps {
		byID[s.BackendID] = s
	}
	out := make([]BackendResponse, 0, len(backends))
	for _, b := range backends {
		status := domain.HealthUnknown
		if s, ok := byID[b.ID]; ok {
			status = s.Status
		}
		out = append(out, BackendResponse{
			ID:       string(b.ID),
			Address:  b.Address,
			Capacity: b.Capacity,
			Status:   string(status),
			Active:   registry.ActiveCount(b.ID),
		})
	}
	return out
}

func toSessionsResponse(bindings []domain.SessionBinding) []SessionResponse {
	out := make([]SessionResponse, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, SessionResponse{
			SessionID: b.Key,
			BackendID: string(b.BackendID),
			CreatedAt: b.CreatedAt,
			LastSeen:  b.LastSeen,
		})
	}
	return out
}

func toDecisionsResponse(decisions []domain.RoutingDecision) []DecisionResponse {
	out := make([]DecisionResponse, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, DecisionResponse{
			ID:        d.ID,
			SessionID: d.SessionKey,
			BackendID: string(d.BackendID),
			Reason:    string(d.Reason),
			Timestamp: d.Timestamp,
		})
	}
	return out
}

// backendIDField is the per-item annotation the fan-out read endpoints add so a caller can tell
// which backend each merged entry came from.
const backendIDField = "backend_id"

// toExamsResponse collects every backend's exam-info answer into one list. Each backend answers
// GET /exam_info with a single JSON object describing its current exam; the object is annotated
// with the backend id and appended as one item. Unreachable backends, non-200 answers and
// unparseable bodies count as failed backends.
func toExamsResponse(results []service.FanOutResult) AggregateResponse {
	resp := AggregateResponse{Items: []any{}}
	for _, r := range results {
		if r.Err != nil || r.Response == nil || r.Response.StatusCode != 200 {
			resp.Failed = append(resp.Failed, string(r.BackendID))
			continue
		}
		var info map[string]any
		if err := json.Unmarshal(r.Response.Body, &info); err != nil {
			resp.Failed = append(resp.Failed, string(r.BackendID))
			continue
		}
		info[backendIDField] = string(r.BackendID)
		resp.Items = append(resp.Items, info)
	}
	return resp
}

// toResultsResponse merges the "results" list of every successful backend answer, annotates each
// entry with its backend id, and orders the merged list newest first by ended_at. Entries without
// an ended_at sort last; the sort is stable so ties keep registry order.
func toResultsResponse(results []service.FanOutResult) AggregateResponse {
	resp := AggregateResponse{Items: []any{}}
	for _, r := range results {
		if r.Err != nil || r.Response == nil || r.Response.StatusCode != 200 {
			resp.Failed = append(resp.Failed, string(r.BackendID))
			continue
		}
		items, ok := extractList(r.Response.Body, "results")
		if !ok {
			resp.Failed = append(resp.Failed, string(r.BackendID))
			continue
		}
		for _, item := range items {
			if entry, isObject := item.(map[string]any); isObject {
				entry[backendIDField] = string(r.BackendID)
			}
			resp.Items = append(resp.Items, item)
		}
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		return endedAt(resp.Items[i]) > endedAt(resp.Items[j])
	})
	return resp
}

// endedAt reads the ended_at epoch timestamp of a merged result entry, 0 when absent.
func endedAt(item any) float64 {
	entry, ok := item.(map[string]any)
	if !ok {
		return 0
	}
	ts, ok := entry["ended_at"].(float64)
	if !ok {
		return 0
	}
	return ts
}

func toConfigureResponse(results []service.FanOutResult) []ConfigureResult {
	out := make([]ConfigureResult, 0, len(results))
	for _, r := range results {
		switch {
		case r.Err != nil:
			out = append(out, ConfigureResult{BackendID: string(r.BackendID), Status: "unreachable", Detail: r.Err.Error()})
		case r.Response.StatusCode != 200:
			out = append(out, ConfigureResult{BackendID: string(r.BackendID), Status: "rejected"})
		default:
			out = append(out, ConfigureResult{BackendID: string(r.BackendID), Status: "ok"})
		}
	}
	return out
}

func extractList(body []byte, field string) ([]any, bool) {
	var asObject map[string]any
	if err := json.Unmarshal(body, &asObject); err == nil {
		items, ok := asObject[field].([]any)
		return items, ok
	}
	var asList []any
	if err := json.Unmarshal(body, &asList); err == nil {
		return asList, true
	}
	return nil, false
}
