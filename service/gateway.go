package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"examgateway/domain"
	"examgateway/helpers"
	"examgateway/interfaces"
	"examgateway/metrics"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// recentDecisionLimit bounds the in-memory routing-decision feed served by the admin API.
const recentDecisionLimit = 100

// Gateway is the forwarding core: it owns the session lifecycle and turns inbound requests into
// forwarded backend requests. New sessions go through the selector; requests carrying a bound
// session key go to their pinned backend with no failover — a mid-exam backend failure surfaces as
// backend_unavailable rather than a silent re-route, because the exam state lives only on the
// original backend. Every decision is logged, counted in prometheus and kept in a bounded
// recent-decisions ring for the admin API. Fields under mu: recent.
type Gateway struct {
	registry     interfaces.Registry
	selector     interfaces.Selector
	table        interfaces.SessionTable
	health       interfaces.HealthSource
	forwarder    interfaces.Forwarder
	timeProvider interfaces.TimeProvider
	logger       log.Logger

	mu     sync.Mutex
	recent []domain.RoutingDecision
}

// FanOutResult is one backend's outcome of a broadcast call (aggregation and config propagation).
type FanOutResult struct {
	BackendID domain.BackendID
	Response  *domain.ForwardResponse
	Err       error
}

// NewGateway creates the gateway. Panics on any nil dependency (fail-fast at startup).
//
// Parameters: registry — backend catalog; selector — least-connections choice for new sessions;
// table — session affinity with atomic check-then-bind; health — healthy set for fan-out calls;
// forwarder — HTTP pass-through; timeProvider — decision timestamps; logger.
//
// Returns: *Gateway.
//
// Called from cmd/main when building the gateway.
func NewGateway(
	registry interfaces.Registry,
	selector interfaces.Selector,
	table interfaces.SessionTable,
	health interfaces.HealthSource,
	forwarder interfaces.Forwarder,
	timeProvider interfaces.TimeProvider,
	logger log.Logger,
) *Gateway {
	return &Gateway{
		registry:     helpers.NilPanic(registry, "service.gateway.go: registry is required"),
		selector:     helpers.NilPanic(selector, "service.gateway.go: selector is required"),
		table:        helpers.NilPanic(table, "service.gateway.go: table is required"),
		health:       helpers.NilPanic(health, "service.gateway.go: health is required"),
		forwarder:    helpers.NilPanic(forwarder, "service.gateway.go: forwarder is required"),
		timeProvider: helpers.NilPanic(timeProvider, "service.gateway.go: timeProvider is required"),
		logger:       log.With(helpers.NilPanic(logger, "service.gateway.go: logger is required"), "component", "gateway"),
	}
}

// StartSession routes an exam-start request, where the session key does not exist yet — the chosen
// backend mints it in the response. The selector picks the least-loaded healthy backend; when the
// backend answers 200 the session_id from its response body is bound to it (incrementing its
// active count). A non-200 backend answer (e.g. the backend itself refusing at capacity) is
// relayed without binding.
//
// Parameters: ctx — request context; req — pass-through request (typically POST /start_exam).
//
// Returns: (resp, nil) with the backend's response; (nil, no_healthy_backend) with no side effects
// when nothing is eligible; (nil, backend_unavailable) when the chosen backend did not answer.
//
// Called from handlers.StartExam.
func (g *Gateway) StartSession(ctx context.Context, req domain.ForwardRequest) (*domain.ForwardResponse, error) {
	id, err := g.selector.Choose(nil)
	if err != nil {
		g.recordDecision("", "", domain.ReasonNoHealthyBackend)
		return nil, err
	}
	backend, ok := g.registry.Get(id)
	if !ok {
		return nil, NewBackendUnavailableError("chosen backend left the registry", nil)
	}
	resp, err := g.forward(ctx, backend, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == 200 {
		if key := extractSessionKey(resp.Body); key != "" {
			g.table.Bind(key, id)
			g.recordDecision(key, id, domain.ReasonLeastConnections)
		}
	}
	return resp, nil
}

// RouteSession routes a request that carries a session key. A bound key is forwarded to its pinned
// backend regardless of that backend's current health or load; an unbound key is treated as a new
// session — the selector runs under the table's linearization point, so concurrent first requests
// for one key all observe a single binding. When the backend's response marks the exam finished
// the binding is released.
//
// Parameters: ctx — request context; sessionKey — non-empty opaque key; req — pass-through request.
//
// Returns: (resp, nil) with the backend's response; (nil, bad_parameter) on empty key;
// (nil, no_healthy_backend) when the key is unbound and nothing is eligible, with no side effects;
// (nil, backend_unavailable) when the target backend did not answer — a fresh binding is rolled
// back, an established one is kept (no failover).
//
// Called from handlers.SubmitAnswer and any sticky pass-through route.
func (g *Gateway) RouteSession(ctx context.Context, sessionKey string, req domain.ForwardRequest) (*domain.ForwardResponse, error) {
	if sessionKey == "" {
		return nil, NewBadParameterError("session key is required", nil)
	}
	id, existed, err := g.table.BindOrLookup(sessionKey, func() (domain.BackendID, error) {
		return g.selector.Choose(nil)
	})
	if err != nil {
		g.recordDecision(sessionKey, "", domain.ReasonNoHealthyBackend)
		return nil, err
	}
	if existed {
		g.recordDecision(sessionKey, id, domain.ReasonStickyReuse)
	} else {
		g.recordDecision(sessionKey, id, domain.ReasonLeastConnections)
	}
	backend, ok := g.registry.Get(id)
	if !ok {
		if !existed {
			g.table.Release(sessionKey)
		}
		return nil, NewBackendUnavailableError("bound backend left the registry", nil)
	}
	resp, err := g.forward(ctx, backend, req)
	if err != nil {
		if !existed {
			// The backend never saw this session; rolling the binding back frees the slot.
			g.table.Release(sessionKey)
		}
		return nil, err
	}
	if sessionFinished(resp.Body) {
		g.table.Release(sessionKey)
	}
	return resp, nil
}

// EndSession handles the explicit termination signal: forwards the request to the bound backend
// and releases the binding whether or not the forward succeeded — the caller has declared the
// session over, so the slot must not stay occupied.
//
// Parameters: ctx — request context; sessionKey — key to terminate; req — pass-through request.
//
// Returns: (resp, nil) on forwarded response; (nil, session_not_found) when the key has no live
// binding; (nil, backend_unavailable) when the bound backend did not answer (binding released anyway).
//
// Called from handlers.EndExam.
func (g *Gateway) EndSession(ctx context.Context, sessionKey string, req domain.ForwardRequest) (*domain.ForwardResponse, error) {
	id, ok := g.table.Lookup(sessionKey)
	if !ok {
		return nil, NewSessionNotFoundError("no binding for session key", nil)
	}
	backend, hasBackend := g.registry.Get(id)
	g.table.Release(sessionKey)
	if !hasBackend {
		return nil, NewBackendUnavailableError("bound backend left the registry", nil)
	}
	resp, err := g.forward(ctx, backend, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// FanOut forwards req to every registered backend (or only the currently healthy ones) and
// collects the per-backend outcomes. Used by the aggregation endpoints (/exams, /results) and by
// exam-config propagation; individual failures land in the result, never abort the rest.
//
// Parameters: ctx — request context; req — request to broadcast; onlyHealthy — restrict to the
// monitor's healthy set.
//
// Returns: one FanOutResult per targeted backend, in registry order.
//
// Called from handlers.ListExams, handlers.ListResults and handlers.ConfigureExamAll.
func (g *Gateway) FanOut(ctx context.Context, req domain.ForwardRequest, onlyHealthy bool) []FanOutResult {
	var targets []domain.Backend
	if onlyHealthy {
		for _, snap := range g.health.HealthySnapshot() {
			if b, ok := g.registry.Get(snap.BackendID); ok {
				targets = append(targets, b)
			}
		}
	} else {
		targets = g.registry.List()
	}
	out := make([]FanOutResult, 0, len(targets))
	for _, b := range targets {
		resp, err := g.forward(ctx, b, req)
		out = append(out, FanOutResult{BackendID: b.ID, Response: resp, Err: err})
	}
	return out
}

// RecentDecisions returns the latest routing decisions, newest first, for the admin API.
func (g *Gateway) RecentDecisions() []domain.RoutingDecision {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.RoutingDecision, len(g.recent))
	for i, d := range g.recent {
		out[len(g.recent)-1-i] = d
	}
	return out
}

// forward passes req to the backend through the forwarder, observing latency and mapping
// transport failures to backend_unavailable. Forwards are never retried here; retry policy,
// if any, belongs to the caller.
func (g *Gateway) forward(ctx context.Context, backend domain.Backend, req domain.ForwardRequest) (*domain.ForwardResponse, error) {
	start := time.Now()
	resp, err := g.forwarder.Forward(ctx, backend, req)
	metrics.ForwardDuration.WithLabelValues(string(backend.ID)).Observe(time.Since(start).Seconds())
	if err != nil {
		level.Info(g.logger).Log("msg", "forward failed", "backend", backend.ID, "path", req.Path, "err", err)
		return nil, NewBackendUnavailableError("backend did not answer", err)
	}
	return resp, nil
}

// recordDecision logs the decision, bumps the prometheus counter and appends to the bounded
// recent-decisions ring.
func (g *Gateway) recordDecision(sessionKey string, id domain.BackendID, reason domain.RoutingReason) {
	d := domain.RoutingDecision{
		ID:         uuid.NewString(),
		SessionKey: sessionKey,
		BackendID:  id,
		Reason:     reason,
		Timestamp:  g.timeProvider.Now(),
	}
	metrics.RoutingDecisionsTotal.WithLabelValues(string(reason)).Inc()
	level.Info(g.logger).Log("msg", "routing decision", "decision", d.ID, "session", sessionKey, "backend", id, "reason", reason)
	g.mu.Lock()
	g.recent = append(g.recent, d)
	if len(g.recent) > recentDecisionLimit {
		g.recent = g.recent[len(g.recent)-recentDecisionLimit:]
	}
	g.mu.Unlock()
}

// extractSessionKey pulls the session key out of a backend JSON response body ("" when absent).
func extractSessionKey(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	key, _ := payload[domain.SessionKeyField].(string)
	return key
}

// sessionFinished reports whether a backend response marks the exam as over (the original exam
// servers include final_score in the last answer's response).
func sessionFinished(body []byte) bool {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	_, ok := payload["final_score"]
	return ok
}
