// Package handlers contains the http handlers of the exam gateway: the student-facing routed
// endpoints and the admin API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"examgateway/domain"
	"examgateway/interfaces"
	"examgateway/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServer holds the handler dependencies. Routed endpoints delegate to the gateway; admin
// endpoints read the registry, monitor and session table directly.
type HTTPServer struct {
	gateway  *service.Gateway
	registry interfaces.Registry
	health   interfaces.HealthSource
	table    interfaces.SessionTable
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(
	gateway *service.Gateway,
	registry interfaces.Registry,
	health interfaces.HealthSource,
	table interfaces.SessionTable,
	logger log.Logger,
) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		gateway:  gateway,
		registry: registry,
		health:   health,
		table:    table,
		logger:   logger,
	}
}

// RegisterRoutes wires every endpoint into e.
func (h *HTTPServer) RegisterRoutes(e *echo.Echo) {
	e.POST("/start_exam", h.StartExam)
	e.POST("/submit_answer", h.SubmitAnswer)
	e.POST("/end_exam", h.EndExam)
	e.GET("/exams", h.ListExams)
	e.GET("/results", h.ListResults)
	e.POST("/configure_exam_all", h.ConfigureExamAll)

	e.POST("/admin/backends", h.RegisterBackend)
	e.DELETE("/admin/backends/:id", h.DeregisterBackend)
	e.GET("/admin/backends", h.GetBackends)
	e.GET("/admin/sessions", h.GetSessions)
	e.GET("/admin/decisions", h.GetDecisions)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// StartExam (POST /start_exam) routes an exam-start to the least-loaded healthy backend. The
// backend mints the session_id; the gateway binds it on a 200 answer. Returns the backend's
// response verbatim, 503 when no backend is eligible, 504 when the chosen backend did not answer.
func (h *HTTPServer) StartExam(ectx echo.Context) error {
	req, err := fromEchoRequest(ectx)
	if err != nil {
		return err
	}
	resp, err := h.gateway.StartSession(ectx.Request().Context(), req)
	if err != nil {
		return err
	}
	return relay(ectx, resp)
}

// SubmitAnswer (POST /submit_answer) forwards an answer to the session's bound backend. The
// session_id comes from the JSON body or, failing that, the query string. An unknown key is
// treated as a new session. Returns 400 on a missing key, 503/504 per the gateway's routing
// outcome.
func (h *HTTPServer) SubmitAnswer(ectx echo.Context) error {
	req, err := fromEchoRequest(ectx)
	if err != nil {
		return err
	}
	key := sessionKeyOf(ectx, req.Body)
	resp, err := h.gateway.RouteSession(ectx.Request().Context(), key, req)
	if err != nil {
		return err
	}
	return relay(ectx, resp)
}

// EndExam (POST /end_exam) releases the session binding and forwards the termination to the bound
// backend. Returns 404 when the key has no binding.
func (h *HTTPServer) EndExam(ectx echo.Context) error {
	req, err := fromEchoRequest(ectx)
	if err != nil {
		return err
	}
	key := sessionKeyOf(ectx, req.Body)
	resp, err := h.gateway.EndSession(ectx.Request().Context(), key, req)
	if err != nil {
		return err
	}
	return relay(ectx, resp)
}

// ListExams (GET /exams) asks every registered backend for its exam metadata and collects the
// answers into one list. Backends speak GET /exam_info (one JSON object per backend), so the path
// is rewritten before the fan-out. Backends that fail to answer are skipped, not fatal.
func (h *HTTPServer) ListExams(ectx echo.Context) error {
	req, err := fromEchoRequest(ectx)
	if err != nil {
		return err
	}
	req.Path = "/exam_info"
	results := h.gateway.FanOut(ectx.Request().Context(), req, false)
	return ectx.JSON(http.StatusOK, toExamsResponse(results))
}

// ListResults (GET /results) merges finished-exam results from every registered backend, newest
// first.
func (h *HTTPServer) ListResults(ectx echo.Context) error {
	req, err := fromEchoRequest(ectx)
	if err != nil {
		return err
	}
	results := h.gateway.FanOut(ectx.Request().Context(), req, false)
	return ectx.JSON(http.StatusOK, toResultsResponse(results))
}

// ConfigureExamAll (POST /configure_exam_all) propagates an exam configuration to every healthy
// backend and reports the per-backend outcome.
func (h *HTTPServer) ConfigureExamAll(ectx echo.Context) error {
	req, err := fromEchoRequest(ectx)
	if err != nil {
		return err
	}
	req.Path = "/configure_exam"
	results := h.gateway.FanOut(ectx.Request().Context(), req, true)
	return ectx.JSON(http.StatusOK, toConfigureResponse(results))
}

// RegisterBackend (POST /admin/backends) adds a backend to the catalog. Returns 201 on success,
// 400 on an invalid entry, 409 when the id exists with a conflicting address or capacity.
func (h *HTTPServer) RegisterBackend(ectx echo.Context) error {
	var req BackendRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	if err := h.registry.Register(fromBackendRequest(req)); err != nil {
		return err
	}
	return ectx.NoContent(http.StatusCreated)
}

// DeregisterBackend (DELETE /admin/backends/:id) removes a backend; unknown id is a no-op.
// Existing bindings to the removed backend stay until released or swept.
func (h *HTTPServer) DeregisterBackend(ectx echo.Context) error {
	h.registry.Remove(domain.BackendID(ectx.Param("id")))
	return ectx.NoContent(http.StatusNoContent)
}

// GetBackends (GET /admin/backends) returns every registered backend with its health status and
// current load, in registration order.
func (h *HTTPServer) GetBackends(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toBackendsResponse(h.registry.List(), h.health.Snapshot(), h.registry))
}

// GetSessions (GET /admin/sessions) returns the live session bindings.
func (h *HTTPServer) GetSessions(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toSessionsResponse(h.table.Bindings()))
}

// GetDecisions (GET /admin/decisions) returns the recent routing decisions, newest first.
func (h *HTTPServer) GetDecisions(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toDecisionsResponse(h.gateway.RecentDecisions()))
}

// fromEchoRequest captures the inbound request as a pass-through ForwardRequest. The body is read
// fully here because it may be inspected (session key) and re-sent downstream.
func fromEchoRequest(ectx echo.Context) (domain.ForwardRequest, error) {
	r := ectx.Request()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return domain.ForwardRequest{}, service.NewBadParameterError("can't read request body", err)
	}
	return domain.ForwardRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	}, nil
}

// sessionKeyOf extracts the session key from the JSON body, falling back to the query string.
func sessionKeyOf(ectx echo.Context, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if key, ok := payload[domain.SessionKeyField].(string); ok && key != "" {
			return key
		}
	}
	return ectx.QueryParam(domain.SessionKeyField)
}

// relay writes a backend's response to the client verbatim.
func relay(ectx echo.Context, resp *domain.ForwardResponse) error {
	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return ectx.Blob(resp.StatusCode, contentType, resp.Body)
}
