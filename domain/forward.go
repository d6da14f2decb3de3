package domain

import "net/http"

// BackendMetrics is the payload a backend's metrics endpoint reports:
// {"status":"ok","active":N,"capacity":M}. Status other than "ok" counts as
// a poll failure even when the request itself succeeded.
type BackendMetrics struct {
	Status   string
	Active   int
	Capacity int
}

// ForwardRequest is a payload-agnostic request to pass through to a backend.
// The gateway copies method, path, query, headers and body verbatim; the
// only field it ever inspects is the session key.
type ForwardRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// ForwardResponse is the backend's response relayed back to the caller.
type ForwardResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
