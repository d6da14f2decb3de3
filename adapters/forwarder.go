package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"examgateway/domain"
	"examgateway/helpers"
)

// forwarderHTTP implements interfaces.Forwarder: a transparent HTTP pass-through to exam backends.
// Method, path, query, headers and body are relayed as received; the backend's status code and
// body come back verbatim, so a backend-side 4xx/5xx reaches the client unchanged. Only transport
// failures (refused connection, timeout) are errors.
type forwarderHTTP struct {
	client  *http.Client
	timeout time.Duration
}

// NewForwarderHTTP creates the HTTP forwarder. Panics on nil client or non-positive timeout.
//
// Parameters: client — shared http.Client (no client-level timeout, the forwarder sets a per-request
// deadline); timeout — per-forward deadline, applied when the caller's context has none shorter.
//
// Returns: interfaces.Forwarder (*forwarderHTTP).
//
// Called from cmd/main when building the gateway.
func NewForwarderHTTP(client *http.Client, timeout time.Duration) *forwarderHTTP {
	if timeout <= 0 {
		panic("adapters.forwarder.go: timeout must be positive")
	}
	return &forwarderHTTP{
		client:  helpers.NilPanic(client, "adapters.forwarder.go: client is required"),
		timeout: timeout,
	}
}

// Forward relays req to backend and returns its response.
//
// Parameters: ctx — request context; backend — target, Address is the base URL; req — method,
// path, query, headers and body to relay.
//
// Returns: (*domain.ForwardResponse, nil) for any HTTP answer the backend produced;
// (nil, error) when the backend could not be reached or did not answer within the deadline.
//
// Called from the gateway on every routed and fanned-out request.
func (f *forwarderHTTP) Forward(ctx context.Context, backend domain.Backend, req domain.ForwardRequest) (*domain.ForwardResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	url := backend.Address + req.Path
	if req.RawQuery != "" {
		url += "?" + req.RawQuery
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("can't build forward request to backend '%s': %w", backend.ID, err)
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	httpResp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("forward to backend '%s' failed: %w", backend.ID, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read response body of backend '%s': %w", backend.ID, err)
	}

	return &domain.ForwardResponse{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       body,
	}, nil
}
