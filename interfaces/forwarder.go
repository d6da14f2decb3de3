package interfaces

import (
	"context"

	"examgateway/domain"
)

// Forwarder passes one request through to a backend and relays the response.
// The forwarder is payload-agnostic; it copies method, path, headers and
// body verbatim. A timeout or connection error is returned as a plain error
// and the gateway decides how to surface it (never retried transparently).
//
// Implemented by adapters.ForwarderHTTP. Called from service.gateway for
// every routed request and for admin fan-out calls.
//
//go:generate moq -stub -out mock/forwarder.go -pkg mock . Forwarder
type Forwarder interface {
	// Forward sends req to the backend and returns its response.
	// Parameters: ctx — request context (the adapter adds its own overall timeout); backend — target entry; req — request to pass through.
	// Returns: (resp, nil) for any HTTP response including non-2xx (the backend's status is relayed, not interpreted); (nil, error) on transport failure or timeout.
	Forward(ctx context.Context, backend domain.Backend, req domain.ForwardRequest) (*domain.ForwardResponse, error)
}
