package domain

import (
	"strconv"
	"strings"
)

// BackendID identifies a backend exam server (e.g. "S1").
type BackendID string

// HealthStatus is the last-known health classification of a backend.
// A backend starts as unknown until the first poll completes.
type HealthStatus string

const (
	HealthUnknown   HealthStatus = "unknown"
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// Backend is one backend exam server: stable identity, base URL and declared
// capacity (max concurrent exam sessions). Capacity must be positive; a
// backend whose active-session count reaches Capacity is ineligible for new
// sessions regardless of health.
type Backend struct {
	ID       BackendID
	Address  string // base URL, e.g. http://localhost:6001, no trailing slash
	Capacity int
}

// ValidateBackend validates one backend entry: non-empty id, address starting with http:// or https:// without trailing slash, positive capacity.
//
// Parameter b — backend (usually from YAML via cmd.LoadConfig or the admin register endpoint).
//
// Returns: nil when valid; *BackendConfigError with ID and Reason on the first error found.
//
// Called from service.registry.Register and cmd.LoadConfig before using the entry.
func ValidateBackend(b Backend) error {
	if strings.TrimSpace(string(b.ID)) == "" {
		return &BackendConfigError{ID: b.ID, Reason: "id must be non-empty"}
	}
	if !strings.HasPrefix(b.Address, "http://") && !strings.HasPrefix(b.Address, "https://") {
		return &BackendConfigError{ID: b.ID, Reason: "address must start with http:// or https://"}
	}
	if strings.HasSuffix(b.Address, "/") {
		return &BackendConfigError{ID: b.ID, Reason: "address must not end with /"}
	}
	if b.Capacity <= 0 {
		return &BackendConfigError{ID: b.ID, Reason: "capacity must be a positive integer, got " + strconv.Itoa(b.Capacity)}
	}
	return nil
}

// BackendConfigError is returned by ValidateBackend when a backend entry is invalid.
// ID is the backend id (may be empty); Reason is a human-readable message.
type BackendConfigError struct {
	ID     BackendID
	Reason string
}

// Error implements error; returns a string like `backend "S1": capacity must be a positive integer, got 0` for logging and user output.
func (e *BackendConfigError) Error() string {
	return "backend " + strconv.Quote(string(e.ID)) + ": " + e.Reason
}
