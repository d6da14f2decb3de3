package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrDuplicateBackend means an id was registered twice with a conflicting address or capacity.
	ErrDuplicateBackend = "duplicate_backend"
	// ErrNoHealthyBackend means no eligible backend exists at selection time; recoverable by retrying later.
	ErrNoHealthyBackend = "no_healthy_backend"
	// ErrBackendUnavailable means the backend a session is bound to is unreachable; not auto-recovered.
	ErrBackendUnavailable = "backend_unavailable"
	// ErrSessionNotFound means the request carried a session key with no live binding.
	ErrSessionNotFound = "session_not_found"
)

// GatewayError represents an error within the context of examgateway services.
type GatewayError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewGatewayError creates a new GatewayError.
func NewGatewayError(code string, message string, inner error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *GatewayError {
	if gwInner := ToGatewayError(inner); gwInner != nil {
		return gwInner
	}
	return NewGatewayError(ErrInternalServerError, message, inner)
}

func NewBadParameterError(message string, inner error) *GatewayError {
	if gwInner := ToGatewayError(inner); gwInner != nil {
		return gwInner
	}
	return NewGatewayError(ErrBadParameter, message, inner)
}

func NewDuplicateBackendError(message string, inner error) *GatewayError {
	return NewGatewayError(ErrDuplicateBackend, message, inner)
}

func NewNoHealthyBackendError(message string, inner error) *GatewayError {
	return NewGatewayError(ErrNoHealthyBackend, message, inner)
}

func NewBackendUnavailableError(message string, inner error) *GatewayError {
	return NewGatewayError(ErrBackendUnavailable, message, inner)
}

func NewSessionNotFoundError(message string, inner error) *GatewayError {
	return NewGatewayError(ErrSessionNotFound, message, inner)
}

func (e GatewayError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e GatewayError) Unwrap() error {
	return e.Inner
}

// ToGatewayError returns a pointer to an examgateway error, or nil if it is not an examgateway error.
func ToGatewayError(err error) *GatewayError {
	var e *GatewayError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ToGatewayErrorCode returns the code of the error, if available.
func ToGatewayErrorCode(err error) string {
	gwerror := ToGatewayError(err)
	if gwerror != nil {
		return gwerror.Code
	}
	return ""
}

func IsGatewayError(err error, code string) bool {
	gwerror := ToGatewayError(err)
	if gwerror != nil {
		return gwerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsGatewayError(err, ErrInternalServerError)
}

func IsBadParameterError(err error) bool {
	return IsGatewayError(err, ErrBadParameter)
}

func IsDuplicateBackendError(err error) bool {
	return IsGatewayError(err, ErrDuplicateBackend)
}

func IsNoHealthyBackendError(err error) bool {
	return IsGatewayError(err, ErrNoHealthyBackend)
}

func IsBackendUnavailableError(err error) bool {
	return IsGatewayError(err, ErrBackendUnavailable)
}

func IsSessionNotFoundError(err error) bool {
	return IsGatewayError(err, ErrSessionNotFound)
}
