package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity does not exist or is not visible
// to the current tenant. Cross-tenant reads surface as not-found so the
// response never leaks whether the entity exists.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed input at a boundary (bad id format,
// missing tenant id on insert). Maps to a 400 at the HTTP layer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError marks an in-flight cross-tenant mutation attempt.
// Unlike reads, these are hard errors, not a silent not-found.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

func NewAuthorizationError(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a failure of an external dependency (LLM service,
// queue backend). Components with a documented fallback recover from it
// locally; everywhere else it propagates so the job layer can retry.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}
