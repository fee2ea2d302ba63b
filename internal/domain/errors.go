package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// The remote reference server uses this to translate domain errors
// without a type switch per handler.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, rejected before any I/O
	ValidationError struct {
		Message string
	}

	// InvariantViolation indicates an operation that would break a
	// structural invariant (e.g. deleting the last project). The
	// operation is refused with no state change.
	InvariantViolation struct {
		Message string
	}
)

func (e *NotFoundError) Error() string      { return e.Message }
func (e *ValidationError) Error() string    { return e.Message }
func (e *InvariantViolation) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *InvariantViolation) StatusCode() int { return http.StatusConflict }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvariant         = errors.New("invariant violation")
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrLocalCorrupt      = errors.New("local store corrupt")
)

func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariant }

// RemoteUnavailableError wraps any failure talking to the remote store:
// network errors, timeouts, non-2xx responses, malformed bodies. The
// sync layer swallows it after logging and serves local data; it never
// reaches the user.
type RemoteUnavailableError struct {
	Op  string // operation that failed, e.g. "list projects"
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error { return e.Err }

func (e *RemoteUnavailableError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

// LocalCorruptError indicates a local store value that failed to
// deserialize. The local store resets the key to an empty valid value
// instead of propagating, so the app self-heals rather than wedging.
type LocalCorruptError struct {
	Key string
	Err error
}

func (e *LocalCorruptError) Error() string {
	return fmt.Sprintf("local key %q corrupt: %v", e.Key, e.Err)
}

func (e *LocalCorruptError) Unwrap() error { return e.Err }

func (e *LocalCorruptError) Is(target error) bool {
	return target == ErrLocalCorrupt
}
