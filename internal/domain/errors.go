package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repositories when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input. Fields, when set,
// lists every offending field so callers can report them all at once.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

// NewValidationError returns a ValidationError with the given message and
// optional field names.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate slug.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ConfigurationError reports required environment configuration that is
// missing. It fails the operation that needed it, not the process.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Missing)
}

// ConnectivityError reports that the underlying store is unreachable, so
// callers can distinguish retryable infrastructure failure from a permanent
// validation failure.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("database connection error: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a failure in an external service such as the asset
// host or the mail provider.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
