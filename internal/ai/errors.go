package ai

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable matches every *BackendUnavailableError via errors.Is
var ErrBackendUnavailable = errors.New("generation backend unavailable")

// BackendUnavailableError reports a failure before any output was produced:
// connection refused, timeout, or a non-success status.
type BackendUnavailableError struct {
	Backend    string
	StatusCode int
	Message    string
	Err        error
}

// NewBackendUnavailableError creates a new backend error
func NewBackendUnavailableError(backend string, statusCode int, message string, err error) *BackendUnavailableError {
	return &BackendUnavailableError{
		Backend:    backend,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// Error implements the error interface
func (e *BackendUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s backend unavailable (status %d): %s: %v", e.Backend, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s backend unavailable (status %d): %s", e.Backend, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping
func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBackendUnavailable) true
func (e *BackendUnavailableError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

// StreamError reports a read failure after the stream was opened
type StreamError struct {
	Backend string
	Err     error
}

// Error implements the error interface
func (e *StreamError) Error() string {
	return fmt.Sprintf("%s stream interrupted: %v", e.Backend, e.Err)
}

// Unwrap implements error unwrapping
func (e *StreamError) Unwrap() error {
	return e.Err
}

// StreamDecodeError reports one malformed line; the stream skips it and continues
type StreamDecodeError struct {
	Line string
	Err  error
}

// Error implements the error interface
func (e *StreamDecodeError) Error() string {
	return fmt.Sprintf("malformed stream record %q: %v", e.Line, e.Err)
}

// Unwrap implements error unwrapping
func (e *StreamDecodeError) Unwrap() error {
	return e.Err
}

// StreamRecordError is an error object the backend sent in place of content
// after the stream was opened. The record is skipped like a malformed one.
type StreamRecordError struct {
	Backend string
	Code    string
	Message string
}

// Error implements the error interface
func (e *StreamRecordError) Error() string {
	return fmt.Sprintf("%s backend reported error %s mid-stream: %s", e.Backend, e.Code, e.Message)
}

// MissingTraitError means the prompt template references a trait the vector lacks.
// It signals a configuration inconsistency, not a user mistake.
type MissingTraitError struct {
	Trait string
}

// Error implements the error interface
func (e *MissingTraitError) Error() string {
	return fmt.Sprintf("personality vector is missing trait %q", e.Trait)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}
