package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
)

// ValidationError carries field-level messages for a malformed request.
// Never retried automatically; maps to 400.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = message
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// SchedulingConflict means the requested interval is no longer free for one
// or more participants at commit time. The caller must re-run discovery and
// pick a new slot; maps to 409.
type SchedulingConflict struct {
	ParticipantIDs []int64
}

func (e *SchedulingConflict) Error() string {
	ids := make([]string, len(e.ParticipantIDs))
	for i, id := range e.ParticipantIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("scheduling conflict for participant(s) %s", strings.Join(ids, ", "))
}

// CollaboratorUnavailable means a backing store or dispatcher could not be
// reached. Fatal for the current request; maps to 503.
type CollaboratorUnavailable struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorUnavailable) Unwrap() error {
	return e.Err
}
