package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain outcome signals surfaced by the case registry and user services.
var (
	// ErrInvalidTransition is returned for a status value the actor may not set
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrExtensionAlreadyGranted signals the idempotent no-op on a second grant.
	// It is a warning, not a failure: the case already has its 30-day deadline.
	ErrExtensionAlreadyGranted = errors.New("extension already granted")
)

// ValidationError carries field-level messages back to the submitter.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field messages
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError unwraps a ValidationError if err carries one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
