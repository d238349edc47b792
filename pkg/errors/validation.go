package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Violation describes a single violated field constraint in a request payload.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all field constraint violations found in a
// request payload. Operations reject invalid input with the complete list so
// callers can fix everything in one round trip.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return string(ErrCodeInvalidInput)
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrCodeInvalidInput, strings.Join(parts, "; "))
}

// Add records a violation with a formatted message.
func (e *ValidationError) Add(field, format string, args ...any) {
	e.Violations = append(e.Violations, Violation{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// ErrOrNil returns the error if any violation was recorded, nil otherwise.
// Returning nil directly (not a typed nil) keeps err == nil checks working.
func (e *ValidationError) ErrOrNil() error {
	if e.HasViolations() {
		return e
	}
	return nil
}

// AsValidation extracts a ValidationError from an error chain, if present.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidateNodeID validates a node identifier.
// IDs key the positioned-node lookup during routing, so they must be
// non-empty and printable.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return New(ErrCodeInvalidInput, "node id contains control characters")
		}
	}
	return nil
}

// ValidateZoneName validates a zone name used in a coordinate system.
func ValidateZoneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidZone, "zone name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidZone, "zone name too long (max 128 characters)")
	}
	return nil
}
