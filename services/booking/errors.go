package booking

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a wizard session is missing or expired.
// A session belonging to a different user is reported the same way.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ValidationError is a client-local failure: a required wizard field is
// missing or a value is out of bounds. It is always raised before any remote
// call, and the session state it rejects is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
