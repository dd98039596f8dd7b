package logic

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks caller contract violations: negative or
	// inconsistent counts, unknown enum values, malformed history.
	ErrInvalidInput = errors.New("invalid input")

	// ErrKingdomNotFound is returned when no profile exists for a kingdom.
	ErrKingdomNotFound = errors.New("kingdom not found")
)

// ValidationError describes which field broke the contract and why
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
