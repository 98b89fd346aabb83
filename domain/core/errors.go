package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrVerdictNotFound = fmt.Errorf("%w: verdict", ErrNotFound)

	// Validation errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidMode   = fmt.Errorf("%w: unknown scoring mode", ErrInvalidInput)
	ErrEmptyBatch    = fmt.Errorf("%w: batch contains no requests", ErrInvalidInput)
	ErrBatchTooLarge = fmt.Errorf("%w: batch exceeds the maximum size", ErrInvalidInput)
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
