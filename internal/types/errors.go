// Package types contains shared request/response types and the error
// taxonomy used across services and handlers.
package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrValidation marks malformed input: bad dates, unknown slots,
	// missing durations.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown job, suggestion or optimization id.
	ErrNotFound = errors.New("not found")
	// ErrStore marks a failed transactional write. The whole operation was
	// rolled back and may be retried.
	ErrStore = errors.New("store error")
)

// NewValidationError returns an ErrValidation wrapping the formatted cause.
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError returns an ErrNotFound for the named entity and id.
func NewNotFoundError(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

// NewStoreError returns an ErrStore wrapping the underlying failure.
func NewStoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}

// IsRetryable reports whether the caller may safely retry the operation.
// Only store errors are retryable; validation and not-found are terminal.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStore)
}
