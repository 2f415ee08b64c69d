package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or violates a foreign key / check / not null constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// ErrOrderNotFound indicates that the requested order does not exist.
	ErrOrderNotFound = fmt.Errorf("%w: order", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
// Its message keeps the backend error text, which the API exposes for
// storage faults.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "order")
	Operation string // The operation that failed (e.g., "create", "delete")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError for entity and operation wrapping err.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}
