package service

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to 400.
var (
	// ErrUserIDRequired indicates an order was requested without an owner.
	ErrUserIDRequired = errors.New("user_id is required")

	// ErrProductAlreadyInOrder indicates an add of a product the order already holds.
	ErrProductAlreadyInOrder = errors.New("product already in order")

	// ErrProductNotInOrder indicates a remove of a product the order does not hold.
	ErrProductNotInOrder = errors.New("product not in order")
)

// isExpected reports whether err is a client-caused outcome rather than a fault.
func isExpected(err error) bool {
	return store.IsNotFoundError(err) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, ErrUserIDRequired) ||
		errors.Is(err, ErrProductAlreadyInOrder) ||
		errors.Is(err, ErrProductNotInOrder)
}

// logFailure logs expected outcomes at DEBUG and duplicates at WARN.
// Anything else is a fault and goes to ERROR.
func logFailure(log *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))
	switch {
	case isExpected(err):
		log.Debug(msg, attrs...)
	case store.IsDuplicateError(err):
		log.Warn(msg, attrs...)
	default:
		log.Error(msg, attrs...)
	}
}
