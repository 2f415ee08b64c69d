package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/service"
	"github.com/phrazzld/shop-api/internal/store"
)

// Client-facing error messages.
const (
	msgResourceNotFound  = "Resource not found"
	msgMethodNotAllowed  = "Method not allowed"
	msgInternalError     = "Internal server error"
	msgInvalidJSON       = "Invalid JSON body"
	msgUserIDRequired    = "user_id is required"
	msgUserNotFound      = "User not found"
	msgProductNotFound   = "Product not found"
	msgOrderNotFound     = "Order not found"
	msgAlreadyInOrder    = "Product already in order"
	msgNotInOrder        = "Product not in order"
	msgUnexpectedFailure = "An unexpected error occurred"
)

// MapErrorToStatusCode maps service and store errors to HTTP status codes.
// Anything unrecognized is a storage fault.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrUserIDRequired),
		errors.Is(err, service.ErrProductAlreadyInOrder),
		errors.Is(err, service.ErrProductNotInOrder):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the message sent to the client for err.
//
// Storage faults, including duplicate emails and foreign key violations,
// expose the backend error text. This leak is a documented part of the
// API contract.
func GetErrorMessage(err error) string {
	if err == nil {
		return msgUnexpectedFailure
	}

	switch {
	case errors.Is(err, service.ErrUserIDRequired):
		return msgUserIDRequired
	case errors.Is(err, service.ErrProductAlreadyInOrder):
		return msgAlreadyInOrder
	case errors.Is(err, service.ErrProductNotInOrder):
		return msgNotInOrder
	case errors.Is(err, store.ErrUserNotFound):
		return msgUserNotFound
	case errors.Is(err, store.ErrProductNotFound):
		return msgProductNotFound
	case errors.Is(err, store.ErrOrderNotFound):
		return msgOrderNotFound
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return msgResourceNotFound
	default:
		return rootCause(err).Error()
	}
}

// rootCause follows the wrap chain to the innermost error. For joined
// errors it follows the last one, which is where the backend error sits
// when a sentinel is wrapped in front of it.
func rootCause(err error) error {
	for {
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			next := x.Unwrap()
			if next == nil {
				return err
			}
			err = next
		case interface{ Unwrap() []error }:
			errs := x.Unwrap()
			if len(errs) == 0 {
				return err
			}
			err = errs[len(errs)-1]
		default:
			return err
		}
	}
}
