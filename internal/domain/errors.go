package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is always wrapped by a *ValidationError carrying the field details.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")
)

// Field-level validation messages. The wording is part of the public API:
// clients match on these strings.
const (
	MsgMissingField  = "Missing data for required field."
	MsgUnknownField  = "Unknown field."
	MsgNotString     = "Not a valid string."
	MsgNotNumber     = "Not a valid number."
	MsgNotInteger    = "Not a valid integer."
	MsgNotDateTime   = "Not a valid datetime."
	MsgNotList       = "Not a valid list."
	MsgInvalidValue  = "Invalid value."
	msgLongerThanFmt = "Longer than maximum length %d."
)

// MsgLongerThan returns the message used when a string exceeds max characters.
func MsgLongerThan(max int) string {
	return fmt.Sprintf(msgLongerThanFmt, max)
}

// ValidationError collects field-level validation failures.
// Fields maps a field name (as it appears on the wire) to its messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a ValidationError holding a single field message.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

// Add records message against field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e as an error when it holds failures, nil otherwise.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Error implements the error interface. Fields are listed in sorted order so
// the message is stable.
func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return ErrValidation.Error()
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
