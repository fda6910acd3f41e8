package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrPartNotFound signals a missing catalog part.
	ErrPartNotFound = errors.New("part not found")
	// ErrProfileNotFound signals a customer without a delivery profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrCartEmpty signals an order attempt with nothing in the cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidRequest signals input that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidStatus signals an unknown order status.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrStoreUnavailable signals that the catalog store could not be reached.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
	// ErrIncompleteRecord signals a stored part lacking a required field.
	ErrIncompleteRecord = errors.New("incomplete catalog record")
	// ErrCacheUnavailable signals a cache backend failure.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// ValidationError wraps ErrInvalidRequest with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidRequest.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
