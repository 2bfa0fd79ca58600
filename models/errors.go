package models

import (
	"errors"
	"fmt"
)

// ValidationError identifies the option group that violated its selection
// rules so the client can surface a field-level message.
type ValidationError struct {
	Group  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid selection for %q: %s", e.Group, e.Reason)
}

// PersistenceError wraps a downstream store failure. It is surfaced to the
// user as a generic, retryable submission failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

var (
	// ErrProductUnavailable means a referenced product or option was
	// deactivated between page load and submission.
	ErrProductUnavailable = errors.New("product is no longer available")

	// ErrCartConflict means the cart is bound to a different restaurant.
	// The caller must confirm before switching.
	ErrCartConflict = errors.New("cart belongs to a different restaurant")

	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingCustomer = errors.New("customer id is required")
	ErrMissingAddress  = errors.New("address is required for delivery orders")
)
