// Package domain defines error types for the checkout simulator.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given ID is not
// in the catalog (or, for removals, not in the cart)
type ProductNotFoundError struct {
	ProductID int
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidQuantityError is returned when a cart mutation is attempted with a
// non-positive quantity
type InvalidQuantityError struct {
	Quantity int
}

// Error implements the error interface for InvalidQuantityError
func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: must be positive, got %d", e.Quantity)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidQuantityError) Is(target error) bool {
	_, ok := target.(*InvalidQuantityError)
	return ok
}

// InvalidConfigError is returned when the startup configuration is
// inconsistent (duplicate catalog ids, malformed tier table, bad sale
// window). It is a fatal precondition violation, not a per-request error.
type InvalidConfigError struct {
	Section string
	Reason  string
}

// Error implements the error interface for InvalidConfigError
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: section=%s, reason=%s", e.Section, e.Reason)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidConfigError) Is(target error) bool {
	_, ok := target.(*InvalidConfigError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInvalidQuantityError creates a new InvalidQuantityError
func NewInvalidQuantityError(quantity int) error {
	return &InvalidQuantityError{Quantity: quantity}
}

// NewInvalidConfigError creates a new InvalidConfigError
func NewInvalidConfigError(section, reason string) error {
	return &InvalidConfigError{Section: section, Reason: reason}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidQuantityError checks if an error is an InvalidQuantityError
func IsInvalidQuantityError(err error) bool {
	var iqe *InvalidQuantityError
	return errors.As(err, &iqe)
}

// IsInvalidConfigError checks if an error is an InvalidConfigError
func IsInvalidConfigError(err error) bool {
	var ice *InvalidConfigError
	return errors.As(err, &ice)
}
