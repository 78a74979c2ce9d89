package storefront

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("storefront: not found")
	ErrAlreadyExists = errors.New("storefront: already exists")
	ErrInvalidInput  = errors.New("storefront: invalid input")

	// Product errors
	ErrProductNotFound = errors.New("storefront: product not found")
	ErrProductInactive = errors.New("storefront: product is inactive")
	ErrDuplicateSlug   = errors.New("storefront: duplicate product slug")
	ErrInvalidCategory = errors.New("storefront: unknown category")

	// Promotion errors
	ErrPromotionNotFound  = errors.New("storefront: promotion not found")
	ErrPromotionExpired   = errors.New("storefront: promotion expired")
	ErrPromotionInvalid   = errors.New("storefront: promotion invalid")
	ErrPromotionExhausted = errors.New("storefront: promotion redemptions exhausted")
	ErrCouponBelowMinimum = errors.New("storefront: subtotal below coupon minimum")

	// Order errors
	ErrOrderNotFound     = errors.New("storefront: order not found")
	ErrEmptyOrder        = errors.New("storefront: order has no items")
	ErrInvalidStatus     = errors.New("storefront: invalid order status")
	ErrStatusTerminal    = errors.New("storefront: order status is terminal")
	ErrViewBufferFull    = errors.New("storefront: view buffer full")

	// Store errors
	ErrStoreNotReady     = errors.New("storefront: store not ready")
	ErrStoreClosed       = errors.New("storefront: store is closed")
	ErrTransactionFailed = errors.New("storefront: transaction failed")
	ErrMigrationFailed   = errors.New("storefront: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("storefront: validation failed for %s: %s", e.Field, e.Message)
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "storefront: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("storefront: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrPromotionNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsCouponRejection returns true if the error explains why a coupon was
// refused, as opposed to an infrastructure failure.
func IsCouponRejection(err error) bool {
	return errors.Is(err, ErrPromotionNotFound) ||
		errors.Is(err, ErrPromotionExpired) ||
		errors.Is(err, ErrPromotionInvalid) ||
		errors.Is(err, ErrPromotionExhausted) ||
		errors.Is(err, ErrCouponBelowMinimum)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrViewBufferFull) ||
		errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
