package commands

import (
	"errors"
	"fmt"
)

// Client input errors.
var (
	ErrVendorAndItemsRequired  = errors.New("vendor and items are required")
	ErrDropoffLocationRequired = errors.New("dropoff location is required")
	ErrOrderItemsInvalid       = errors.New("order items are invalid")
)

// Resolution errors.
var (
	ErrInvalidVendor          = errors.New("invalid vendor")
	ErrInvalidDropoffLocation = errors.New("invalid dropoff location")
)

// Dependency errors.
var (
	ErrReferenceLookupTimeout = errors.New("reference lookup timed out")
	ErrDispatchFailed         = errors.New("dispatch failed")
	ErrDispatchTimeout        = errors.New("dispatch timed out")
	ErrDispatchMissingOrderID = errors.New("dispatch service returned no order id")
)

// DispatchError carries the dispatch service's own failure message so it can be
// relayed to the client. It matches ErrDispatchFailed with errors.Is.
type DispatchError struct {
	Message string
	Cause   error
}

func NewDispatchError(cause error) *DispatchError {
	return &DispatchError{Message: cause.Error(), Cause: cause}
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDispatchFailed, e.Message)
}

func (e *DispatchError) Unwrap() []error {
	return []error{ErrDispatchFailed, e.Cause}
}
