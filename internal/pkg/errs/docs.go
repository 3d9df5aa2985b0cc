// Package errs holds the typed errors shared by the domain model, use cases and
// adapters of the ordering service.
//
// Every type pairs with a sentinel so callers branch with errors.Is and never
// inspect messages:
//
//	ValueIsRequiredError  -> ErrValueIsRequired   (empty name, missing config key)
//	ValueIsInvalidError   -> ErrValueIsInvalid    (unknown status, bad order id)
//	ValueIsOutOfRangeError -> ErrValueIsOutOfRange (coordinates, quantities)
//	ObjectNotFoundError   -> ErrObjectNotFound    (order, vendor or location miss)
//
// The WithCause constructors keep the underlying error in the message for logs. The
// HTTP adapter maps ErrObjectNotFound to 404 and never shows the cause to clients.
package errs
