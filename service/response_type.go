package service

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the reasons a checkout operation can fail
type ErrorKind int

const (
	// TransportError means the call to PayPal could not be made or read
	TransportError ErrorKind = iota

	// APIError means PayPal answered with an "error" field
	APIError

	// NotApproved means the buyer did not approve the payment
	NotApproved

	// MissingField means an expected field was absent from a PayPal response
	MissingField

	// EmptyInput means there was nothing to send, e.g. no items or no payment id
	EmptyInput
)

var vals = [...]string{
	"transport-error",
	"api-error",
	"not-approved",
	"missing-field",
	"empty-input",
}

// String representation of `ErrorKind`
func (k ErrorKind) String() string {
	return vals[k]
}

// OperationError is returned by every failed checkout operation. Message is
// the same text exposed by CheckoutSession.ErrorMessage and may be empty.
type OperationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: [%v]", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying error, if any
func (e *OperationError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of err, and false when err is not an
// *OperationError
func KindOf(err error) (ErrorKind, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind, true
	}
	return 0, false
}
