package services

import "errors"

// Failure kinds surfaced to controllers. Every failure propagates directly
// to the caller with its kind; there is no local retry or compensation.
var (
	// ErrForbidden: ownership mismatch on cart access, or a role check that
	// did not pass.
	ErrForbidden = errors.New("forbidden access")

	// ErrGateway: the payment gateway call failed.
	ErrGateway = errors.New("payment gateway error")

	// ErrPersistence: a document store operation failed.
	ErrPersistence = errors.New("persistence error")
)
