// Package error defines domain-specific errors for the Finance Tracker companion.
package error

import (
	"errors"
	"fmt"
)

// Ledger (backend) errors.
var (
	// ErrLedgerUnavailable is returned when the backend cannot be reached.
	ErrLedgerUnavailable = errors.New("ledger backend unavailable")

	// ErrUnexpectedStatus is returned when the backend answers with an unexpected HTTP status.
	ErrUnexpectedStatus = errors.New("unexpected ledger response status")

	// ErrMalformedResponse is returned when the backend answer cannot be decoded.
	ErrMalformedResponse = errors.New("malformed ledger response")
)

// NetworkErrorCode defines error codes for backend fetch errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type NetworkErrorCode string

const (
	ErrCodeLedgerUnavailable NetworkErrorCode = "LDG-010001"
	ErrCodeUnexpectedStatus  NetworkErrorCode = "LDG-010002"
	ErrCodeMalformedResponse NetworkErrorCode = "LDG-010003"
)

// NetworkError reports a failed backend call.
type NetworkError struct {
	Code       NetworkErrorCode
	Operation  string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	msg := e.Operation + " failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError for the named backend operation.
func NewNetworkError(code NetworkErrorCode, operation string, statusCode int, err error) *NetworkError {
	return &NetworkError{
		Code:       code,
		Operation:  operation,
		StatusCode: statusCode,
		Err:        err,
	}
}
