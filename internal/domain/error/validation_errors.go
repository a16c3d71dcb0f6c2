// Package error defines domain-specific errors for the Finance Tracker companion.
package error

import "errors"

// Validation errors raised before any backend call.
var (
	ErrMissingAmount      = errors.New("amount is required")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrMissingCategory    = errors.New("category is required")
	ErrInvalidType        = errors.New("type must be income or expense")
	ErrMissingDate        = errors.New("date is required")
	ErrInvalidDateRange   = errors.New("end_date must not be before start_date")
	ErrInvalidDateFormat  = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingName        = errors.New("full name is required")
	ErrInvalidGender      = errors.New("invalid gender")
	ErrInvalidEntryMode   = errors.New("mode must be income, expense or goal")
)

// ValidationErrorCode defines error codes for validation errors.
// Format: VAL-XXYYYY where XX is category and YYYY is specific error.
type ValidationErrorCode string

const (
	// Entry errors (01XXXX)
	ErrCodeMissingAmount    ValidationErrorCode = "VAL-010001"
	ErrCodeInvalidAmount    ValidationErrorCode = "VAL-010002"
	ErrCodeMissingCategory  ValidationErrorCode = "VAL-010003"
	ErrCodeInvalidType      ValidationErrorCode = "VAL-010004"
	ErrCodeMissingDate      ValidationErrorCode = "VAL-010005"
	ErrCodeInvalidDateRange ValidationErrorCode = "VAL-010006"
	ErrCodeInvalidDate      ValidationErrorCode = "VAL-010007"
	ErrCodeInvalidEntryMode ValidationErrorCode = "VAL-010008"

	// Account errors (02XXXX)
	ErrCodeMissingCredentials ValidationErrorCode = "VAL-020001"
	ErrCodeMissingName        ValidationErrorCode = "VAL-020002"
	ErrCodeInvalidGender      ValidationErrorCode = "VAL-020003"
)

// ValidationError represents malformed input rejected before any network call.
type ValidationError struct {
	Code    ValidationErrorCode
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(code ValidationErrorCode, field, message string, err error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
