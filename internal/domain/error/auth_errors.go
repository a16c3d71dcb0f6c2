// Package error defines domain-specific errors for the Finance Tracker companion.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRegistrationRejected is returned when the backend rejects a registration.
	ErrRegistrationRejected = errors.New("registration rejected")

	// ErrUnauthorized is returned when the backend refuses the session token.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeRegistrationRejected AuthErrorCode = "AUTH-010001"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Token errors (03XXXX)
	ErrCodeUnauthorized AuthErrorCode = "AUTH-030001"
	ErrCodeNotLoggedIn  AuthErrorCode = "AUTH-030003"
)

// AuthError represents an authentication error with code and message.
// The message is the backend's own wording and is surfaced verbatim.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
