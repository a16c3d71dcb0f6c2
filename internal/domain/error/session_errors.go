// Package error defines domain-specific errors for the Finance Tracker companion.
package error

import "errors"

// Session domain errors.
var (
	// ErrNoActiveSession is returned when an operation needs a logged in user.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionWrite is returned when the session could not be written to durable storage.
	ErrSessionWrite = errors.New("failed to persist session")

	// ErrSessionRead is returned when durable storage could not be read during restore.
	ErrSessionRead = errors.New("failed to read persisted session")

	// ErrSessionDelete is returned when persisted session keys could not be removed.
	ErrSessionDelete = errors.New("failed to remove persisted session")
)

// PersistenceErrorCode defines error codes for session persistence errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type PersistenceErrorCode string

const (
	ErrCodeSessionWrite  PersistenceErrorCode = "SES-010001"
	ErrCodeSessionRead   PersistenceErrorCode = "SES-010002"
	ErrCodeSessionDelete PersistenceErrorCode = "SES-010003"
)

// PersistenceError reports a durable storage failure. The in-memory
// session is still correct when this error is returned.
type PersistenceError struct {
	Code    PersistenceErrorCode
	Message string
	Key     string
	Err     error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new PersistenceError for the given storage key.
func NewPersistenceError(code PersistenceErrorCode, message, key string, err error) *PersistenceError {
	return &PersistenceError{
		Code:    code,
		Message: message,
		Key:     key,
		Err:     err,
	}
}
