// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// TokenClaims represents the claims readable from a session token.
type TokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
}

// TokenInspector reads claims from an opaque session token without verifying it.
// The backend remains the only authority on token validity.
type TokenInspector interface {
	Inspect(token string) (*TokenClaims, error)
}
