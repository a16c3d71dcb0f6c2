// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finance-tracker/companion/internal/application/adapter"
)

// tokenInspector implements the adapter.TokenInspector interface for JWT session tokens.
// The signing key belongs to the backend, so signatures are not checked here.
type tokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector creates a new token inspector instance.
func NewTokenInspector() adapter.TokenInspector {
	return &tokenInspector{
		parser: jwt.NewParser(),
	}
}

// Inspect decodes the registered claims of a JWT.
func (s *tokenInspector) Inspect(token string) (*adapter.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	result := &adapter.TokenClaims{
		Subject: claims.Subject,
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		result.ExpiresAt = &expiresAt
	}
	return result, nil
}
