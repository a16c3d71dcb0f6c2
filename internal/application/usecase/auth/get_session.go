// Package auth contains authentication-related use cases.
package auth

import (
	"time"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// GetSessionOutput describes the current authentication state.
type GetSessionOutput struct {
	Authenticated bool
	Loading       bool
	User          *entity.UserProfile
	ExpiresAt     *time.Time
	Expired       bool
}

// GetSessionUseCase reports who is logged in.
type GetSessionUseCase struct {
	sessions  *session.Store
	inspector adapter.TokenInspector
	now       func() time.Time
}

// NewGetSessionUseCase creates a new GetSessionUseCase instance.
func NewGetSessionUseCase(sessions *session.Store, inspector adapter.TokenInspector) *GetSessionUseCase {
	return &GetSessionUseCase{
		sessions:  sessions,
		inspector: inspector,
		now:       time.Now,
	}
}

// Execute returns the session status. Token expiry is informational only;
// the backend decides whether a token is still accepted.
func (uc *GetSessionUseCase) Execute() *GetSessionOutput {
	output := &GetSessionOutput{Loading: uc.sessions.Loading()}

	current, ok := uc.sessions.Current()
	if !ok {
		return output
	}

	user := current.User
	output.Authenticated = true
	output.User = &user

	if uc.inspector == nil {
		return output
	}
	claims, err := uc.inspector.Inspect(current.Token)
	if err != nil || claims.ExpiresAt == nil {
		return output
	}
	output.ExpiresAt = claims.ExpiresAt
	output.Expired = claims.ExpiresAt.Before(uc.now())
	return output
}
