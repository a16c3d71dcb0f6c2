// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/finance-tracker/companion/internal/application/session"
)

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message            string
	PersistenceWarning error
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	sessions *session.Store
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(sessions *session.Store) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		sessions: sessions,
	}
}

// Execute clears the session. The backend keeps no server-side session to revoke.
func (uc *LogoutUserUseCase) Execute(ctx context.Context) *LogoutUserOutput {
	output := &LogoutUserOutput{Message: "Successfully logged out"}
	if err := uc.sessions.Logout(ctx); err != nil {
		output.PersistenceWarning = err
	}
	return output
}
