// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	User entity.UserProfile
	// PersistenceWarning is set when the session is active in memory
	// but could not be written to durable storage.
	PersistenceWarning error
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(ledger adapter.LedgerClient, sessions *session.Store) *LoginUserUseCase {
	return &LoginUserUseCase{
		ledger:   ledger,
		sessions: sessions,
	}
}

// Execute exchanges credentials with the backend and starts a session.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeMissingCredentials,
			"email",
			"validation failed",
			domainerror.ErrMissingCredentials,
		)
	}

	result, err := uc.ledger.Login(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	output := &LoginUserOutput{User: result.User}
	if err := uc.sessions.Login(ctx, result.Token, result.User); err != nil {
		var persistenceErr *domainerror.PersistenceError
		if !errors.As(err, &persistenceErr) {
			return nil, err
		}
		output.PersistenceWarning = err
	}

	return output, nil
}
