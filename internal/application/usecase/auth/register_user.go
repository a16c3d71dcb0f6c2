// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"strings"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	FullName string
	Email    string
	Phone    string
	Gender   entity.Gender
	Password string
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	ledger adapter.LedgerClient
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(ledger adapter.LedgerClient) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		ledger: ledger,
	}
}

// Execute creates the account on the backend. It does not log the user in.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) error {
	reg := adapter.Registration{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Gender:   input.Gender,
		Password: input.Password,
	}

	if reg.FullName == "" {
		return domainerror.NewValidationError(domainerror.ErrCodeMissingName, "full_name", "validation failed", domainerror.ErrMissingName)
	}
	if reg.Email == "" || reg.Password == "" {
		return domainerror.NewValidationError(domainerror.ErrCodeMissingCredentials, "email", "validation failed", domainerror.ErrMissingCredentials)
	}
	if reg.Gender == "" {
		reg.Gender = entity.GenderUnknown
	}
	if !reg.Gender.IsValid() {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidGender, "gender", "validation failed", domainerror.ErrInvalidGender)
	}

	return uc.ledger.Register(ctx, reg)
}
