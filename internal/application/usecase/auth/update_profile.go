// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// UpdateProfileInput represents the editable profile fields.
type UpdateProfileInput struct {
	FullName string
	Email    string
	Phone    string
	Gender   entity.Gender
}

// UpdateProfileOutput represents the output of a profile update.
type UpdateProfileOutput struct {
	User               entity.UserProfile
	PersistenceWarning error
}

// UpdateProfileUseCase handles profile edits of the logged in user.
type UpdateProfileUseCase struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(ledger adapter.LedgerClient, sessions *session.Store) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		ledger:   ledger,
		sessions: sessions,
	}
}

// Execute pushes the edit to the backend and re-assigns the whole profile locally.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	current, ok := uc.sessions.Current()
	if !ok || current.User.ID == "" {
		return nil, domainerror.ErrNoActiveSession
	}

	patch := adapter.ProfilePatch{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Gender:   input.Gender,
	}
	if patch.FullName == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeMissingName, "full_name", "validation failed", domainerror.ErrMissingName)
	}
	if patch.Gender == "" {
		patch.Gender = entity.GenderUnknown
	}
	if !patch.Gender.IsValid() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidGender, "gender", "validation failed", domainerror.ErrInvalidGender)
	}

	userID := current.User.ID
	if err := uc.ledger.UpdateUser(ctx, userID, patch); err != nil {
		return nil, err
	}

	profile, err := uc.ledger.GetUser(ctx, userID)
	if err != nil {
		slog.Warn("Profile re-fetch failed, keeping submitted profile", "user_id", userID, "error", err)
		profile = &entity.UserProfile{
			ID:       userID,
			FullName: patch.FullName,
			Email:    patch.Email,
			Phone:    patch.Phone,
			Gender:   patch.Gender,
		}
	}

	output := &UpdateProfileOutput{User: *profile}
	if err := uc.sessions.UpdateProfile(ctx, *profile); err != nil {
		var persistenceErr *domainerror.PersistenceError
		if !errors.As(err, &persistenceErr) {
			return nil, err
		}
		output.PersistenceWarning = err
	}
	return output, nil
}
