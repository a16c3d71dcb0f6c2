// Package entry contains the use cases behind the entry form.
package entry

import (
	"context"
	"strings"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// SaveGoalInput represents the raw goal form values.
type SaveGoalInput struct {
	ID          string
	Amount      string
	CategoryID  string
	StartDate   string
	EndDate     string
	Description string
}

// SaveGoalUseCase validates and records a budget goal.
type SaveGoalUseCase struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
}

// NewSaveGoalUseCase creates a new SaveGoalUseCase instance.
func NewSaveGoalUseCase(ledger adapter.LedgerClient, sessions *session.Store) *SaveGoalUseCase {
	return &SaveGoalUseCase{
		ledger:   ledger,
		sessions: sessions,
	}
}

// Execute validates the input and sends it to the backend.
func (uc *SaveGoalUseCase) Execute(ctx context.Context, input SaveGoalInput) (*entity.Goal, error) {
	userID, ok := uc.sessions.UserID()
	if !ok {
		return nil, domainerror.ErrNoActiveSession
	}

	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	categoryID, err := requireCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidDateRange, "end_date", validationFailed, domainerror.ErrInvalidDateRange)
	}

	goal := entity.Goal{
		ID:          strings.TrimSpace(input.ID),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: strings.TrimSpace(input.Description),
	}
	if err := uc.ledger.CreateOrUpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return &goal, nil
}
