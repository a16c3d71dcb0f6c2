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

// SaveTransactionInput represents the raw entry form values.
type SaveTransactionInput struct {
	ID          string
	Type        string
	Amount      string
	CategoryID  string
	Date        string
	Description string
}

// SaveTransactionUseCase validates and records an income or expense.
type SaveTransactionUseCase struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
}

// NewSaveTransactionUseCase creates a new SaveTransactionUseCase instance.
func NewSaveTransactionUseCase(ledger adapter.LedgerClient, sessions *session.Store) *SaveTransactionUseCase {
	return &SaveTransactionUseCase{
		ledger:   ledger,
		sessions: sessions,
	}
}

// Execute validates the input and sends it to the backend.
// Nothing is sent when validation fails.
func (uc *SaveTransactionUseCase) Execute(ctx context.Context, input SaveTransactionInput) (*entity.Transaction, error) {
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
	txType, valid := entity.ParseTransactionType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !valid {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidType, "type", validationFailed, domainerror.ErrInvalidType)
	}
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}

	tx := entity.Transaction{
		ID:          strings.TrimSpace(input.ID),
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(input.Description),
	}
	if err := uc.ledger.CreateOrUpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
