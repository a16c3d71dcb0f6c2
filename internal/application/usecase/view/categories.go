package view

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/aggregation"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/application/tracker"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// CategoriesView is the category breakdown screen.
type CategoriesView struct {
	State     State
	Message   string
	Type      entity.TransactionType
	Breakdown []entity.CategoryBreakdownEntry
	Total     decimal.Decimal
}

// CategoriesOutput is the result of one categories load.
type CategoriesOutput struct {
	View    *CategoriesView
	Applied bool
}

// CategoriesAssembler builds the category breakdown screen.
type CategoriesAssembler struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
	requests *tracker.RequestTracker
	view     slot[CategoriesView]
}

// NewCategoriesAssembler creates a new CategoriesAssembler instance.
func NewCategoriesAssembler(ledger adapter.LedgerClient, sessions *session.Store, requests *tracker.RequestTracker) *CategoriesAssembler {
	return &CategoriesAssembler{
		ledger:   ledger,
		sessions: sessions,
		requests: requests,
	}
}

// Execute loads the breakdown of one transaction type.
func (a *CategoriesAssembler) Execute(ctx context.Context, rawType string) (*CategoriesOutput, error) {
	txType, ok := entity.ParseTransactionType(strings.ToLower(strings.TrimSpace(rawType)))
	if !ok {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidType, "type", "validation failed", domainerror.ErrInvalidType)
	}

	ticket := a.requests.Begin(categoriesKey)

	userID, ok := a.sessions.UserID()
	if !ok {
		view := &CategoriesView{State: StateUnauthenticated, Type: txType, Breakdown: []entity.CategoryBreakdownEntry{}}
		return &CategoriesOutput{View: view, Applied: publish(a.requests, ticket, &a.view, view)}, ErrUnauthenticated
	}

	totals, err := a.ledger.GetCategoriesByTypeAndUser(ctx, txType, userID)
	if err != nil {
		view := &CategoriesView{State: StateError, Message: errorMessage(err), Type: txType, Breakdown: []entity.CategoryBreakdownEntry{}}
		return &CategoriesOutput{View: view, Applied: publish(a.requests, ticket, &a.view, view)}, err
	}

	view := &CategoriesView{
		State:     StateReady,
		Type:      txType,
		Breakdown: aggregation.ComputeCategoryBreakdown(totals),
		Total:     aggregation.SumCategoryTotals(totals),
	}
	if len(totals) == 0 {
		view.State = StateEmpty
		view.Message = "no data"
	}

	return &CategoriesOutput{View: view, Applied: publish(a.requests, ticket, &a.view, view)}, nil
}

// Current returns the last published categories view.
func (a *CategoriesAssembler) Current() (*CategoriesView, bool) {
	return a.view.get()
}
