package view

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/aggregation"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/application/tracker"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// AnalysisInput selects the type and month shown on the analysis screen.
type AnalysisInput struct {
	Type  string
	Year  int
	Month time.Month
}

// AnalysisView is the per-type monthly analysis screen.
type AnalysisView struct {
	State   State
	Message string
	Type    entity.TransactionType
	Year    int
	Month   time.Month
	Totals  entity.MonthlyTotals
	Series  entity.DailySeries
	Recent  []entity.Transaction
}

// AnalysisOutput is the result of one analysis load.
type AnalysisOutput struct {
	View    *AnalysisView
	Applied bool
}

// AnalysisAssembler builds the analysis screen.
type AnalysisAssembler struct {
	ledger      adapter.LedgerClient
	sessions    *session.Store
	requests    *tracker.RequestTracker
	recentLimit int
	view        slot[AnalysisView]
}

// NewAnalysisAssembler creates a new AnalysisAssembler instance.
// recentLimit bounds the recent transaction list; zero or less keeps all of them.
func NewAnalysisAssembler(ledger adapter.LedgerClient, sessions *session.Store, requests *tracker.RequestTracker, recentLimit int) *AnalysisAssembler {
	return &AnalysisAssembler{
		ledger:      ledger,
		sessions:    sessions,
		requests:    requests,
		recentLimit: recentLimit,
	}
}

// Execute loads the analysis screen for one transaction type and month.
func (a *AnalysisAssembler) Execute(ctx context.Context, input AnalysisInput) (*AnalysisOutput, error) {
	txType, ok := entity.ParseTransactionType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !ok {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidType, "type", "validation failed", domainerror.ErrInvalidType)
	}

	ticket := a.requests.Begin(analysisKey)
	base := AnalysisView{Type: txType, Year: input.Year, Month: input.Month}

	userID, ok := a.sessions.UserID()
	if !ok {
		view := base
		view.State = StateUnauthenticated
		return &AnalysisOutput{View: &view, Applied: publish(a.requests, ticket, &a.view, &view)}, ErrUnauthenticated
	}

	var (
		transactions []entity.Transaction
		monthly      []entity.MonthlyTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = a.ledger.GetTransactionsByTypeAndUser(gctx, txType, userID)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = a.ledger.GetMonthlyTotals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		view := base
		view.State = StateError
		view.Message = errorMessage(err)
		return &AnalysisOutput{View: &view, Applied: publish(a.requests, ticket, &a.view, &view)}, err
	}

	inMonth := aggregation.FilterByMonth(transactions, input.Year, input.Month)

	view := base
	view.State = StateReady
	view.Totals = aggregation.SelectMonth(monthly, input.Year, input.Month)
	view.Series = aggregation.GroupByDay(inMonth)
	view.Recent = aggregation.RecentTransactions(inMonth, a.recentLimit)
	if len(inMonth) == 0 {
		view.State = StateEmpty
		view.Message = "no data"
	}

	return &AnalysisOutput{View: &view, Applied: publish(a.requests, ticket, &a.view, &view)}, nil
}

// Current returns the last published analysis view.
func (a *AnalysisAssembler) Current() (*AnalysisView, bool) {
	return a.view.get()
}
