package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/aggregation"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/application/tracker"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// HomeView is the monthly summary screen.
type HomeView struct {
	State   State
	Message string
	Year    int
	Month   time.Month
	Totals  entity.MonthlyTotals
	Balance decimal.Decimal
	Budget  entity.BudgetStatus
}

// HomeOutput is the result of one home load.
type HomeOutput struct {
	View *HomeView
	// Applied is false when a newer load superseded this one.
	Applied bool
}

// HomeAssembler builds the home screen for the month of a reference date.
type HomeAssembler struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
	requests *tracker.RequestTracker
	view     slot[HomeView]
}

// NewHomeAssembler creates a new HomeAssembler instance.
func NewHomeAssembler(ledger adapter.LedgerClient, sessions *session.Store, requests *tracker.RequestTracker) *HomeAssembler {
	return &HomeAssembler{
		ledger:   ledger,
		sessions: sessions,
		requests: requests,
	}
}

// Execute loads the home screen. The goal total active at referenceDate is
// the planned budget the month's expenses are measured against.
func (a *HomeAssembler) Execute(ctx context.Context, referenceDate time.Time) (*HomeOutput, error) {
	year, month := referenceDate.Year(), referenceDate.Month()
	ticket := a.requests.Begin(homeKey)

	userID, ok := a.sessions.UserID()
	if !ok {
		view := &HomeView{State: StateUnauthenticated, Year: year, Month: month}
		return &HomeOutput{View: view, Applied: publish(a.requests, ticket, &a.view, view)}, ErrUnauthenticated
	}

	var (
		monthly []entity.MonthlyTotals
		goal    entity.GoalTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthly, err = a.ledger.GetMonthlyTotals(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		goal, err = a.ledger.GetGoalTotalForRange(gctx, userID, referenceDate)
		return err
	})
	if err := g.Wait(); err != nil {
		view := &HomeView{State: StateError, Message: errorMessage(err), Year: year, Month: month}
		return &HomeOutput{View: view, Applied: publish(a.requests, ticket, &a.view, view)}, err
	}

	totals := aggregation.SelectMonth(monthly, year, month)
	planned := goal.TotalAmount.Abs()

	view := &HomeView{
		State:   StateReady,
		Year:    year,
		Month:   month,
		Totals:  totals,
		Balance: totals.Balance(),
		Budget:  aggregation.ComputeBudgetStatus(planned, totals.TotalExpense),
	}
	if totals.TotalIncome.IsZero() && totals.TotalExpense.IsZero() && planned.IsZero() {
		view.State = StateEmpty
		view.Message = "no data"
	}

	return &HomeOutput{View: view, Applied: publish(a.requests, ticket, &a.view, view)}, nil
}

// Current returns the last published home view.
func (a *HomeAssembler) Current() (*HomeView, bool) {
	return a.view.get()
}
