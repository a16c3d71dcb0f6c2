// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string
	User  entity.UserProfile
}

// Registration holds the data required to create a backend account.
type Registration struct {
	FullName string
	Email    string
	Phone    string
	Gender   entity.Gender
	Password string
}

// ProfilePatch carries the profile fields a user may edit.
type ProfilePatch struct {
	FullName string
	Email    string
	Phone    string
	Gender   entity.Gender
}

// LedgerClient fetches and mutates ledger records held by the backend.
// Every read returns a fresh snapshot.
type LedgerClient interface {
	// GetTransactionsByTypeAndUser returns all transactions of the given type.
	GetTransactionsByTypeAndUser(ctx context.Context, txType entity.TransactionType, userID string) ([]entity.Transaction, error)

	// GetCategoriesByTypeAndUser returns the user's categories of a type with their summed amounts.
	GetCategoriesByTypeAndUser(ctx context.Context, txType entity.TransactionType, userID string) ([]entity.CategoryTotal, error)

	// GetMonthlyTotals returns per-month income and expense totals.
	GetMonthlyTotals(ctx context.Context, userID string) ([]entity.MonthlyTotals, error)

	// GetGoalTotalForRange returns the summed goal amount active at the reference date.
	GetGoalTotalForRange(ctx context.Context, userID string, referenceDate time.Time) (entity.GoalTotal, error)

	// CreateOrUpdateTransaction saves a transaction.
	CreateOrUpdateTransaction(ctx context.Context, tx entity.Transaction) error

	// CreateOrUpdateGoal saves a goal.
	CreateOrUpdateGoal(ctx context.Context, goal entity.Goal) error

	// Login exchanges credentials for a token and profile.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Register creates a backend account.
	Register(ctx context.Context, reg Registration) error

	// UpdateUser applies a profile patch.
	UpdateUser(ctx context.Context, userID string, patch ProfilePatch) error

	// GetUser fetches a user profile by id.
	GetUser(ctx context.Context, userID string) (*entity.UserProfile, error)
}
