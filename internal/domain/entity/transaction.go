// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger record (income or expense).
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType converts a user supplied name into a TransactionType.
func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(s)
	return t, t.IsValid()
}

// DateLayout is the calendar date encoding used at every boundary (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Transaction represents a single income or expense record owned by the backend.
type Transaction struct {
	ID          string
	UserID      string
	CategoryID  string
	Type        TransactionType
	Amount      decimal.Decimal // Always non-negative, direction lives in Type
	Date        time.Time       // Local calendar date at midnight
	Description string
}

// ParseDate parses a YYYY-MM-DD value as a local calendar date.
// A trailing time component (e.g. "2025-01-09T00:00:00") is ignored.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDate strips the clock part of t, keeping its location.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
