// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a planned budget ceiling for a category over a date range.
type Goal struct {
	ID          string
	UserID      string
	CategoryID  string
	Amount      decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	Description string
}

// GoalTotal is the sum of goal amounts active at a reference date.
type GoalTotal struct {
	TotalAmount decimal.Decimal
}
