// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// MonthlyTotals holds the income and expense sums of one calendar month.
type MonthlyTotals struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// Balance returns income minus expense.
func (m MonthlyTotals) Balance() decimal.Decimal {
	return m.TotalIncome.Sub(m.TotalExpense)
}

// DailySeries is a chart series with labels and values aligned by index.
type DailySeries struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// CategoryBreakdownEntry is one category's share of a total.
type CategoryBreakdownEntry struct {
	Name              string          `json:"name"`
	Value             decimal.Decimal `json:"value"`
	PercentageOfTotal float64         `json:"percentage_of_total"`
}

// BudgetStatus describes how much of a planned budget has been consumed.
type BudgetStatus struct {
	PlannedBudget   decimal.Decimal `json:"planned_budget"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"` // Never negative
	SpentPercentage float64         `json:"spent_percentage"`
	Overspend       decimal.Decimal `json:"overspend"`
}
