package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// ComputeBudgetStatus reports how much of the planned budget the expenses consumed.
//
// Remaining is clamped at zero; an overrun is reported in Overspend instead of
// as a negative remainder. SpentPercentage is rounded to one decimal and is 0
// when nothing was planned.
func ComputeBudgetStatus(plannedBudget, totalExpense decimal.Decimal) entity.BudgetStatus {
	status := entity.BudgetStatus{
		PlannedBudget: plannedBudget,
		Spent:         totalExpense,
		Remaining:     decimal.Max(decimal.Zero, plannedBudget.Sub(totalExpense)),
		Overspend:     decimal.Max(decimal.Zero, totalExpense.Sub(plannedBudget)),
	}

	if plannedBudget.IsPositive() {
		pct := totalExpense.Div(plannedBudget).Mul(hundred)
		status.SpentPercentage, _ = pct.Round(1).Float64()
	}

	return status
}
