package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeCategoryBreakdown computes each category's share of the summed total.
// Percentages are rounded to two decimals and are all 0 when the total is 0.
func ComputeCategoryBreakdown(categoryTotals []entity.CategoryTotal) []entity.CategoryBreakdownEntry {
	total := SumCategoryTotals(categoryTotals)

	entries := make([]entity.CategoryBreakdownEntry, 0, len(categoryTotals))
	for _, ct := range categoryTotals {
		value := ct.TotalAmount.Abs()

		var percentage float64
		if !total.IsZero() {
			pct := value.Mul(hundred).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}

		entries = append(entries, entity.CategoryBreakdownEntry{
			Name:              ct.Name,
			Value:             value,
			PercentageOfTotal: percentage,
		})
	}

	return entries
}

// SumCategoryTotals returns the sum of all category magnitudes.
func SumCategoryTotals(categoryTotals []entity.CategoryTotal) decimal.Decimal {
	total := decimal.Zero
	for _, ct := range categoryTotals {
		total = total.Add(ct.TotalAmount.Abs())
	}
	return total
}
