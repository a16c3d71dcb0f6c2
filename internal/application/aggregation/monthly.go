// Package aggregation turns raw ledger snapshots into the derived views shown
// on every screen. All functions are pure: no I/O, no errors, and identical
// inputs always produce identical outputs.
package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// FilterByMonth returns the transactions whose calendar date falls in the given month.
// Dates are compared by their own year and month fields, never by elapsed time,
// so a record on the first day of the month is included and one on the last day
// of the previous month is not.
func FilterByMonth(transactions []entity.Transaction, year int, month time.Month) []entity.Transaction {
	result := make([]entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			result = append(result, tx)
		}
	}
	return result
}

// ComputeMonthlyTotals sums amounts by transaction type.
// Year and Month are left zero.
func ComputeMonthlyTotals(transactions []entity.Transaction) entity.MonthlyTotals {
	totals := entity.MonthlyTotals{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, tx := range transactions {
		switch tx.Type {
		case entity.TransactionTypeIncome:
			totals.TotalIncome = totals.TotalIncome.Add(amountOf(tx))
		case entity.TransactionTypeExpense:
			totals.TotalExpense = totals.TotalExpense.Add(amountOf(tx))
		}
	}

	return totals
}

// SelectMonth picks the backend's totals row for one month.
// Duplicate rows for the same month are summed; a missing month yields zeros.
func SelectMonth(rows []entity.MonthlyTotals, year int, month time.Month) entity.MonthlyTotals {
	selected := entity.MonthlyTotals{
		Year:         year,
		Month:        int(month),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, row := range rows {
		if row.Year != year || row.Month != int(month) {
			continue
		}
		selected.TotalIncome = selected.TotalIncome.Add(row.TotalIncome.Abs())
		selected.TotalExpense = selected.TotalExpense.Add(row.TotalExpense.Abs())
	}

	return selected
}

// amountOf returns the stored magnitude of a transaction.
// Storage is non-negative; a negative snapshot value is read as its magnitude
// because direction is carried by the type only.
func amountOf(tx entity.Transaction) decimal.Decimal {
	return tx.Amount.Abs()
}
