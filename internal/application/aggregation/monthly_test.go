package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func tx(txType entity.TransactionType, amount string, date time.Time) entity.Transaction {
	return entity.Transaction{
		Type:   txType,
		Amount: decimal.RequireFromString(amount),
		Date:   date,
	}
}

func TestFilterByMonth(t *testing.T) {
	transactions := []entity.Transaction{
		tx(entity.TransactionTypeExpense, "10", day(2025, time.January, 31)),
		tx(entity.TransactionTypeExpense, "20", day(2025, time.February, 1)),
		tx(entity.TransactionTypeIncome, "30", day(2025, time.February, 28)),
		tx(entity.TransactionTypeIncome, "40", day(2025, time.March, 1)),
		tx(entity.TransactionTypeIncome, "50", day(2024, time.February, 15)),
	}

	t.Run("includes first day and excludes previous month's last day", func(t *testing.T) {
		got := FilterByMonth(transactions, 2025, time.February)
		if len(got) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(got))
		}
		if !got[0].Date.Equal(day(2025, time.February, 1)) {
			t.Errorf("expected first transaction on Feb 1, got %s", got[0].Date)
		}
		if !got[1].Date.Equal(day(2025, time.February, 28)) {
			t.Errorf("expected second transaction on Feb 28, got %s", got[1].Date)
		}
	})

	t.Run("same month of another year is excluded", func(t *testing.T) {
		got := FilterByMonth(transactions, 2024, time.February)
		if len(got) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(got))
		}
	})

	t.Run("first instant of the month counts when the clock part is set", func(t *testing.T) {
		firstInstant := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local)
		lastInstant := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.Local)
		got := FilterByMonth([]entity.Transaction{
			tx(entity.TransactionTypeIncome, "1", firstInstant),
			tx(entity.TransactionTypeIncome, "1", lastInstant),
		}, 2025, time.April)
		if len(got) != 1 || !got[0].Date.Equal(firstInstant) {
			t.Errorf("expected only the April 1st transaction, got %v", got)
		}
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		got := FilterByMonth(nil, 2025, time.January)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})
}

func TestComputeMonthlyTotals(t *testing.T) {
	tests := []struct {
		name            string
		transactions    []entity.Transaction
		expectedIncome  string
		expectedExpense string
	}{
		{
			name:            "empty input yields zeros",
			transactions:    nil,
			expectedIncome:  "0",
			expectedExpense: "0",
		},
		{
			name: "sums by type",
			transactions: []entity.Transaction{
				tx(entity.TransactionTypeIncome, "4500", day(2025, time.January, 7)),
				tx(entity.TransactionTypeIncome, "6120.50", day(2025, time.January, 9)),
				tx(entity.TransactionTypeExpense, "3251", day(2025, time.January, 4)),
				tx(entity.TransactionTypeExpense, "4500", day(2025, time.January, 10)),
			},
			expectedIncome:  "10620.50",
			expectedExpense: "7751",
		},
		{
			name: "negative stored amount is read as its magnitude",
			transactions: []entity.Transaction{
				tx(entity.TransactionTypeExpense, "-2055", day(2025, time.January, 13)),
			},
			expectedIncome:  "0",
			expectedExpense: "2055",
		},
		{
			name: "unknown type is ignored",
			transactions: []entity.Transaction{
				tx(entity.TransactionType("transfer"), "99", day(2025, time.January, 13)),
				tx(entity.TransactionTypeIncome, "1", day(2025, time.January, 13)),
			},
			expectedIncome:  "1",
			expectedExpense: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMonthlyTotals(tt.transactions)
			if !got.TotalIncome.Equal(decimal.RequireFromString(tt.expectedIncome)) {
				t.Errorf("expected income %s, got %s", tt.expectedIncome, got.TotalIncome)
			}
			if !got.TotalExpense.Equal(decimal.RequireFromString(tt.expectedExpense)) {
				t.Errorf("expected expense %s, got %s", tt.expectedExpense, got.TotalExpense)
			}
		})
	}
}

func TestSelectMonth(t *testing.T) {
	rows := []entity.MonthlyTotals{
		{Year: 2025, Month: 1, TotalIncome: decimal.NewFromInt(10), TotalExpense: decimal.NewFromInt(5)},
		{Year: 2025, Month: 2, TotalIncome: decimal.NewFromInt(20), TotalExpense: decimal.NewFromInt(7)},
		{Year: 2025, Month: 2, TotalIncome: decimal.NewFromInt(1), TotalExpense: decimal.NewFromInt(1)},
	}

	t.Run("duplicate rows are summed", func(t *testing.T) {
		got := SelectMonth(rows, 2025, time.February)
		if !got.TotalIncome.Equal(decimal.NewFromInt(21)) || !got.TotalExpense.Equal(decimal.NewFromInt(8)) {
			t.Errorf("expected 21/8, got %s/%s", got.TotalIncome, got.TotalExpense)
		}
	})

	t.Run("missing month yields zeros", func(t *testing.T) {
		got := SelectMonth(rows, 2024, time.December)
		if got.Year != 2024 || got.Month != 12 {
			t.Errorf("expected 2024-12, got %d-%d", got.Year, got.Month)
		}
		if !got.TotalIncome.IsZero() || !got.TotalExpense.IsZero() {
			t.Errorf("expected zeros, got %s/%s", got.TotalIncome, got.TotalExpense)
		}
	})
}
