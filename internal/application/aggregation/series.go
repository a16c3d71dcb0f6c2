package aggregation

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// GroupByDay buckets transactions by day of month and sums each bucket.
// Buckets come back sorted by day number; days without records are omitted.
func GroupByDay(transactions []entity.Transaction) entity.DailySeries {
	buckets := make(map[int]decimal.Decimal)
	for _, tx := range transactions {
		day := tx.Date.Day()
		if sum, ok := buckets[day]; ok {
			buckets[day] = sum.Add(amountOf(tx))
		} else {
			buckets[day] = amountOf(tx)
		}
	}

	days := make([]int, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Ints(days)

	series := entity.DailySeries{
		Labels: make([]string, 0, len(days)),
		Values: make([]decimal.Decimal, 0, len(days)),
	}
	for _, day := range days {
		series.Labels = append(series.Labels, strconv.Itoa(day))
		series.Values = append(series.Values, buckets[day])
	}

	return series
}

// RecentTransactions returns up to limit transactions, newest date first.
// Records sharing a date keep their input order. A limit <= 0 returns all of them.
func RecentTransactions(transactions []entity.Transaction, limit int) []entity.Transaction {
	recent := make([]entity.Transaction, len(transactions))
	copy(recent, transactions)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
