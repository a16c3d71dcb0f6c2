// Package entity defines the core business entities for the domain layer.
package entity

// EntryMode selects what the entry form records.
type EntryMode string

const (
	EntryModeIncome  EntryMode = "income"
	EntryModeExpense EntryMode = "expense"
	EntryModeGoal    EntryMode = "goal"
)

// IsValid reports whether m is one of the known entry modes.
func (m EntryMode) IsValid() bool {
	return m == EntryModeIncome || m == EntryModeExpense || m == EntryModeGoal
}

// CategoryType returns the category type offered in this mode.
// Goals are budget ceilings on spending, so they use expense categories.
func (m EntryMode) CategoryType() TransactionType {
	if m == EntryModeIncome {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}
