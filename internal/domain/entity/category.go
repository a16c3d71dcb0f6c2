// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// Category represents a user's income or expense category.
type Category struct {
	ID     string
	Name   string
	Type   TransactionType
	UserID string
}

// CategoryTotal is the backend's summed amount for one category.
type CategoryTotal struct {
	ID          string
	Name        string
	TotalAmount decimal.Decimal
}
