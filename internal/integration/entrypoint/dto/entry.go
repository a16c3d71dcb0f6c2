package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// SaveTransactionRequest represents the request body for recording an income or expense.
// Amount is kept as text so that blank and malformed values reach validation.
type SaveTransactionRequest struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"category_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// SaveGoalRequest represents the request body for recording a goal.
type SaveGoalRequest struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"category_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// GoalResponse represents a goal in API responses.
type GoalResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Description string          `json:"description"`
}

// ToGoalResponse converts a domain Goal to a GoalResponse DTO.
func ToGoalResponse(goal entity.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		CategoryID:  goal.CategoryID,
		Amount:      goal.Amount,
		StartDate:   entity.FormatDate(goal.StartDate),
		EndDate:     entity.FormatDate(goal.EndDate),
		Description: goal.Description,
	}
}

// CategoryOptionResponse represents one selectable category.
type CategoryOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryOptionsResponse represents the categories offered for an entry mode.
type CategoryOptionsResponse struct {
	Mode       string                   `json:"mode"`
	Categories []CategoryOptionResponse `json:"categories"`
	Applied    bool                     `json:"applied"`
}

// ToCategoryOptionsResponse converts category options to their response DTO.
func ToCategoryOptionsResponse(mode entity.EntryMode, categories []entity.Category, applied bool) CategoryOptionsResponse {
	options := make([]CategoryOptionResponse, len(categories))
	for i, c := range categories {
		options[i] = CategoryOptionResponse{ID: c.ID, Name: c.Name, Type: string(c.Type)}
	}
	return CategoryOptionsResponse{
		Mode:       string(mode),
		Categories: options,
		Applied:    applied,
	}
}
