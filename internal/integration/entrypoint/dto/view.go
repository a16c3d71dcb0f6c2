package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/usecase/view"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// HomeResponse represents the home screen view model.
type HomeResponse struct {
	State   string               `json:"state"`
	Message string               `json:"message,omitempty"`
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	Totals  entity.MonthlyTotals `json:"totals"`
	Balance decimal.Decimal      `json:"balance"`
	Budget  entity.BudgetStatus  `json:"budget"`
	Applied bool                 `json:"applied"`
}

// AnalysisResponse represents the analysis screen view model.
type AnalysisResponse struct {
	State   string                `json:"state"`
	Message string                `json:"message,omitempty"`
	Type    string                `json:"type"`
	Year    int                   `json:"year"`
	Month   int                   `json:"month"`
	Totals  entity.MonthlyTotals  `json:"totals"`
	Series  entity.DailySeries    `json:"series"`
	Recent  []TransactionResponse `json:"recent"`
	Applied bool                  `json:"applied"`
}

// CategoriesResponse represents the category breakdown view model.
type CategoriesResponse struct {
	State     string                          `json:"state"`
	Message   string                          `json:"message,omitempty"`
	Type      string                          `json:"type"`
	Breakdown []entity.CategoryBreakdownEntry `json:"breakdown"`
	Total     decimal.Decimal                 `json:"total"`
	Applied   bool                            `json:"applied"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		CategoryID:  tx.CategoryID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Date:        entity.FormatDate(tx.Date),
		Description: tx.Description,
	}
}

// ToHomeResponse converts a home view to its response DTO.
func ToHomeResponse(v *view.HomeView, applied bool) HomeResponse {
	return HomeResponse{
		State:   string(v.State),
		Message: v.Message,
		Year:    v.Year,
		Month:   int(v.Month),
		Totals:  v.Totals,
		Balance: v.Balance,
		Budget:  v.Budget,
		Applied: applied,
	}
}

// ToAnalysisResponse converts an analysis view to its response DTO.
func ToAnalysisResponse(v *view.AnalysisView, applied bool) AnalysisResponse {
	recent := make([]TransactionResponse, len(v.Recent))
	for i, tx := range v.Recent {
		recent[i] = ToTransactionResponse(tx)
	}
	series := v.Series
	if series.Labels == nil {
		series = entity.DailySeries{Labels: []string{}, Values: []decimal.Decimal{}}
	}
	return AnalysisResponse{
		State:   string(v.State),
		Message: v.Message,
		Type:    string(v.Type),
		Year:    v.Year,
		Month:   int(v.Month),
		Totals:  v.Totals,
		Series:  series,
		Recent:  recent,
		Applied: applied,
	}
}

// ToCategoriesResponse converts a categories view to its response DTO.
func ToCategoriesResponse(v *view.CategoriesView, applied bool) CategoriesResponse {
	return CategoriesResponse{
		State:     string(v.State),
		Message:   v.Message,
		Type:      string(v.Type),
		Breakdown: v.Breakdown,
		Total:     v.Total,
		Applied:   applied,
	}
}
