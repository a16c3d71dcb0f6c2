// Package entry contains the use cases behind the entry form.
package entry

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

const validationFailed = "validation failed"

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domainerror.NewValidationError(domainerror.ErrCodeMissingAmount, "amount", validationFailed, domainerror.ErrMissingAmount)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, "amount", validationFailed, domainerror.ErrInvalidAmount)
	}
	return amount, nil
}

func requireCategory(categoryID string) (string, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return "", domainerror.NewValidationError(domainerror.ErrCodeMissingCategory, "category_id", validationFailed, domainerror.ErrMissingCategory)
	}
	return categoryID, nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domainerror.NewValidationError(domainerror.ErrCodeMissingDate, field, validationFailed, domainerror.ErrMissingDate)
	}
	date, err := time.ParseInLocation(entity.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, domainerror.NewValidationError(domainerror.ErrCodeInvalidDate, field, validationFailed, domainerror.ErrInvalidDateFormat)
	}
	return date, nil
}
