// Package entry contains the use cases behind the entry form.
package entry

import (
	"context"
	"strings"
	"sync"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/application/tracker"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

const categoryOptionsKey = "entry.categories"

// CategoryOptionsOutput is the category list offered for one entry mode.
type CategoryOptionsOutput struct {
	Mode       entity.EntryMode
	Categories []entity.Category
	// Applied is false when a newer mode switch superseded this request.
	Applied bool
}

// CategoryOptionsUseCase loads the categories selectable in the entry form.
// Switching modes while a fetch is in flight never publishes the older list.
type CategoryOptionsUseCase struct {
	ledger   adapter.LedgerClient
	sessions *session.Store
	requests *tracker.RequestTracker

	mu      sync.RWMutex
	current *CategoryOptionsOutput
}

// NewCategoryOptionsUseCase creates a new CategoryOptionsUseCase instance.
func NewCategoryOptionsUseCase(ledger adapter.LedgerClient, sessions *session.Store, requests *tracker.RequestTracker) *CategoryOptionsUseCase {
	return &CategoryOptionsUseCase{
		ledger:   ledger,
		sessions: sessions,
		requests: requests,
	}
}

// Execute fetches the categories for mode and publishes them if still current.
func (uc *CategoryOptionsUseCase) Execute(ctx context.Context, mode string) (*CategoryOptionsOutput, error) {
	entryMode := entity.EntryMode(strings.ToLower(strings.TrimSpace(mode)))
	if !entryMode.IsValid() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidEntryMode, "mode", validationFailed, domainerror.ErrInvalidEntryMode)
	}

	userID, ok := uc.sessions.UserID()
	if !ok {
		return nil, domainerror.ErrNoActiveSession
	}

	ticket := uc.requests.Begin(categoryOptionsKey)

	categoryType := entryMode.CategoryType()
	totals, err := uc.ledger.GetCategoriesByTypeAndUser(ctx, categoryType, userID)
	if err != nil {
		// The previous mode's list must not outlive a failed switch.
		uc.requests.Commit(ticket, func() {
			uc.publish(&CategoryOptionsOutput{Mode: entryMode, Categories: []entity.Category{}, Applied: true})
		})
		return nil, err
	}

	categories := make([]entity.Category, len(totals))
	for i, total := range totals {
		categories[i] = entity.Category{
			ID:     total.ID,
			Name:   total.Name,
			Type:   categoryType,
			UserID: userID,
		}
	}

	output := &CategoryOptionsOutput{
		Mode:       entryMode,
		Categories: categories,
	}
	output.Applied = uc.requests.Commit(ticket, func() {
		published := *output
		published.Applied = true
		uc.publish(&published)
	})
	return output, nil
}

func (uc *CategoryOptionsUseCase) publish(output *CategoryOptionsOutput) {
	uc.mu.Lock()
	uc.current = output
	uc.mu.Unlock()
}

// Current returns the last published option list.
func (uc *CategoryOptionsUseCase) Current() (*CategoryOptionsOutput, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current, uc.current != nil
}
