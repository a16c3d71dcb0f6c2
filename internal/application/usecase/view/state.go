// Package view assembles the per-screen view models from fresh ledger snapshots.
// Every load resolves the user, fetches, aggregates and then replaces the
// previous state of its screen as a whole.
package view

import (
	"errors"
	"sync"

	"github.com/finance-tracker/companion/internal/application/tracker"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// State tells the presentation layer what to render.
type State string

const (
	StateReady           State = "ready"
	StateUnauthenticated State = "unauthenticated"
	StateEmpty           State = "empty"
	StateError           State = "error"
)

// Tracker keys, one per screen.
const (
	homeKey       = "view.home"
	analysisKey   = "view.analysis"
	categoriesKey = "view.categories"
)

// ErrUnauthenticated is returned alongside an unauthenticated view.
var ErrUnauthenticated = domainerror.ErrNoActiveSession

// slot holds the published view of one screen.
type slot[T any] struct {
	mu      sync.RWMutex
	current *T
}

func (s *slot[T]) get() (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

func (s *slot[T]) set(v *T) {
	s.mu.Lock()
	s.current = v
	s.mu.Unlock()
}

// publish replaces the screen's state if ticket is still the latest request.
func publish[T any](requests *tracker.RequestTracker, ticket tracker.Ticket, s *slot[T], v *T) bool {
	return requests.Commit(ticket, func() {
		s.set(v)
	})
}

// errorMessage renders a fetch failure for the error state.
func errorMessage(err error) string {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}
