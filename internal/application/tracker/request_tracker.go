// Package tracker keeps track of in-flight screen loads so that only the
// latest request for a screen may publish its result.
package tracker

import "sync"

// Ticket identifies one started request.
type Ticket struct {
	Key      string
	Sequence uint64
}

// RequestTracker hands out monotonically increasing tickets per key.
type RequestTracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewRequestTracker creates a new in-memory request tracker.
func NewRequestTracker() *RequestTracker {
	return &RequestTracker{
		latest: make(map[string]uint64),
	}
}

// Begin starts a request for key, superseding every earlier one.
func (t *RequestTracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[key]++
	return Ticket{Key: key, Sequence: t.latest[key]}
}

// Commit runs apply only if ticket is still the latest for its key.
// The check and apply happen under one lock, so a newer request cannot
// slip in between. It reports whether apply ran.
func (t *RequestTracker) Commit(ticket Ticket, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest[ticket.Key] != ticket.Sequence {
		return false
	}
	apply()
	return true
}
