// Package session holds the single authenticated session of the companion
// and keeps it in step with durable storage.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// Storage keys of the persisted session.
const (
	TokenKey = "session.token"
	UserKey  = "session.user"
)

// Store owns the in-memory session and mirrors it to a KeyValueStore.
// Memory is always updated first; a storage failure never rolls it back.
// Mutations are serialized by writeMu so their storage writes never interleave.
type Store struct {
	kv adapter.KeyValueStore

	writeMu sync.Mutex

	mu      sync.RWMutex
	current *entity.Session
	loading bool
}

// NewStore creates a new Store backed by the given key-value storage.
func NewStore(kv adapter.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Login replaces the active session and persists both keys.
// When either write fails both keys are removed, so storage never pairs
// a token with another user's profile.
func (s *Store) Login(ctx context.Context, token string, user entity.UserProfile) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	sess := &entity.Session{Token: token, User: user}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		s.discardPersisted(ctx)
		return domainerror.NewPersistenceError(domainerror.ErrCodeSessionWrite, domainerror.ErrSessionWrite.Error(), TokenKey, err)
	}
	if err := s.writeUser(ctx, user); err != nil {
		s.discardPersisted(ctx)
		return err
	}
	return nil
}

// discardPersisted is best effort; the write error is what gets reported.
func (s *Store) discardPersisted(ctx context.Context) {
	_ = s.kv.Delete(ctx, TokenKey, UserKey)
}

// Logout clears the session and removes both persisted keys.
// Calling it without an active session is not an error.
func (s *Store) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, TokenKey, UserKey); err != nil {
		return domainerror.NewPersistenceError(domainerror.ErrCodeSessionDelete, domainerror.ErrSessionDelete.Error(), "", err)
	}
	return nil
}

// Restore loads a previously persisted session, if any.
// Partial or corrupt data, including a profile without an id, leaves the session empty without an error;
// only an unreadable storage is reported.
func (s *Store) Restore(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	sess, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.current = sess
	return err
}

func (s *Store) read(ctx context.Context) (*entity.Session, error) {
	token, found, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, domainerror.NewPersistenceError(domainerror.ErrCodeSessionRead, domainerror.ErrSessionRead.Error(), TokenKey, err)
	}
	if !found || token == "" {
		return nil, nil
	}

	raw, found, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return nil, domainerror.NewPersistenceError(domainerror.ErrCodeSessionRead, domainerror.ErrSessionRead.Error(), UserKey, err)
	}
	if !found {
		return nil, nil
	}

	var user entity.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return nil, nil
	}
	if user.Gender == "" || !user.Gender.IsValid() {
		user.Gender = entity.GenderUnknown
	}

	return &entity.Session{Token: token, User: user}, nil
}

// UpdateProfile replaces the stored profile of the active session as a whole.
func (s *Store) UpdateProfile(ctx context.Context, user entity.UserProfile) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domainerror.ErrNoActiveSession
	}
	s.current = &entity.Session{Token: s.current.Token, User: user}
	s.mu.Unlock()

	return s.writeUser(ctx, user)
}

func (s *Store) writeUser(ctx context.Context, user entity.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return domainerror.NewPersistenceError(domainerror.ErrCodeSessionWrite, domainerror.ErrSessionWrite.Error(), UserKey, err)
	}
	if err := s.kv.Set(ctx, UserKey, string(raw)); err != nil {
		return domainerror.NewPersistenceError(domainerror.ErrCodeSessionWrite, domainerror.ErrSessionWrite.Error(), UserKey, err)
	}
	return nil
}

// Current returns a copy of the active session.
func (s *Store) Current() (entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return entity.Session{}, false
	}
	return *s.current, true
}

// UserID returns the id of the logged in user.
func (s *Store) UserID() (string, bool) {
	sess, ok := s.Current()
	if !ok || sess.User.ID == "" {
		return "", false
	}
	return sess.User.ID, true
}

// Token returns the bearer token of the active session.
func (s *Store) Token() (string, bool) {
	sess, ok := s.Current()
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// Loading reports whether a restore is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
