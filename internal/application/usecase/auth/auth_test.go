package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// fakeLedger embeds the interface so only the calls under test need bodies.
type fakeLedger struct {
	adapter.LedgerClient

	loginResult *adapter.LoginResult
	loginErr    error
	loginCalls  int

	registered  []adapter.Registration
	registerErr error

	patches   []adapter.ProfilePatch
	updateErr error

	user       *entity.UserProfile
	getUserErr error
}

func (f *fakeLedger) Login(_ context.Context, _, _ string) (*adapter.LoginResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeLedger) Register(_ context.Context, reg adapter.Registration) error {
	f.registered = append(f.registered, reg)
	return f.registerErr
}

func (f *fakeLedger) UpdateUser(_ context.Context, _ string, patch adapter.ProfilePatch) error {
	f.patches = append(f.patches, patch)
	return f.updateErr
}

func (f *fakeLedger) GetUser(_ context.Context, _ string) (*entity.UserProfile, error) {
	return f.user, f.getUserErr
}

type fakeKV struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

var jane = entity.UserProfile{ID: "42", FullName: "Jane", Email: "jane@example.com", Gender: entity.GenderFemale}

func TestLoginUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("blank credentials never reach the backend", func(t *testing.T) {
		ledger := &fakeLedger{}
		uc := NewLoginUserUseCase(ledger, session.NewStore(newFakeKV()))

		_, err := uc.Execute(ctx, LoginUserInput{Email: "  ", Password: "pw"})

		var validationErr *domainerror.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ledger.loginCalls != 0 {
			t.Errorf("expected no backend call, got %d", ledger.loginCalls)
		}
	})

	t.Run("rejection is surfaced verbatim and no session starts", func(t *testing.T) {
		rejection := domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "wrong password", domainerror.ErrInvalidCredentials)
		store := session.NewStore(newFakeKV())
		uc := NewLoginUserUseCase(&fakeLedger{loginErr: rejection}, store)

		_, err := uc.Execute(ctx, LoginUserInput{Email: "jane@example.com", Password: "bad"})

		if err != rejection {
			t.Errorf("expected the backend rejection, got %v", err)
		}
		if _, ok := store.Current(); ok {
			t.Error("expected no session")
		}
	})

	t.Run("success starts and persists the session", func(t *testing.T) {
		kv := newFakeKV()
		store := session.NewStore(kv)
		uc := NewLoginUserUseCase(&fakeLedger{loginResult: &adapter.LoginResult{Token: "tok", User: jane}}, store)

		output, err := uc.Execute(ctx, LoginUserInput{Email: "jane@example.com", Password: "pw"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User != jane || output.PersistenceWarning != nil {
			t.Errorf("unexpected output: %+v", output)
		}
		if kv.values[session.TokenKey] != "tok" {
			t.Errorf("expected token persisted, got %q", kv.values[session.TokenKey])
		}
	})

	t.Run("storage failure is a warning next to a successful login", func(t *testing.T) {
		kv := newFakeKV()
		kv.setErr = errors.New("read-only filesystem")
		store := session.NewStore(kv)
		uc := NewLoginUserUseCase(&fakeLedger{loginResult: &adapter.LoginResult{Token: "tok", User: jane}}, store)

		output, err := uc.Execute(ctx, LoginUserInput{Email: "jane@example.com", Password: "pw"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var persistenceErr *domainerror.PersistenceError
		if !errors.As(output.PersistenceWarning, &persistenceErr) {
			t.Errorf("expected PersistenceError warning, got %v", output.PersistenceWarning)
		}
		if id, ok := store.UserID(); !ok || id != "42" {
			t.Error("expected in-memory session to be active")
		}
	})
}

func TestLogoutUserUseCase(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := session.NewStore(kv)
	_ = store.Login(ctx, "tok", jane)

	output := NewLogoutUserUseCase(store).Execute(ctx)

	if output.PersistenceWarning != nil {
		t.Errorf("unexpected warning: %v", output.PersistenceWarning)
	}
	if _, ok := store.Current(); ok {
		t.Error("expected session to be cleared")
	}
	if len(kv.values) != 0 {
		t.Errorf("expected storage cleared, got %v", kv.values)
	}
}

func TestRegisterUserUseCase(t *testing.T) {
	tests := []struct {
		name         string
		input        RegisterUserInput
		expectedCode domainerror.ValidationErrorCode
		expectCall   bool
	}{
		{
			name:         "missing name",
			input:        RegisterUserInput{Email: "a@b.c", Password: "pw"},
			expectedCode: domainerror.ErrCodeMissingName,
		},
		{
			name:         "missing password",
			input:        RegisterUserInput{FullName: "A", Email: "a@b.c"},
			expectedCode: domainerror.ErrCodeMissingCredentials,
		},
		{
			name:         "unknown gender value",
			input:        RegisterUserInput{FullName: "A", Email: "a@b.c", Password: "pw", Gender: "robot"},
			expectedCode: domainerror.ErrCodeInvalidGender,
		},
		{
			name:       "valid registration without gender",
			input:      RegisterUserInput{FullName: " A ", Email: "a@b.c", Password: "pw"},
			expectCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}
			err := NewRegisterUserUseCase(ledger).Execute(context.Background(), tt.input)

			if tt.expectCall {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(ledger.registered) != 1 {
					t.Fatalf("expected one registration, got %d", len(ledger.registered))
				}
				reg := ledger.registered[0]
				if reg.FullName != "A" || reg.Gender != entity.GenderUnknown {
					t.Errorf("unexpected registration: %+v", reg)
				}
				return
			}

			var validationErr *domainerror.ValidationError
			if !errors.As(err, &validationErr) || validationErr.Code != tt.expectedCode {
				t.Errorf("expected validation code %s, got %v", tt.expectedCode, err)
			}
			if len(ledger.registered) != 0 {
				t.Error("expected no backend call")
			}
		})
	}
}

func TestUpdateProfileUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a session", func(t *testing.T) {
		uc := NewUpdateProfileUseCase(&fakeLedger{}, session.NewStore(newFakeKV()))
		_, err := uc.Execute(ctx, UpdateProfileInput{FullName: "X"})
		if !errors.Is(err, domainerror.ErrNoActiveSession) {
			t.Errorf("expected ErrNoActiveSession, got %v", err)
		}
	})

	t.Run("re-fetched profile replaces the session profile", func(t *testing.T) {
		store := session.NewStore(newFakeKV())
		_ = store.Login(ctx, "tok", jane)
		fetched := &entity.UserProfile{ID: "42", FullName: "Jane Smith", Email: "js@example.com", Gender: entity.GenderFemale}
		ledger := &fakeLedger{user: fetched}

		output, err := NewUpdateProfileUseCase(ledger, store).Execute(ctx, UpdateProfileInput{FullName: "Jane Smith", Email: "js@example.com", Gender: entity.GenderFemale})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User != *fetched {
			t.Errorf("expected fetched profile, got %+v", output.User)
		}
		sess, _ := store.Current()
		if sess.User != *fetched || sess.Token != "tok" {
			t.Errorf("unexpected session: %+v", sess)
		}
	})

	t.Run("failed re-fetch falls back to the submitted profile", func(t *testing.T) {
		store := session.NewStore(newFakeKV())
		_ = store.Login(ctx, "tok", jane)
		ledger := &fakeLedger{getUserErr: errors.New("timeout")}

		output, err := NewUpdateProfileUseCase(ledger, store).Execute(ctx, UpdateProfileInput{FullName: "New", Phone: "555"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := entity.UserProfile{ID: "42", FullName: "New", Phone: "555", Gender: entity.GenderUnknown}
		if output.User != expected {
			t.Errorf("expected %+v, got %+v", expected, output.User)
		}
	})

	t.Run("backend failure leaves the session untouched", func(t *testing.T) {
		store := session.NewStore(newFakeKV())
		_ = store.Login(ctx, "tok", jane)
		failure := domainerror.NewNetworkError(domainerror.ErrCodeLedgerUnavailable, "update user", 503, domainerror.ErrLedgerUnavailable)

		_, err := NewUpdateProfileUseCase(&fakeLedger{updateErr: failure}, store).Execute(ctx, UpdateProfileInput{FullName: "New"})
		if !errors.Is(err, domainerror.ErrLedgerUnavailable) {
			t.Errorf("expected network error, got %v", err)
		}
		sess, _ := store.Current()
		if sess.User != jane {
			t.Errorf("expected profile unchanged, got %+v", sess.User)
		}
	})
}

type fakeInspector struct {
	claims *adapter.TokenClaims
	err    error
}

func (f fakeInspector) Inspect(string) (*adapter.TokenClaims, error) {
	return f.claims, f.err
}

func TestGetSessionUseCase(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("logged out", func(t *testing.T) {
		output := NewGetSessionUseCase(session.NewStore(newFakeKV()), fakeInspector{}).Execute()
		if output.Authenticated || output.User != nil {
			t.Errorf("expected anonymous status, got %+v", output)
		}
	})

	t.Run("expired token is reported but the session stays", func(t *testing.T) {
		store := session.NewStore(newFakeKV())
		_ = store.Login(ctx, "tok", jane)
		expiry := now.Add(-time.Minute)

		uc := NewGetSessionUseCase(store, fakeInspector{claims: &adapter.TokenClaims{Subject: "42", ExpiresAt: &expiry}})
		uc.now = func() time.Time { return now }
		output := uc.Execute()

		if !output.Authenticated || !output.Expired {
			t.Errorf("expected authenticated and expired, got %+v", output)
		}
		if output.User == nil || output.User.ID != "42" {
			t.Errorf("expected user 42, got %+v", output.User)
		}
	})

	t.Run("opaque token has no expiry", func(t *testing.T) {
		store := session.NewStore(newFakeKV())
		_ = store.Login(ctx, "opaque", jane)

		output := NewGetSessionUseCase(store, fakeInspector{err: errors.New("not a jwt")}).Execute()
		if !output.Authenticated || output.ExpiresAt != nil || output.Expired {
			t.Errorf("unexpected status: %+v", output)
		}
	})
}
