package dependency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.AccessLog = false
	cfg.Session.Driver = driver
	cfg.Session.SQLitePath = filepath.Join(t.TempDir(), "companion.db")
	cfg.Ledger.BaseURL = "http://127.0.0.1:1"
	cfg.Ledger.Timeout = time.Second
	return cfg
}

func TestOpenSessionStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name   string
		driver string
		setup  func(cfg *config.Config)
	}{
		{name: "sqlite", driver: config.SessionDriverSQLite},
		{name: "memory", driver: config.SessionDriverMemory},
		{
			name:   "redis",
			driver: config.SessionDriverRedis,
			setup: func(cfg *config.Config) {
				cfg.Redis.URL = "redis://" + mr.Addr() + "/0"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.driver)
			if tt.setup != nil {
				tt.setup(cfg)
			}

			storage, err := OpenSessionStorage(cfg)
			if err != nil {
				t.Fatalf("failed to open storage: %v", err)
			}
			t.Cleanup(func() { _ = storage.Close() })

			if storage.Driver != tt.driver {
				t.Errorf("expected driver %s, got %s", tt.driver, storage.Driver)
			}
			if !storage.HealthCheck() {
				t.Error("expected healthy storage")
			}

			ctx := context.Background()
			if err := storage.Store.Set(ctx, "k", "v"); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			value, ok, err := storage.Store.Get(ctx, "k")
			if err != nil || !ok || value != "v" {
				t.Errorf("expected stored value, got %q %v %v", value, ok, err)
			}
		})
	}
}

func TestOpenSessionStorage_UnknownDriver(t *testing.T) {
	if _, err := OpenSessionStorage(testConfig(t, "etcd")); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestNewInjector_RestoresAcrossInstances(t *testing.T) {
	cfg := testConfig(t, config.SessionDriverSQLite)
	storage, err := OpenSessionStorage(cfg)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	first, err := NewInjector(cfg, storage, nil)
	if err != nil {
		t.Fatalf("failed to wire: %v", err)
	}
	user := entity.UserProfile{ID: "42", FullName: "Ayşe", Gender: entity.GenderFemale}
	if err := first.Sessions.Login(context.Background(), "tok", user); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second, err := NewInjector(cfg, storage, nil)
	if err != nil {
		t.Fatalf("failed to wire: %v", err)
	}
	if err := second.Sessions.Restore(context.Background()); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if id, ok := second.Sessions.UserID(); !ok || id != "42" {
		t.Errorf("expected restored user 42, got %q", id)
	}

	engine := second.Router.Setup(cfg.Server.Environment)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", w.Code)
	}
}

func TestNewInjector_RejectsInvalidLedgerURL(t *testing.T) {
	cfg := testConfig(t, config.SessionDriverMemory)
	cfg.Ledger.BaseURL = "not a url"
	storage, err := OpenSessionStorage(cfg)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}

	if _, err := NewInjector(cfg, storage, nil); err == nil {
		t.Error("expected error for invalid ledger url")
	}
}
