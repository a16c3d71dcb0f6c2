// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/infra/dependency"
	"github.com/finance-tracker/companion/internal/integration/persistence"
	"github.com/finance-tracker/companion/internal/integration/persistence/model"
	"github.com/finance-tracker/companion/test/integration/mock"
)

// sessionTable is the table holding persisted session entries.
const sessionTable = "session_entries"

// TestContext holds the test state for each scenario.
type TestContext struct {
	cfg *config.Config

	// Fakes
	ledger *mock.LedgerMock
	db     *mock.Db
	redis  *mock.Redis

	// Companion under test
	storage  *dependency.SessionStorage
	injector *dependency.Injector
	server   *httptest.Server

	// Request building
	requestHeaders map[string]string

	// Last response
	response     *http.Response
	responseBody []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Server.AccessLog = false
		cfg.Session.Driver = config.SessionDriverSQLite
		cfg.Ledger.Timeout = 5 * time.Second
		cfg.Ledger.RecentLimit = 10
		cfg.Ledger.LoginLimit = 0

		tc := &TestContext{
			cfg:            cfg,
			ledger:         mock.NewLedgerMock(),
			requestHeaders: make(map[string]string),
		}
		tc.ledger.Start()
		tc.cfg.Ledger.BaseURL = tc.ledger.GetUrl()

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.shutdown()
		}
		return ctx, nil
	})

	registerCompanionSteps(ctx)
	registerLedgerSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// boot starts the companion on the configured storage and restores the session.
func (tc *TestContext) boot() error {
	if tc.storage == nil {
		storage, err := tc.openStorage()
		if err != nil {
			return err
		}
		tc.storage = storage
	}

	injector, err := dependency.NewInjector(tc.cfg, tc.storage, nil)
	if err != nil {
		return err
	}
	if err := injector.Sessions.Restore(context.Background()); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	tc.injector = injector
	tc.server = httptest.NewServer(injector.Router.Setup(tc.cfg.Server.Environment))
	return nil
}

// restart stops the HTTP server and boots a fresh companion on the same storage.
func (tc *TestContext) restart() error {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	return tc.boot()
}

func (tc *TestContext) openStorage() (*dependency.SessionStorage, error) {
	switch tc.cfg.Session.Driver {
	case config.SessionDriverSQLite:
		tc.db = mock.NewDb(map[string]any{
			sessionTable: &model.SessionEntryModel{},
		})
		return &dependency.SessionStorage{
			Driver:      config.SessionDriverSQLite,
			Store:       persistence.NewSessionEntryRepository(tc.db.DbConn),
			HealthCheck: func() bool { return true },
		}, nil

	case config.SessionDriverRedis:
		tc.redis = mock.NewRedis()
		return &dependency.SessionStorage{
			Driver:      config.SessionDriverRedis,
			Store:       persistence.NewRedisStore(tc.redis.Client, tc.cfg.Redis.KeyPrefix),
			HealthCheck: func() bool { return true },
		}, nil

	case config.SessionDriverMemory:
		return &dependency.SessionStorage{
			Driver:      config.SessionDriverMemory,
			Store:       persistence.NewMemoryStore(),
			HealthCheck: func() bool { return true },
		}, nil
	}
	return nil, fmt.Errorf("unsupported session store %q", tc.cfg.Session.Driver)
}

// storedEntries counts the persisted session entries.
func (tc *TestContext) storedEntries() (int, error) {
	switch {
	case tc.db != nil:
		count, err := tc.db.Count(sessionTable)
		return int(count), err
	case tc.redis != nil:
		return len(tc.redis.Keys()), nil
	}
	return 0, fmt.Errorf("session store %q cannot be inspected", tc.cfg.Session.Driver)
}

func (tc *TestContext) shutdown() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.db != nil {
		_ = tc.db.Close()
	}
	if tc.redis != nil {
		tc.redis.Close()
	}
	tc.ledger.Close()
}

// send performs a request against the companion and keeps the response.
func (tc *TestContext) send(method, endpoint string, body io.Reader) error {
	if tc.server == nil {
		return fmt.Errorf("companion is not running")
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}
