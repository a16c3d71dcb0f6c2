// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"net/http"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/application/tracker"
	"github.com/finance-tracker/companion/internal/application/usecase/auth"
	"github.com/finance-tracker/companion/internal/application/usecase/entry"
	"github.com/finance-tracker/companion/internal/application/usecase/view"
	"github.com/finance-tracker/companion/internal/infra/server/router"
	"github.com/finance-tracker/companion/internal/integration/adapters"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/companion/internal/integration/ledger"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Storage  *SessionStorage
	Sessions *session.Store
	Router   *router.Router

	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil httpClient gets one with the configured ledger timeout.
func NewInjector(cfg *config.Config, storage *SessionStorage, httpClient *http.Client) (*Injector, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Ledger.Timeout}
	}

	sessions := session.NewStore(storage.Store)

	ledgerClient, err := ledger.NewClient(httpClient, cfg.Ledger.BaseURL, sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger client: %w", err)
	}
	tokenInspector := adapters.NewTokenInspector()
	requests := tracker.NewRequestTracker()

	// Create auth use cases
	getSessionUseCase := auth.NewGetSessionUseCase(sessions, tokenInspector)
	loginUseCase := auth.NewLoginUserUseCase(ledgerClient, sessions)
	logoutUseCase := auth.NewLogoutUserUseCase(sessions)
	registerUseCase := auth.NewRegisterUserUseCase(ledgerClient)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(ledgerClient, sessions)

	// Create view assemblers
	homeAssembler := view.NewHomeAssembler(ledgerClient, sessions, requests)
	analysisAssembler := view.NewAnalysisAssembler(ledgerClient, sessions, requests, cfg.Ledger.RecentLimit)
	categoriesAssembler := view.NewCategoriesAssembler(ledgerClient, sessions, requests)

	// Create entry use cases
	categoryOptionsUseCase := entry.NewCategoryOptionsUseCase(ledgerClient, sessions, requests)
	saveTransactionUseCase := entry.NewSaveTransactionUseCase(ledgerClient, sessions)
	saveGoalUseCase := entry.NewSaveGoalUseCase(ledgerClient, sessions)

	// Create controllers
	healthController := controller.NewHealthController(storage.Driver, storage.HealthCheck, sessions.Loading)
	authController := controller.NewAuthController(
		getSessionUseCase,
		loginUseCase,
		logoutUseCase,
		registerUseCase,
		updateProfileUseCase,
	)
	viewController := controller.NewViewController(homeAssembler, analysisAssembler, categoriesAssembler)
	entryController := controller.NewEntryController(categoryOptionsUseCase, saveTransactionUseCase, saveGoalUseCase)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(cfg.Ledger.LoginLimit, cfg.Ledger.LoginWindow)

	r := router.NewRouter(
		healthController,
		authController,
		viewController,
		entryController,
		loginRateLimiter,
		sessions,
		cfg.Server.AccessLog,
	)

	return &Injector{
		Config:   cfg,
		Storage:  storage,
		Sessions: sessions,
		Router:   r,

		LoginRateLimiter: loginRateLimiter,
	}, nil
}
