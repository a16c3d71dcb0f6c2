// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/session"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	authController   *controller.AuthController
	viewController   *controller.ViewController
	entryController  *controller.EntryController
	loginRateLimiter *middleware.RateLimiter
	sessions         *session.Store
	accessLog        bool
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	viewController *controller.ViewController,
	entryController *controller.EntryController,
	loginRateLimiter *middleware.RateLimiter,
	sessions *session.Store,
	accessLog bool,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		viewController:   viewController,
		entryController:  entryController,
		loginRateLimiter: loginRateLimiter,
		sessions:         sessions,
		accessLog:        accessLog,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Request logging goes through slog, so only recovery is taken from gin.
	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestID())
	if r.accessLog {
		r.engine.Use(middleware.AccessLog())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures API v1 routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	sessionRoutes := v1.Group("/session")
	{
		sessionRoutes.GET("", r.authController.Session)
		sessionRoutes.POST("/logout", r.authController.Logout)

		login := sessionRoutes.Group("")
		if r.loginRateLimiter != nil {
			login.Use(r.loginRateLimiter.Middleware())
		}
		login.POST("/login", r.authController.Login)
	}

	v1.POST("/users", r.authController.Register)

	// Views answer with an unauthenticated state instead of rejecting.
	views := v1.Group("/views")
	{
		views.GET("/home", r.viewController.Home)
		views.GET("/analysis", r.viewController.Analysis)
		views.GET("/categories", r.viewController.Categories)
	}

	protected := v1.Group("")
	protected.Use(middleware.RequireSession(r.sessions))
	{
		protected.PUT("/profile", r.authController.UpdateProfile)

		entries := protected.Group("/entries")
		entries.GET("/categories", r.entryController.CategoryOptions)
		entries.POST("/transactions", r.entryController.SaveTransaction)
		entries.POST("/goals", r.entryController.SaveGoal)
	}
}
