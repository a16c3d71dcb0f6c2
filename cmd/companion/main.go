// Package main is the entry point for the Finance Tracker companion service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Finance Tracker companion",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"ledger", cfg.Ledger.BaseURL,
		"session_store", cfg.Session.Driver,
	)

	storage, err := dependency.OpenSessionStorage(cfg)
	if err != nil {
		slog.Error("Failed to open session storage", "driver", cfg.Session.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.Error("Failed to close session storage", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, storage, nil)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	// A failed restore leaves the user logged out.
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 5*time.Second)
	if err := injector.Sessions.Restore(restoreCtx); err != nil {
		slog.Warn("Session restore failed, starting logged out", "error", err)
	} else if userID, ok := injector.Sessions.UserID(); ok {
		slog.Info("Session restored", "user_id", userID)
	}
	cancelRestore()

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Expired login windows are dropped once per window.
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go injector.LoginRateLimiter.RunCleanup(cleanupCtx, cfg.Ledger.LoginWindow)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		slog.Error("Server failed to start", "error", err)
		return
	}

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
