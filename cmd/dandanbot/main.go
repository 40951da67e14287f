// Dandanbot collects dental clinic work experiences through a Telegram
// questionnaire and serves per-province clinic ratings back to users.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dandanapp/dandanbot/pkg/api"
	"github.com/dandanapp/dandanbot/pkg/config"
	"github.com/dandanapp/dandanbot/pkg/conversation"
	"github.com/dandanapp/dandanbot/pkg/database"
	"github.com/dandanapp/dandanbot/pkg/services"
	"github.com/dandanapp/dandanbot/pkg/telegram"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env if present; a real environment wins over the file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file, continuing with existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	opts, err := config.LoadOptions()
	if err != nil {
		slog.Error("Failed to load option lists", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load database config", "error", err)
		os.Exit(1)
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			slog.Error("Error closing database client", "error", err)
		}
	}()
	slog.Info("Connected to PostgreSQL database")

	clinicService := services.NewClinicService(dbClient.DB())
	experienceService := services.NewExperienceService(dbClient.DB())

	sessions := conversation.NewManager()
	dispatcher := conversation.NewDispatcher(sessions, clinicService, experienceService, opts)
	slog.Info("Services initialized", "provinces", len(opts.Provinces))

	botService, err := telegram.NewService(telegram.ServiceConfig{
		Token:       cfg.BotToken,
		PollTimeout: cfg.PollTimeout,
		Debug:       cfg.Debug,
	}, dispatcher)
	if err != nil {
		slog.Error("Failed to initialize Telegram client", "error", err)
		os.Exit(1)
	}
	slog.Info("Telegram client initialized", "bot", botService.Username())

	// Health server (non-blocking)
	httpServer := api.NewServer(dbClient)
	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.HTTPPort
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	// Update loop (non-blocking)
	runCtx, stopPolling := context.WithCancel(ctx)
	pollingDone := make(chan struct{})
	go func() {
		botService.Run(runCtx)
		close(pollingDone)
	}()

	slog.Info("Dandanbot started")

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// Stop polling first so no new events arrive mid-shutdown
	stopPolling()
	select {
	case <-pollingDone:
		slog.Info("Update loop stopped gracefully")
	case <-time.After(shutdownTimeout):
		slog.Warn("Update loop shutdown timeout exceeded")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Dandanbot stopped")
}
