// Command api is the Matchfeed API server.
//
// Usage:
//
//	matchfeed-api
//	API_PORT=8080 matchfeed-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/matchfeed/internal/api"
	"github.com/albapepper/matchfeed/internal/assist"
	"github.com/albapepper/matchfeed/internal/chat"
	"github.com/albapepper/matchfeed/internal/config"
	"github.com/albapepper/matchfeed/internal/feed"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Build the event feed with its provider fallback chains
	feedSvc := feed.NewFromConfig(cfg, logger, time.Now)
	logger.Info("Feed initialized",
		"ttl", cfg.CacheTTL,
		"always_fresh", cfg.AlwaysFresh,
		"max_per_sport", cfg.MaxPerSport)

	// Optional AI assist
	ai := assist.NewFromConfig(cfg)
	if ai != nil {
		logger.Info("AI assist enabled")
	} else {
		logger.Info("AI assist disabled (no OPENAI_API_KEY or OPENROUTER_API_KEY), rule-based only")
	}

	// Chat service
	var completer chat.Completer
	if ai != nil {
		completer = ai
	}
	chatSvc, err := chat.NewFromConfig(cfg, feedSvc, completer, logger)
	if err != nil {
		logger.Error("Failed to build chat service", "error", err)
		os.Exit(1)
	}

	// Create router
	router := api.NewRouter(feedSvc, chatSvc, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Matchfeed API",
			"addr", addr,
			"environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
