package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brightsteps/scribe/internal/api"
	"github.com/brightsteps/scribe/internal/config"
	"github.com/brightsteps/scribe/internal/events"
	"github.com/brightsteps/scribe/internal/pipeline"
	"github.com/brightsteps/scribe/internal/remote"
	"github.com/brightsteps/scribe/internal/routing"
	"github.com/brightsteps/scribe/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("scribe starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// Remote extraction client. Optional: the local engine covers every
	// utterance when the remote path is unconfigured or failing.
	var remoteClient routing.RemoteExtractor
	if cfg.ExtractorURL != "" {
		remoteClient = remote.NewClient(cfg.ExtractorURL, cfg.ExtractorAPIKey)
		slog.Info("remote extractor configured", "url", cfg.ExtractorURL)
	} else {
		slog.Warn("remote extractor not configured, running local-only")
	}

	policy := routing.NewPolicy(remoteClient, routing.Config{
		Enabled:  cfg.RemoteEnabled,
		Timeout:  cfg.RemoteTimeout,
		Cooldown: cfg.Cooldown,
	}, slog.Default())

	// NATS
	bus, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Event-driven processing flow
	pipe := pipeline.New(policy, db, bus, slog.Default())

	if err := bus.Subscribe(events.SubjectNoteSubmitted, pipe.HandleNoteSubmitted); err != nil {
		slog.Error("failed to subscribe to note events", "error", err)
		os.Exit(1)
	}

	// HTTP API
	notes := api.NewNotesHandler(policy, db, pipe, slog.Default())
	srv := api.NewServer(cfg.Port, cfg.APIToken, notes)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("scribe ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("scribe stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
