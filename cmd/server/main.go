package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/parseos/internal/config"
	"github.com/JonMunkholm/parseos/internal/core"
	_ "github.com/JonMunkholm/parseos/internal/core/formats" // Register all formats
	"github.com/JonMunkholm/parseos/internal/logging"
	"github.com/JonMunkholm/parseos/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"max_concurrent", cfg.Convert.MaxConcurrent,
		"strict_line_length", cfg.Convert.StrictLineLength,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"require_api_key", cfg.Security.RequireAPIKey,
	)

	overrides, err := core.LoadAliasOverrides(cfg.Convert.AliasFile)
	if err != nil {
		slog.Error("failed to load alias overrides", "path", cfg.Convert.AliasFile, "error", err)
		os.Exit(1)
	}
	if overrides != nil {
		slog.Info("alias overrides loaded",
			"path", cfg.Convert.AliasFile,
			"formats", len(overrides),
			"spellings", overrides.Count(),
		)
	}

	service := core.NewService(core.ServiceOptions{
		MaxConcurrent:    cfg.Convert.MaxConcurrent,
		MaxWait:          cfg.Convert.MaxWaitTime,
		StrictLineLength: cfg.Convert.StrictLineLength,
		Overrides:        overrides,
	})

	slog.Info("formats registered",
		"count", core.FormatCount(),
		"groups", len(core.Groups()),
	)
	for _, group := range core.Groups() {
		slog.Debug("format group", "group", group, "formats", len(core.ByGroup(group)))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for conversions to complete", "active", status.Active)
			if err := service.WaitForConversions(shutdownCtx); err != nil {
				slog.Warn("conversions did not complete in time", "error", err)
			} else {
				slog.Info("all conversions completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
