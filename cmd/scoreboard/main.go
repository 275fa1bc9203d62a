// Package main is the entrypoint for the terminal scoreboard: a dashboard
// that prints all of today's games, with the favorite team's games marked,
// refreshing every DISPLAY_INTERVAL until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goalwatch/internal/config"
	"goalwatch/internal/display"
	"goalwatch/internal/nhl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn, // keep the dashboard itself uncluttered
	}))
	slog.SetDefault(logger)

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		logger.Warn("unknown display timezone, using UTC", "timezone", cfg.Display.Timezone)
		loc = time.UTC
	}

	client := nhl.NewClient(nhl.ClientConfig{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
		RateLimit: cfg.Upstream.RateLimit,
		Burst:     cfg.Upstream.Burst,
		Logger:    logger,
	})

	renderer := display.NewTerminalRenderer(os.Stdout, cfg.Team.Favorite, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = display.Loop(ctx, client, renderer, cfg.Poll.DisplayInterval, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("display loop exited", "error", err)
		os.Exit(1)
	}
}
