// Package main is the entrypoint for the e-ink display: it renders today's
// scoreboard plus the favorite team's upcoming games into an 800x480 PNG
// sized for an Inky Impression 7.3" panel.
//
// Usage:
//
//	eink-display [-once]
//
// With -once, a single frame is rendered and the process exits; otherwise
// it refreshes every DISPLAY_INTERVAL until interrupted. Pushing the PNG to
// the physical panel is the host's job.
package main

import (
	"context"
	"errors"
	"flag"
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
	once := flag.Bool("once", false, "render a single frame and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
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

	renderer, err := display.NewEInkRenderer(display.EInkConfig{
		Schedule:   client,
		Favorite:   cfg.Team.Favorite,
		Location:   loc,
		OutputPath: cfg.Display.OutputPath,
		MaxGames:   cfg.Display.MaxGames,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to initialize e-ink renderer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := display.Refresh(ctx, client, renderer); err != nil {
			logger.Error("render failed", "error", err)
			os.Exit(1)
		}
		return
	}

	err = display.Loop(ctx, client, renderer, cfg.Poll.DisplayInterval, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("display loop exited", "error", err)
		os.Exit(1)
	}
}
