// Package main is the entrypoint for the goal notifier: a long-running
// process that polls the NHL scoreboard, detects new favorite-team goals,
// and delivers SMS notifications through an email-to-SMS gateway.
//
// Startup wires config -> NHL client -> tracker -> notifier -> monitor and
// then runs the poll loop until SIGINT/SIGTERM. Configuration errors are
// fatal before the loop starts; everything after that is recovered locally.
//
// Usage:
//
//	goal-notifier [phone-number]
//
// The optional positional argument overrides PHONE_NUMBER from the
// environment; dashes and spaces are stripped.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"goalwatch/internal/config"
	"goalwatch/internal/monitor"
	"goalwatch/internal/nhl"
	"goalwatch/internal/notify"
	"goalwatch/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	// CLI override for the notification target.
	if len(os.Args) > 1 {
		cfg.SMS.PhoneNumber = notify.NormalizePhoneNumber(os.Args[1])
	}

	if err := cfg.SMS.Validate(); err != nil {
		logger.Error("SMS delivery is not configured", "error", err)
		os.Exit(1)
	}

	client := nhl.NewClient(nhl.ClientConfig{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
		RateLimit: cfg.Upstream.RateLimit,
		Burst:     cfg.Upstream.Burst,
		Logger:    logger,
	})

	gateway, err := notify.NewSMSGateway(notify.SMSGatewayConfig{
		PhoneNumber:   cfg.SMS.PhoneNumber,
		GatewayDomain: cfg.SMS.GatewayDomain,
		SMTPServer:    cfg.SMS.SMTPServer,
		SMTPPort:      cfg.SMS.SMTPPort,
		SMTPUsername:  cfg.SMS.SMTPUsername,
		SMTPPassword:  cfg.SMS.SMTPPassword,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to initialize SMS gateway", "error", err)
		os.Exit(1)
	}

	names := notify.NewPlayerNames(client, logger)
	notifier := notify.NewGoalNotifier(names, gateway, logger)

	mon := monitor.New(monitor.Config{
		Source:   client,
		Finder:   tracker.New(cfg.Team.Favorite, logger),
		Notifier: notifier,
		Favorite: cfg.Team.Favorite,
		Interval: cfg.Poll.CheckInterval,
		Logger:   logger,
	})

	logger.Info("goal notifier initialized",
		"favorite", cfg.Team.Favorite,
		"target", notify.RedactTarget(gateway.Target()),
		"interval", cfg.Poll.CheckInterval.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("monitor exited", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger: text for local runs, JSON elsewhere.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Environment == "local" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
