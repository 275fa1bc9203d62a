package display

import (
	"context"
	"log/slog"
	"time"

	"goalwatch/internal/nhl"
)

// ScoreboardSource is the subset of the NHL client the refresh loop needs.
type ScoreboardSource interface {
	Scoreboard(ctx context.Context, date string) (*nhl.ScoreboardDoc, error)
}

// Loop refreshes a renderer from the scoreboard at a fixed interval until
// ctx is cancelled. The display cadence is independent of, and much slower
// than, the goal-notification tick. Fetch and render failures are logged
// and the loop continues; a stale frame beats a dead display.
func Loop(ctx context.Context, source ScoreboardSource, renderer Renderer, interval time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("display loop starting", "interval", interval.String())

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("display loop stopping")
			return ctx.Err()
		case <-timer.C:
		}

		if err := Refresh(ctx, source, renderer); err != nil {
			logger.Error("display refresh failed", "error", err)
		}

		timer.Reset(interval)
	}
}

// Refresh performs a single fetch-and-render cycle.
func Refresh(ctx context.Context, source ScoreboardSource, renderer Renderer) error {
	doc, err := source.Scoreboard(ctx, "")
	if err != nil {
		return err
	}
	return renderer.Render(ctx, doc)
}
