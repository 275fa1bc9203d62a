// Package monitor drives the goal-notification polling cadence. Each tick
// fetches the scoreboard, narrows it to live favorite-team games, runs every
// active game through the goal tracker, and dispatches the resulting new
// goals to the notifier.
//
// Error policy: every upstream failure is recovered locally. A scoreboard
// fetch failure makes the tick report zero active games; a per-game
// play-by-play failure skips that game without aborting the tick for the
// others. The loop never crashes once started - availability over
// completeness.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

// GameSource is the subset of the NHL client the monitor needs.
type GameSource interface {
	// Scoreboard returns the score snapshot for a date; empty means today.
	Scoreboard(ctx context.Context, date string) (*nhl.ScoreboardDoc, error)
	// PlayByPlay returns the full play log for a game.
	PlayByPlay(ctx context.Context, id types.GameID) (*nhl.PlayByPlayDoc, error)
}

// GoalFinder detects not-yet-announced favorite-team goals in a snapshot.
// Implementations must provide at-most-once semantics per (game, event).
type GoalFinder interface {
	FindNewGoals(gameID types.GameID, doc *nhl.PlayByPlayDoc) []types.GoalEvent
}

// Notifier delivers a detected goal. Delivery is at-most-once: the goal was
// already marked announced by the GoalFinder before dispatch, so a failed
// delivery is logged and dropped, never retried. This trades a possibly
// missed message for a guarantee of no duplicates; see DESIGN.md.
type Notifier interface {
	NotifyGoal(ctx context.Context, game nhl.Game, goal types.GoalEvent) error
}

// Detection pairs a new goal with the scoreboard entry it was found in.
type Detection struct {
	Game nhl.Game
	Goal types.GoalEvent
}

// Monitor runs the poll-fetch-compute-notify cycle.
type Monitor struct {
	source   GameSource
	finder   GoalFinder
	notifier Notifier
	favorite string
	interval time.Duration
	logger   *slog.Logger
	nowFn    func() time.Time
}

// Config holds the dependencies for creating a Monitor.
type Config struct {
	Source   GameSource
	Finder   GoalFinder
	Notifier Notifier
	Favorite string
	Interval time.Duration
	Logger   *slog.Logger
}

// New creates a Monitor with the given configuration.
func New(cfg Config) *Monitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		source:   cfg.Source,
		finder:   cfg.Finder,
		notifier: cfg.Notifier,
		favorite: cfg.Favorite,
		interval: interval,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// ActiveGames filters a scoreboard to games that involve the favorite team
// and are currently live (LIVE or CRIT). Scheduled and finished games are
// excluded every tick; a game transitioning FUT -> LIVE -> FINAL is picked
// up and dropped automatically as this filter re-evaluates.
func (m *Monitor) ActiveGames(doc *nhl.ScoreboardDoc) []nhl.Game {
	if doc == nil {
		return nil
	}
	var active []nhl.Game
	for _, game := range doc.Games {
		if game.Involves(m.favorite) && game.GameState.IsLive() {
			active = append(active, game)
		}
	}
	return active
}

// Tick executes one poll cycle and returns all new goals found, preserving
// scoreboard game order and, within a game, the snapshot's chronological
// play order. Tick never returns an error; failures are logged and degrade
// to "no data this tick". Tracker state is only advanced by successfully
// parsed snapshots, so a failed tick cannot corrupt it.
func (m *Monitor) Tick(ctx context.Context) []Detection {
	logger := m.logger.With("trace_id", uuid.NewString())

	scoreboard, err := m.source.Scoreboard(ctx, "")
	if err != nil {
		logger.Error("scoreboard fetch failed", "error", err)
		return nil
	}

	active := m.ActiveGames(scoreboard)
	if len(active) == 0 {
		logger.Info("no active games for favorite team", "favorite", m.favorite)
		return nil
	}

	var detections []Detection
	for _, game := range active {
		gameLogger := logger.With(
			"game_id", int(game.ID),
			"away", game.AwayTeam.Abbrev,
			"home", game.HomeTeam.Abbrev,
		)
		gameLogger.Info("checking live game")

		doc, err := m.source.PlayByPlay(ctx, game.ID)
		if err != nil {
			// One game's failure must not starve the others this tick.
			gameLogger.Error("play-by-play fetch failed", "error", err)
			continue
		}

		for _, goal := range m.finder.FindNewGoals(game.ID, doc) {
			detections = append(detections, Detection{Game: game, Goal: goal})
		}
	}

	if len(detections) > 0 {
		logger.Info("new goals detected", "count", len(detections))
	}

	return detections
}

// Run executes ticks at the configured interval until ctx is cancelled.
// Cancellation is cooperative: it is observed at the top of the loop and
// during the inter-tick sleep, never mid-tick, so a running fetch-compute-
// notify cycle always completes and tracker state stays consistent.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("goal monitor starting",
		"favorite", m.favorite,
		"interval", m.interval.String(),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("goal monitor stopping")
			return ctx.Err()
		case <-timer.C:
		}

		for _, d := range m.Tick(ctx) {
			// Delivery failures are logged and dropped; the event is already
			// marked announced, so there is nothing to retry.
			if err := m.notifier.NotifyGoal(ctx, d.Game, d.Goal); err != nil {
				m.logger.Error("goal notification failed",
					"game_id", int(d.Game.ID),
					"event_id", int(d.Goal.EventID),
					"error", err,
				)
			}
		}

		timer.Reset(m.interval)
	}
}
