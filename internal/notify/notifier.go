package notify

import (
	"context"
	"log/slog"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

// Sender delivers a pre-formatted message body to the configured target.
type Sender interface {
	Deliver(ctx context.Context, message string) error
}

// GoalNotifier turns detected goals into SMS messages: resolves scorer and
// assist names from the boxscore, formats the single-segment body, and hands
// it to the Sender. It implements monitor.Notifier.
type GoalNotifier struct {
	names  *PlayerNames
	sender Sender
	logger *slog.Logger
}

// NewGoalNotifier creates a GoalNotifier.
func NewGoalNotifier(names *PlayerNames, sender Sender, logger *slog.Logger) *GoalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalNotifier{
		names:  names,
		sender: sender,
		logger: logger,
	}
}

// NotifyGoal formats and delivers one goal notification. Name lookups never
// fail (they degrade to a placeholder); only the delivery itself can error.
func (n *GoalNotifier) NotifyGoal(ctx context.Context, game nhl.Game, goal types.GoalEvent) error {
	scorer := n.names.Lookup(ctx, game.ID, goal.ScoringPlayer)

	assists := make([]string, 0, len(goal.Assists))
	for _, id := range goal.Assists {
		assists = append(assists, n.names.Lookup(ctx, game.ID, id))
	}

	message := FormatGoal(game, goal, scorer, assists)

	n.logger.Info("dispatching goal notification",
		"game_id", int(game.ID),
		"event_id", int(goal.EventID),
		"scorer", scorer,
	)

	return n.sender.Deliver(ctx, message)
}
