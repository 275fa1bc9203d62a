// Package tracker implements goal deduplication for the favorite team. The
// Tracker owns the set of already-announced scoring events, keyed by game,
// and turns full play-by-play snapshots into the subset of favorite-team
// goals that have not been reported yet.
//
// State is in-memory only and monotonic: entries are never evicted, not even
// after a game ends. The set is bounded by goals scored in a single game day
// and the process restarts between game days, so eviction is deliberately
// out of scope.
package tracker

import (
	"log/slog"
	"sync"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

// Tracker detects new favorite-team goals across repeated snapshots of the
// same game. It is safe for concurrent use: the check-then-insert step is
// atomic under a single mutex, so an event can be claimed by at most one
// caller even if games are ever checked in parallel.
type Tracker struct {
	favorite string

	mu       sync.Mutex
	notified map[types.GameID]map[types.EventID]struct{}

	logger *slog.Logger
}

// New creates a Tracker for the given favorite team abbreviation. The
// notified-set lives for the lifetime of the Tracker; construct one per
// process, not per tick.
func New(favorite string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		favorite: favorite,
		notified: make(map[types.GameID]map[types.EventID]struct{}),
		logger:   logger,
	}
}

// FindNewGoals scans a play-by-play snapshot and returns the favorite-team
// goals that have not been returned before for this game, in snapshot order
// (the upstream feed is chronological). Each returned event is recorded
// before the method returns, so re-scanning the same snapshot, or any later
// snapshot containing the same events, yields it at most once for the
// lifetime of the Tracker.
//
// The favorite team's numeric id is re-derived from the document's
// participant records on every call; ids are assigned per game context and
// must never be cached across games. A nil document or a game the favorite
// team is not playing in returns nil without touching state.
func (t *Tracker) FindNewGoals(gameID types.GameID, doc *nhl.PlayByPlayDoc) []types.GoalEvent {
	if doc == nil {
		return nil
	}

	favoriteID, ok := doc.ParticipantTeamID(t.favorite)
	if !ok {
		// Callers pre-filter to favorite-team games; a stray snapshot must
		// not pollute the notified set.
		t.logger.Warn("snapshot does not involve favorite team",
			"game_id", int(gameID),
			"away", doc.AwayTeam.Abbrev,
			"home", doc.HomeTeam.Abbrev,
		)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	seen := t.notified[gameID]
	if seen == nil {
		seen = make(map[types.EventID]struct{})
		t.notified[gameID] = seen
	}

	var newGoals []types.GoalEvent
	for _, play := range doc.Plays {
		if !play.IsGoal() {
			continue
		}
		if play.Details.EventOwnerTeamID != favoriteID {
			continue
		}
		if _, already := seen[play.EventID]; already {
			continue
		}
		seen[play.EventID] = struct{}{}
		newGoals = append(newGoals, play.Goal())
	}

	return newGoals
}

// TrackedGames returns the number of games with at least one announced goal.
// Exposed for logging and tests.
func (t *Tracker) TrackedGames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.notified)
}
