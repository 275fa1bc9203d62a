package notify

import (
	"context"
	"log/slog"
	"sync"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

// unknownPlayer is the display name used when a roster lookup fails. A
// notification with a placeholder beats a dropped notification.
const unknownPlayer = "Unknown Player"

// BoxscoreSource is the subset of the NHL client needed for name lookups.
type BoxscoreSource interface {
	Boxscore(ctx context.Context, id types.GameID) (*nhl.BoxscoreDoc, error)
}

// PlayerNames resolves player ids to display names via the game's boxscore,
// caching rosters per game so a multi-goal tick costs one boxscore fetch.
// Rosters can gain players mid-game (goalie swaps, scratches), so a miss on
// a cached roster triggers one refetch for that game.
type PlayerNames struct {
	source BoxscoreSource
	logger *slog.Logger

	mu     sync.Mutex
	byGame map[types.GameID]map[types.PlayerID]string
}

// NewPlayerNames creates a PlayerNames resolver backed by the given source.
func NewPlayerNames(source BoxscoreSource, logger *slog.Logger) *PlayerNames {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerNames{
		source: source,
		logger: logger,
		byGame: make(map[types.GameID]map[types.PlayerID]string),
	}
}

// Lookup returns the display name for a player within a game, or
// "Unknown Player" when the boxscore cannot be fetched or does not list the
// player. Lookup never fails; name resolution is cosmetic.
func (p *PlayerNames) Lookup(ctx context.Context, gameID types.GameID, playerID types.PlayerID) string {
	if playerID == 0 {
		return unknownPlayer
	}

	p.mu.Lock()
	roster, cached := p.byGame[gameID]
	p.mu.Unlock()

	if cached {
		if name, ok := roster[playerID]; ok {
			return name
		}
	}

	roster, err := p.fetch(ctx, gameID)
	if err != nil {
		p.logger.Warn("boxscore fetch for name lookup failed",
			"game_id", int(gameID),
			"player_id", int(playerID),
			"error", err,
		)
		return unknownPlayer
	}

	if name, ok := roster[playerID]; ok {
		return name
	}
	return unknownPlayer
}

// fetch retrieves and caches the roster for a game.
func (p *PlayerNames) fetch(ctx context.Context, gameID types.GameID) (map[types.PlayerID]string, error) {
	doc, err := p.source.Boxscore(ctx, gameID)
	if err != nil {
		return nil, err
	}
	roster := doc.PlayerNames()

	p.mu.Lock()
	p.byGame[gameID] = roster
	p.mu.Unlock()

	return roster, nil
}
