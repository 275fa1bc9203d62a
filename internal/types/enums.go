package types

// GameState is the upstream scoreboard state for a game.
type GameState string

const (
	StateFuture   GameState = "FUT"  // scheduled, not started
	StatePregame  GameState = "PRE"  // warmups
	StateLive     GameState = "LIVE" // in progress
	StateCritical GameState = "CRIT" // in progress, late-game/OT flag
	StateOver     GameState = "OFF"  // finished, unofficial
	StateFinal    GameState = "FINAL"
)

// IsLive reports whether the game is currently in progress. CRIT is the
// upstream's late-game variant of LIVE and counts as live.
func (s GameState) IsLive() bool {
	return s == StateLive || s == StateCritical
}

// IsScheduled reports whether the game has not started yet.
func (s GameState) IsScheduled() bool {
	return s == StateFuture || s == StatePregame
}

// IsFinal reports whether the game has ended.
func (s GameState) IsFinal() bool {
	return s == StateOver || s == StateFinal
}
