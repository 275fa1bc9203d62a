// Package types defines the shared domain model for goalwatch: game and
// event identifiers, scoring events, game states, and the application error
// taxonomy. It has no dependencies on other internal packages so that every
// component can import it freely.
package types

// GameID identifies one scheduled NHL game. IDs are assigned by the league
// and are unique within a season.
type GameID int

// EventID identifies a single play within one game's play-by-play feed.
// Event IDs are unique within a game only, never globally, so they must
// always be scoped by a GameID.
type EventID int

// PlayerID identifies an NHL player in rosters and play details.
type PlayerID int

// GoalEvent is one scoring play extracted from a game's play-by-play feed.
// The away/home scores are the totals immediately after this goal. A
// GoalEvent is immutable once retrieved; the upstream feed never rewrites
// a recorded play.
type GoalEvent struct {
	EventID       EventID
	Period        int
	TimeInPeriod  string // elapsed time within the period, "mm:ss"
	ScoringPlayer PlayerID
	Assists       []PlayerID // 0-2 entries, primary assist first
	OwnerTeamID   int        // numeric team id valid within this game only
	AwayScore     int
	HomeScore     int
}
