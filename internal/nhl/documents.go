package nhl

import (
	"time"

	"goalwatch/internal/types"
)

// TeamRecord is one participant in a game: the numeric id assigned within
// the game context, the 3-letter abbreviation, and the current score.
type TeamRecord struct {
	ID     int    `json:"id"`
	Abbrev string `json:"abbrev"`
	Score  int    `json:"score"`
}

// PeriodDescriptor identifies the current or relevant period of a game.
type PeriodDescriptor struct {
	Number     int    `json:"number"`
	PeriodType string `json:"periodType"` // "REG", "OT", "SO"
}

// GameClock is the live clock state of an in-progress game.
type GameClock struct {
	TimeRemaining  string `json:"timeRemaining"`
	InIntermission bool   `json:"inIntermission"`
}

// Game is one scoreboard entry for a date.
type Game struct {
	ID               types.GameID     `json:"id"`
	GameState        types.GameState  `json:"gameState"`
	GameDate         string           `json:"gameDate"`
	StartTimeUTC     time.Time        `json:"startTimeUTC"`
	AwayTeam         TeamRecord       `json:"awayTeam"`
	HomeTeam         TeamRecord       `json:"homeTeam"`
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	Clock            GameClock        `json:"clock"`
}

// Involves reports whether the given team abbreviation is one of the game's
// participants.
func (g Game) Involves(abbrev string) bool {
	return g.AwayTeam.Abbrev == abbrev || g.HomeTeam.Abbrev == abbrev
}

// ScoreboardDoc is the scoreboard snapshot for one date: all games and their
// current state, refreshed each poll.
type ScoreboardDoc struct {
	Games []Game `json:"games"`
}

// ScheduleDoc is a schedule listing for a club or date. Shares the Game
// shape with the scoreboard.
type ScheduleDoc struct {
	Games []Game `json:"games"`
}

// PlayDetails carries the type-specific fields of a play. For goals, the
// owning team, scorer, assists, and the score immediately after.
type PlayDetails struct {
	EventOwnerTeamID int            `json:"eventOwnerTeamId"`
	ScoringPlayerID  types.PlayerID `json:"scoringPlayerId"`
	Assist1PlayerID  types.PlayerID `json:"assist1PlayerId"`
	Assist2PlayerID  types.PlayerID `json:"assist2PlayerId"`
	AwayScore        int            `json:"awayScore"`
	HomeScore        int            `json:"homeScore"`
}

// Play is one entry in a game's chronological play log.
type Play struct {
	EventID          types.EventID    `json:"eventId"`
	TypeDescKey      string           `json:"typeDescKey"`
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	TimeInPeriod     string           `json:"timeInPeriod"`
	Details          PlayDetails      `json:"details"`
}

// playTypeGoal is the typeDescKey value marking a scoring play.
const playTypeGoal = "goal"

// IsGoal reports whether this play is a scoring play.
func (p Play) IsGoal() bool {
	return p.TypeDescKey == playTypeGoal
}

// Goal converts a goal play into the domain GoalEvent. Callers should check
// IsGoal first; calling it on a non-goal play yields zeroed score fields.
func (p Play) Goal() types.GoalEvent {
	var assists []types.PlayerID
	if p.Details.Assist1PlayerID != 0 {
		assists = append(assists, p.Details.Assist1PlayerID)
	}
	if p.Details.Assist2PlayerID != 0 {
		assists = append(assists, p.Details.Assist2PlayerID)
	}
	return types.GoalEvent{
		EventID:       p.EventID,
		Period:        p.PeriodDescriptor.Number,
		TimeInPeriod:  p.TimeInPeriod,
		ScoringPlayer: p.Details.ScoringPlayerID,
		Assists:       assists,
		OwnerTeamID:   p.Details.EventOwnerTeamID,
		AwayScore:     p.Details.AwayScore,
		HomeScore:     p.Details.HomeScore,
	}
}

// PlayByPlayDoc is the ordered play log for one game, including the
// participant records needed to resolve team abbreviations to this game's
// numeric ids.
type PlayByPlayDoc struct {
	ID       types.GameID `json:"id"`
	AwayTeam TeamRecord   `json:"awayTeam"`
	HomeTeam TeamRecord   `json:"homeTeam"`
	Plays    []Play       `json:"plays"`
}

// ParticipantTeamID resolves a team abbreviation to this game's numeric team
// id. The id assignment is per game context, so callers must re-derive it
// from each document rather than caching or hardcoding it. The second return
// is false when the team is not a participant.
func (d *PlayByPlayDoc) ParticipantTeamID(abbrev string) (int, bool) {
	switch abbrev {
	case d.AwayTeam.Abbrev:
		return d.AwayTeam.ID, true
	case d.HomeTeam.Abbrev:
		return d.HomeTeam.ID, true
	default:
		return 0, false
	}
}

// RosterPlayer is one player entry in a boxscore roster.
type RosterPlayer struct {
	PlayerID types.PlayerID `json:"playerId"`
	Name     struct {
		Default string `json:"default"`
	} `json:"name"`
}

// TeamRoster groups a team's boxscore players by position.
type TeamRoster struct {
	Forwards []RosterPlayer `json:"forwards"`
	Defense  []RosterPlayer `json:"defense"`
	Goalies  []RosterPlayer `json:"goalies"`
}

// BoxscoreDoc carries per-game player stats. goalwatch uses it only to map
// player ids to display names.
type BoxscoreDoc struct {
	ID                types.GameID `json:"id"`
	PlayerByGameStats struct {
		AwayTeam TeamRoster `json:"awayTeam"`
		HomeTeam TeamRoster `json:"homeTeam"`
	} `json:"playerByGameStats"`
}

// PlayerNames flattens both rosters into an id -> display name map.
func (d *BoxscoreDoc) PlayerNames() map[types.PlayerID]string {
	names := make(map[types.PlayerID]string)
	for _, roster := range []TeamRoster{d.PlayerByGameStats.AwayTeam, d.PlayerByGameStats.HomeTeam} {
		for _, group := range [][]RosterPlayer{roster.Forwards, roster.Defense, roster.Goalies} {
			for _, p := range group {
				if p.Name.Default != "" {
					names[p.PlayerID] = p.Name.Default
				}
			}
		}
	}
	return names
}
