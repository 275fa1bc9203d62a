package display

import (
	"fmt"
	"strings"
	"time"

	"goalwatch/internal/nhl"
)

// GameClass buckets a game for color selection on visual surfaces.
type GameClass int

const (
	ClassScheduled GameClass = iota
	ClassLive
	ClassFinal
	ClassUnknown
)

// Classify maps a game's state to its display class.
func Classify(game nhl.Game) GameClass {
	switch {
	case game.GameState.IsLive():
		return ClassLive
	case game.GameState.IsScheduled():
		return ClassScheduled
	case game.GameState.IsFinal():
		return ClassFinal
	default:
		return ClassUnknown
	}
}

// StateLabel returns the short status tag shown next to a game row.
func StateLabel(game nhl.Game) string {
	switch Classify(game) {
	case ClassLive:
		return string(game.GameState)
	case ClassScheduled:
		return "SCHEDULED"
	case ClassFinal:
		return "FINAL"
	default:
		return string(game.GameState)
	}
}

// FormatGameLine renders one game as a single line, matching the state:
//
//	PHI @ NYR - 5:00 PM MST            (scheduled; start in loc)
//	PHI 2 @ NYR 1 - P2 12:34           (live, regulation)
//	PHI 2 @ NYR 2 - OT 3:15            (live, overtime)
//	PHI 2 @ NYR 2 - Shootout           (live, shootout)
//	PHI 3 @ NYR 2 - Intermission (after P2)
//	PHI 3 @ NYR 2 - FINAL              (finished)
func FormatGameLine(game nhl.Game, loc *time.Location) string {
	away := orTBD(game.AwayTeam.Abbrev)
	home := orTBD(game.HomeTeam.Abbrev)

	switch {
	case game.GameState.IsFinal():
		return fmt.Sprintf("%s %d @ %s %d - FINAL",
			away, game.AwayTeam.Score, home, game.HomeTeam.Score)

	case game.GameState.IsScheduled():
		return fmt.Sprintf("%s @ %s - %s", away, home, formatStartTime(game.StartTimeUTC, loc))

	default:
		// Live (LIVE, CRIT) and anything unrecognized with a running clock.
		score := fmt.Sprintf("%s %d @ %s %d",
			away, game.AwayTeam.Score, home, game.HomeTeam.Score)

		switch {
		case game.Clock.InIntermission:
			return fmt.Sprintf("%s - Intermission (after P%d)", score, game.PeriodDescriptor.Number)
		case game.PeriodDescriptor.PeriodType == "OT":
			return fmt.Sprintf("%s - OT %s", score, orClock(game.Clock.TimeRemaining))
		case game.PeriodDescriptor.PeriodType == "SO":
			return fmt.Sprintf("%s - Shootout", score)
		default:
			return fmt.Sprintf("%s - P%d %s", score,
				game.PeriodDescriptor.Number, orClock(game.Clock.TimeRemaining))
		}
	}
}

// formatStartTime converts a UTC start time to the display zone, e.g.
// "5:00 PM MST". A zero time renders as "TBD".
func formatStartTime(startUTC time.Time, loc *time.Location) string {
	if startUTC.IsZero() {
		return "TBD"
	}
	if loc == nil {
		loc = time.UTC
	}
	local := startUTC.In(loc)
	return strings.TrimPrefix(local.Format("3:04 PM MST"), "0")
}

func orTBD(abbrev string) string {
	if abbrev == "" {
		return "TBD"
	}
	return abbrev
}

func orClock(remaining string) string {
	if remaining == "" {
		return "20:00"
	}
	return remaining
}
