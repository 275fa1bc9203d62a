package notify

import (
	"fmt"
	"strings"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

// maxSMSLength is the single-segment SMS limit. Carriers split or truncate
// longer bodies, so FormatGoal trims to this length.
const maxSMSLength = 160

// FormatGoal builds the SMS body for a favorite-team goal:
//
//	GOAL! Travis Konecny (Couturier, Sanheim)
//	P2 12:34 | PHI 2-1 NYR
//
// The score line uses away-home order matching the scoreboard. The result
// never exceeds 160 characters.
func FormatGoal(game nhl.Game, goal types.GoalEvent, scorer string, assists []string) string {
	var b strings.Builder

	b.WriteString("GOAL! ")
	b.WriteString(scorer)
	if len(assists) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(assists, ", "))
		b.WriteString(")")
	}

	period := "?"
	if goal.Period > 0 {
		period = fmt.Sprintf("%d", goal.Period)
	}
	timeInPeriod := goal.TimeInPeriod
	if timeInPeriod == "" {
		timeInPeriod = "??:??"
	}

	fmt.Fprintf(&b, "\nP%s %s | %s %d-%d %s",
		period, timeInPeriod,
		game.AwayTeam.Abbrev, goal.AwayScore, goal.HomeScore, game.HomeTeam.Abbrev,
	)

	return truncate(b.String(), maxSMSLength)
}

// truncate shortens s to at most limit runes, keeping whole runes.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
