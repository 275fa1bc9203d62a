package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

func phiAtNYR() nhl.Game {
	return nhl.Game{
		AwayTeam: nhl.TeamRecord{Abbrev: "PHI"},
		HomeTeam: nhl.TeamRecord{Abbrev: "NYR"},
	}
}

func TestFormatGoal_TwoAssists(t *testing.T) {
	goal := types.GoalEvent{
		Period:       2,
		TimeInPeriod: "12:34",
		AwayScore:    2,
		HomeScore:    1,
	}

	got := FormatGoal(phiAtNYR(), goal, "Travis Konecny", []string{"Sean Couturier", "Travis Sanheim"})

	assert.Equal(t, "GOAL! Travis Konecny (Sean Couturier, Travis Sanheim)\nP2 12:34 | PHI 2-1 NYR", got)
}

func TestFormatGoal_Unassisted(t *testing.T) {
	goal := types.GoalEvent{
		Period:       1,
		TimeInPeriod: "05:00",
		AwayScore:    1,
		HomeScore:    0,
	}

	got := FormatGoal(phiAtNYR(), goal, "Travis Konecny", nil)

	assert.Equal(t, "GOAL! Travis Konecny\nP1 05:00 | PHI 1-0 NYR", got)
}

func TestFormatGoal_MissingPeriodAndClock(t *testing.T) {
	got := FormatGoal(phiAtNYR(), types.GoalEvent{}, "Travis Konecny", nil)

	assert.Contains(t, got, "P? ??:??")
}

func TestFormatGoal_NeverExceedsSingleSegment(t *testing.T) {
	longName := strings.Repeat("Maximilian Aleksander ", 10)
	goal := types.GoalEvent{Period: 3, TimeInPeriod: "19:59", AwayScore: 5, HomeScore: 4}

	got := FormatGoal(phiAtNYR(), goal, longName, []string{longName, longName})

	assert.LessOrEqual(t, len([]rune(got)), 160)
	assert.True(t, strings.HasPrefix(got, "GOAL! "))
}

func TestTruncate_KeepsWholeRunes(t *testing.T) {
	s := strings.Repeat("é", 10)

	got := truncate(s, 5)

	assert.Equal(t, strings.Repeat("é", 5), got)
}

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 160))
}
