package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

type captureSender struct {
	messages []string
	err      error
}

func (s *captureSender) Deliver(_ context.Context, message string) error {
	s.messages = append(s.messages, message)
	return s.err
}

func TestNotifyGoal_ResolvesNamesAndDelivers(t *testing.T) {
	source := &stubBoxscoreSource{doc: boxscoreWith(map[types.PlayerID]string{
		8478439: "Travis Konecny",
		8476461: "Sean Couturier",
	})}
	sender := &captureSender{}
	notifier := NewGoalNotifier(NewPlayerNames(source, discardLogger()), sender, discardLogger())

	game := nhl.Game{
		ID:       2024020500,
		AwayTeam: nhl.TeamRecord{Abbrev: "PHI"},
		HomeTeam: nhl.TeamRecord{Abbrev: "NYR"},
	}
	goal := types.GoalEvent{
		EventID:       1,
		Period:        2,
		TimeInPeriod:  "12:34",
		ScoringPlayer: 8478439,
		Assists:       []types.PlayerID{8476461},
		AwayScore:     2,
		HomeScore:     1,
	}

	err := notifier.NotifyGoal(context.Background(), game, goal)
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "GOAL! Travis Konecny (Sean Couturier)\nP2 12:34 | PHI 2-1 NYR", sender.messages[0])
}

func TestNotifyGoal_UnknownScorerStillDelivers(t *testing.T) {
	source := &stubBoxscoreSource{err: errors.New("boxscore down")}
	sender := &captureSender{}
	notifier := NewGoalNotifier(NewPlayerNames(source, discardLogger()), sender, discardLogger())

	game := nhl.Game{
		ID:       2024020500,
		AwayTeam: nhl.TeamRecord{Abbrev: "PHI"},
		HomeTeam: nhl.TeamRecord{Abbrev: "NYR"},
	}
	goal := types.GoalEvent{EventID: 1, Period: 1, TimeInPeriod: "05:00", ScoringPlayer: 8478439}

	err := notifier.NotifyGoal(context.Background(), game, goal)
	require.NoError(t, err)

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Unknown Player")
}

func TestNotifyGoal_PropagatesDeliveryError(t *testing.T) {
	source := &stubBoxscoreSource{doc: boxscoreWith(map[types.PlayerID]string{8478439: "Travis Konecny"})}
	sender := &captureSender{err: types.NewAppError(types.ErrCodeDeliverySend, "relay refused", nil)}
	notifier := NewGoalNotifier(NewPlayerNames(source, discardLogger()), sender, discardLogger())

	game := nhl.Game{ID: 2024020500}
	goal := types.GoalEvent{EventID: 1, ScoringPlayer: 8478439}

	err := notifier.NotifyGoal(context.Background(), game, goal)
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeDeliverySend, appErr.Code)
}
