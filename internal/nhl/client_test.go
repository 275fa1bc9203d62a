package nhl

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalwatch/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		BaseURL:   srv.URL,
		Timeout:   2 * time.Second,
		RateLimit: 1000,
		Burst:     1000,
		Logger:    discardLogger(),
	}, WithSleepFunc(func(time.Duration) {}))
}

func TestScoreboard_DecodesDocument(t *testing.T) {
	var gotPath, gotUA string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"games": [{
				"id": 2024020500,
				"gameState": "LIVE",
				"awayTeam": {"id": 4, "abbrev": "PHI", "score": 2},
				"homeTeam": {"id": 3, "abbrev": "NYR", "score": 1},
				"periodDescriptor": {"number": 2, "periodType": "REG"},
				"clock": {"timeRemaining": "12:34", "inIntermission": false}
			}]
		}`))
	}))

	doc, err := client.Scoreboard(context.Background(), "2026-01-15")
	require.NoError(t, err)

	assert.Equal(t, "/score/2026-01-15", gotPath)
	assert.Equal(t, "goalwatch/1.0", gotUA)
	require.Len(t, doc.Games, 1)

	game := doc.Games[0]
	assert.Equal(t, types.GameID(2024020500), game.ID)
	assert.True(t, game.GameState.IsLive())
	assert.Equal(t, "PHI", game.AwayTeam.Abbrev)
	assert.Equal(t, 4, game.AwayTeam.ID)
	assert.Equal(t, 2, game.AwayTeam.Score)
	assert.Equal(t, "12:34", game.Clock.TimeRemaining)
}

func TestScoreboard_DefaultsToToday(t *testing.T) {
	var gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"games": []}`))
	}))
	client.nowFn = func() time.Time {
		return time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC)
	}

	_, err := client.Scoreboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/score/2026-01-15", gotPath)
}

func TestPlayByPlay_Path(t *testing.T) {
	var gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 2024020500, "awayTeam": {"id": 4, "abbrev": "PHI"}, "homeTeam": {"id": 3, "abbrev": "NYR"}, "plays": []}`))
	}))

	doc, err := client.PlayByPlay(context.Background(), 2024020500)
	require.NoError(t, err)
	assert.Equal(t, "/gamecenter/2024020500/play-by-play", gotPath)
	assert.Equal(t, "PHI", doc.AwayTeam.Abbrev)
}

func TestClubSchedule_Path(t *testing.T) {
	var gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"games": []}`))
	}))

	_, err := client.ClubSchedule(context.Background(), "PHI")
	require.NoError(t, err)
	assert.Equal(t, "/club-schedule/PHI/week/now", gotPath)
}

func TestGet_RetriesOn5xxThenSucceeds(t *testing.T) {
	attempts := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"games": []}`))
	}))

	doc, err := client.Scoreboard(context.Background(), "2026-01-15")
	require.NoError(t, err)
	assert.Empty(t, doc.Games)
	assert.Equal(t, 3, attempts)
}

func TestGet_ExhaustedRetriesMapsToUnavailable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Scoreboard(context.Background(), "2026-01-15")
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeUpstreamUnavailable, appErr.Code)
	assert.True(t, appErr.Code.Transient())
}

func TestGet_NotFoundMapsToFetchError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.PlayByPlay(context.Background(), 99)
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeUpstreamFetch, appErr.Code)
}

func TestGet_MalformedBodyMapsToDecodeError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"games": [`))
	}))

	_, err := client.Scoreboard(context.Background(), "2026-01-15")
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeUpstreamDecode, appErr.Code)
}

func TestGet_RateLimitedMapsToRateLimited(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Scoreboard(context.Background(), "2026-01-15")
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeUpstreamRateLimited, appErr.Code)
}

func TestComputeBackoff_RespectsRetryAfterSeconds(t *testing.T) {
	client := NewClient(ClientConfig{Logger: discardLogger()})

	resp := &http.Response{Header: http.Header{"Retry-After": []string{"3"}}}
	assert.Equal(t, 3*time.Second, client.computeBackoff(0, resp))
}

func TestComputeBackoff_ClampsToMaxWait(t *testing.T) {
	client := NewClient(ClientConfig{
		RetryPolicy: &RetryPolicy{MaxRetries: 5, MinWait: time.Second, MaxWait: 2 * time.Second},
		Logger:      discardLogger(),
	})

	wait := client.computeBackoff(10, nil)
	assert.LessOrEqual(t, wait, 2*time.Second)
	assert.GreaterOrEqual(t, wait, time.Second)
}
