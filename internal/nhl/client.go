// Package nhl is the client for the public NHL web API
// (api-web.nhle.com/v1). All outbound calls go through a single resilient
// GET path: rate limiting, circuit breaking, retries with exponential
// backoff, and error mapping to types.AppError. The endpoints require no
// authentication.
package nhl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"goalwatch/internal/types"
)

// RetryPolicy configures the retry behavior for upstream calls.
type RetryPolicy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// DefaultRetryPolicy returns sensible defaults for the NHL API.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		MinWait:    500 * time.Millisecond,
		MaxWait:    5 * time.Second,
	}
}

// Client fetches schedule, scoreboard, play-by-play, and boxscore documents.
// It is safe for concurrent use.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	limiter     *rate.Limiter
	retryPolicy RetryPolicy
	userAgent   string
	logger      *slog.Logger
	sleepFn     func(time.Duration) // for testability; defaults to time.Sleep
	nowFn       func() time.Time    // for testability; defaults to time.Now
}

// ClientConfig holds the parameters for constructing a Client. Zero values
// fall back to defaults suitable for production use.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	RateLimit   float64 // requests per second; 0 means 5
	Burst       int     // 0 means 5
	RetryPolicy *RetryPolicy
	Logger      *slog.Logger
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithSleepFunc overrides the sleep function used between retries. Intended
// for tests to avoid real delays.
func WithSleepFunc(fn func(time.Duration)) ClientOption {
	return func(c *Client) {
		c.sleepFn = fn
	}
}

// WithNowFunc overrides the clock used for "today" date defaulting.
func WithNowFunc(fn func() time.Time) ClientOption {
	return func(c *Client) {
		c.nowFn = fn
	}
}

// NewClient creates a Client with the given configuration.
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-web.nhle.com/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "goalwatch/1.0"
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 5
	}
	if cfg.Burst == 0 {
		cfg.Burst = 5
	}
	retryPolicy := DefaultRetryPolicy()
	if cfg.RetryPolicy != nil {
		retryPolicy = *cfg.RetryPolicy
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "nhl-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	c := &Client{
		baseURL:     cfg.BaseURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		breaker:     cb,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		retryPolicy: retryPolicy,
		userAgent:   cfg.UserAgent,
		logger:      logger,
		sleepFn:     time.Sleep,
		nowFn:       time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Scoreboard fetches the score snapshot for a date. An empty date means
// today (UTC).
func (c *Client) Scoreboard(ctx context.Context, date string) (*ScoreboardDoc, error) {
	if date == "" {
		date = c.nowFn().UTC().Format("2006-01-02")
	}
	var doc ScoreboardDoc
	if err := c.get(ctx, fmt.Sprintf("/score/%s", date), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Schedule fetches the league schedule for a date. An empty date means
// today (UTC).
func (c *Client) Schedule(ctx context.Context, date string) (*ScheduleDoc, error) {
	if date == "" {
		date = c.nowFn().UTC().Format("2006-01-02")
	}
	var doc ScheduleDoc
	if err := c.get(ctx, fmt.Sprintf("/schedule/%s", date), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ClubSchedule fetches the upcoming week of games for a team abbreviation.
func (c *Client) ClubSchedule(ctx context.Context, team string) (*ScheduleDoc, error) {
	var doc ScheduleDoc
	if err := c.get(ctx, fmt.Sprintf("/club-schedule/%s/week/now", team), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// PlayByPlay fetches the full play log for a game.
func (c *Client) PlayByPlay(ctx context.Context, id types.GameID) (*PlayByPlayDoc, error) {
	var doc PlayByPlayDoc
	if err := c.get(ctx, fmt.Sprintf("/gamecenter/%d/play-by-play", id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Boxscore fetches per-game player stats, used for player name lookup.
func (c *Client) Boxscore(ctx context.Context, id types.GameID) (*BoxscoreDoc, error) {
	var doc BoxscoreDoc
	if err := c.get(ctx, fmt.Sprintf("/gamecenter/%d/boxscore", id), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// get executes a GET request with:
//  1. Rate limiter wait (respects ctx cancellation)
//  2. User-Agent header injection
//  3. Circuit breaker wrapping
//  4. Retry on 429/5xx (respecting Retry-After headers)
//  5. JSON decoding into out
//  6. Error mapping to types.AppError
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return types.NewAppError(types.ErrCodeUpstreamFetch, "rate limiter wait aborted", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	var lastResp *http.Response
	var lastErr error

	maxAttempts := 1 + c.retryPolicy.MaxRetries
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			// 5xx and 429 count as failures for the circuit breaker.
			if r.StatusCode >= 500 {
				return r, fmt.Errorf("upstream returned %d", r.StatusCode)
			}
			if r.StatusCode == http.StatusTooManyRequests {
				return r, fmt.Errorf("upstream returned 429")
			}
			return r, nil
		})

		if err == nil {
			return c.decode(path, resp, out)
		}

		lastErr = err
		if resp != nil {
			if attempt < maxAttempts-1 {
				resp.Body.Close()
			} else {
				lastResp = resp
			}
		}

		// An open breaker will not recover within this call; stop retrying.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}

		if attempt < maxAttempts-1 {
			c.sleepFn(c.computeBackoff(attempt, resp))
		}
	}

	if lastResp != nil {
		lastResp.Body.Close()
	}

	return c.mapError(path, lastResp, lastErr)
}

// decode consumes the response body and unmarshals the document. Non-2xx
// statuses that survived the retry loop (plain 4xx) are fetch errors.
func (c *Client) decode(path string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return types.NewAppError(types.ErrCodeUpstreamFetch,
			fmt.Sprintf("GET %s returned %d", path, resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewAppError(types.ErrCodeUpstreamDecode,
			fmt.Sprintf("GET %s: malformed response body", path), err)
	}
	return nil
}

// computeBackoff determines the wait before the next retry attempt. It
// respects the Retry-After header if present, otherwise uses exponential
// backoff with full jitter clamped to [MinWait, MaxWait].
func (c *Client) computeBackoff(attempt int, resp *http.Response) time.Duration {
	if resp != nil {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
				wait := time.Duration(seconds) * time.Second
				if wait > c.retryPolicy.MaxWait {
					wait = c.retryPolicy.MaxWait
				}
				return wait
			}
		}
	}

	base := float64(c.retryPolicy.MinWait) * math.Pow(2, float64(attempt))
	maxWait := float64(c.retryPolicy.MaxWait)
	if base > maxWait {
		base = maxWait
	}

	minWait := float64(c.retryPolicy.MinWait)
	if base <= minWait {
		return c.retryPolicy.MinWait
	}
	jittered := minWait + rand.Float64()*(base-minWait)
	return time.Duration(jittered)
}

// mapError translates HTTP-level failures into domain-level AppErrors. Every
// code produced here is transient: the poll loop treats the fetch as "no
// data this tick" and keeps running.
func (c *Client) mapError(path string, resp *http.Response, err error) *types.AppError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.NewAppError(types.ErrCodeUpstreamUnavailable,
			"circuit breaker is open; upstream unavailable", err)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return types.NewAppError(types.ErrCodeUpstreamRateLimited,
				"upstream rate limit exceeded", err)
		case resp.StatusCode >= 500:
			return types.NewAppError(types.ErrCodeUpstreamUnavailable,
				fmt.Sprintf("GET %s returned %d after retries", path, resp.StatusCode), err)
		}
	}

	return types.NewAppError(types.ErrCodeUpstreamFetch,
		fmt.Sprintf("GET %s failed", path), err)
}
