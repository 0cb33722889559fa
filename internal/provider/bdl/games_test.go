package bdl

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/provider"
)

// testPerMinute keeps the limiter out of the way.
const testPerMinute = 6000

var testNow = time.Date(2025, 4, 8, 12, 0, 0, 0, time.UTC)

func newTestGames(t *testing.T, handler http.Handler) *Games {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "test-key", testPerMinute, slog.New(slog.DiscardHandler))
	return NewGames(client, func() time.Time { return testNow })
}

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func TestFetchUnauthorizedIsUnavailable(t *testing.T) {
	g := newTestGames(t, statusHandler(http.StatusUnauthorized))
	_, err := g.Fetch(context.Background(), event.SportBasketball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
	assert.NotErrorIs(t, err, provider.ErrRateLimited)
}

func TestFetchThrottledIsRateLimited(t *testing.T) {
	g := newTestGames(t, statusHandler(http.StatusTooManyRequests))
	_, err := g.Fetch(context.Background(), event.SportBasketball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrRateLimited)
}

func TestFetchGarbageBodyIsMalformed(t *testing.T) {
	g := newTestGames(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [not json`))
	}))
	_, err := g.Fetch(context.Background(), event.SportBasketball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrMalformed)
}

func TestFetchMapsGames(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{
			"id": 12,
			"date": "2026-01-15T19:00:00Z",
			"home_team": {"full_name": "Boston Celtics", "city": "Boston"},
			"visitor_team": {"full_name": "Miami Heat", "city": "Miami"},
			"home_team_score": 100,
			"visitor_team_score": 98
		}], "meta": {"next_cursor": null}}`))
	})
	g := newTestGames(t, mux)

	events, err := g.Fetch(context.Background(), event.SportBasketball)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "basketball-12", e.ID)
	assert.Equal(t, event.SportBasketball, e.Sport)
	assert.Equal(t, "Boston Celtics", e.HomeTeam)
	assert.Equal(t, "Miami Heat", e.AwayTeam)
	assert.Equal(t, "Boston Arena", e.Venue)
	assert.Equal(t, "NBA", e.Competition)
	assert.Equal(t, "100 - 98", e.Score)
	assert.Equal(t, "2026-01-15T19:00:00Z", e.RawStart)
}

func TestFetchEmptySeasonsFallBackToTeams(t *testing.T) {
	var gamesCalls, teamsCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		gamesCalls++
		w.Write([]byte(`{"data": [], "meta": {"next_cursor": null}}`))
	})
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		teamsCalls++
		w.Write([]byte(`{"data": [
			{"full_name": "Boston Celtics", "city": "Boston"},
			{"full_name": "Miami Heat", "city": "Miami"},
			{"full_name": "Denver Nuggets", "city": "Denver"},
			{"full_name": "Phoenix Suns", "city": "Phoenix"}
		], "meta": {"next_cursor": null}}`))
	})
	g := newTestGames(t, mux)

	events, err := g.Fetch(context.Background(), event.SportBasketball)
	require.NoError(t, err)
	assert.Equal(t, 2, gamesCalls, "current and previous season")
	assert.Equal(t, 1, teamsCalls)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "basketball-0", first.ID)
	assert.Equal(t, "Boston Celtics", first.HomeTeam)
	assert.Equal(t, "Miami Heat", first.AwayTeam)
	assert.Equal(t, "Boston Arena", first.Venue)
	assert.Equal(t, event.StatusUpcoming, first.Status)
	// 05:30 IST on the fixed test day is midnight UTC.
	assert.Equal(t, time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC), first.StartTime)

	second := events[1]
	assert.Equal(t, "basketball-1", second.ID)
	assert.Equal(t, "Denver Nuggets", second.HomeTeam)
	assert.Equal(t, "Phoenix Suns", second.AwayTeam)
	assert.True(t, second.StartTime.After(first.StartTime))
}

func TestFetchIgnoresForeignCategory(t *testing.T) {
	var calls int
	g := newTestGames(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	events, err := g.Fetch(context.Background(), event.SportCricket)
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Zero(t, calls)
}
