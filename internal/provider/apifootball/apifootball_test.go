package apifootball

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

const testPerMinute = 6000

var testNow = time.Date(2025, 4, 8, 12, 0, 0, 0, time.UTC)

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", testPerMinute, slog.New(slog.DiscardHandler),
		func() time.Time { return testNow })
}

const teamsBody = `{"response": [
	{"team": {"id": 42, "name": "Arsenal", "country": "England"}},
	{"team": {"id": 49, "name": "Chelsea", "country": "England"}},
	{"team": {"id": 40, "name": "Liverpool", "country": "England"}},
	{"team": {"id": 50, "name": "Manchester City", "country": "England"}}
]}`

func TestFetchMissingKeyIsUnavailable(t *testing.T) {
	a := New("http://unused.invalid", "", testPerMinute, slog.New(slog.DiscardHandler), nil)
	_, err := a.Fetch(context.Background(), event.SportFootball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestFetchUnauthorizedIsUnavailable(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	_, err := a.Fetch(context.Background(), event.SportFootball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
	assert.NotErrorIs(t, err, provider.ErrRateLimited)
}

func TestFetchThrottledIsRateLimited(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	_, err := a.Fetch(context.Background(), event.SportFootball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrRateLimited)
}

func TestFetchMapsFixtures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fixtures", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		w.Write([]byte(`{"response": [{
			"fixture": {
				"id": 1035043,
				"date": "2025-04-12T15:00:00+00:00",
				"venue": {"name": "Old Trafford"},
				"status": {"long": "Match Finished"}
			},
			"league": {"name": "Premier League"},
			"teams": {"home": {"name": "Manchester United"}, "away": {"name": "Everton"}},
			"goals": {"home": 3, "away": 1}
		}]}`))
	})
	a := newTestAdapter(t, mux)

	events, err := a.Fetch(context.Background(), event.SportFootball)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "1035043", e.ID)
	assert.Equal(t, event.SportFootball, e.Sport)
	assert.Equal(t, "Manchester United", e.HomeTeam)
	assert.Equal(t, "Everton", e.AwayTeam)
	assert.Equal(t, "Old Trafford", e.Venue)
	assert.Equal(t, "Match Finished", e.Status)
	assert.Equal(t, "Premier League", e.Competition)
	assert.Equal(t, "3-1", e.Score)
	assert.Equal(t, "2025-04-12T15:00:00+00:00", e.RawStart)
}

func TestFetchZeroFixturesFallsBackToTeams(t *testing.T) {
	var teamsCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/fixtures", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": []}`))
	})
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		teamsCalls++
		w.Write([]byte(teamsBody))
	})
	a := newTestAdapter(t, mux)

	events, err := a.Fetch(context.Background(), event.SportFootball)
	require.NoError(t, err)
	assert.Equal(t, 1, teamsCalls)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "football-sample-0", first.ID)
	assert.Equal(t, "Arsenal", first.HomeTeam)
	assert.Equal(t, "Chelsea", first.AwayTeam)
	assert.Equal(t, "England Stadium", first.Venue)
	assert.Equal(t, event.StatusUpcoming, first.Status)
	assert.Equal(t, time.Date(2025, 4, 8, 15, 0, 0, 0, time.UTC), first.StartTime)

	second := events[1]
	assert.Equal(t, "football-sample-1", second.ID)
	assert.Equal(t, "Liverpool", second.HomeTeam)
	assert.Equal(t, time.Date(2025, 4, 9, 15, 0, 0, 0, time.UTC), second.StartTime)
}

func TestFetchMalformedFixturesFallsBackToTeams(t *testing.T) {
	var teamsCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/fixtures", func(w http.ResponseWriter, r *http.Request) {
		// Valid envelope, garbage rows: the decode failure must still reach
		// the teams fallback instead of surfacing as a hard error.
		w.Write([]byte(`{"response": "garbage"}`))
	})
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		teamsCalls++
		w.Write([]byte(teamsBody))
	})
	a := newTestAdapter(t, mux)

	events, err := a.Fetch(context.Background(), event.SportFootball)
	require.NoError(t, err)
	assert.Equal(t, 1, teamsCalls)
	require.Len(t, events, 2)
	assert.Equal(t, "football-sample-0", events[0].ID)
}

func TestFetchIgnoresForeignCategory(t *testing.T) {
	var calls int
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	events, err := a.Fetch(context.Background(), event.SportBasketball)
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Zero(t, calls)
}
