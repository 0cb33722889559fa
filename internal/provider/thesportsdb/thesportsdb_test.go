package thesportsdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/provider"
)

const testPerMinute = 6000

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", testPerMinute, slog.New(slog.DiscardHandler))
}

func scheduleBody(league string, n int) string {
	body := `{"events": [`
	for i := 0; i < n; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{
			"idEvent": "%s-%d",
			"strHomeTeam": "Home %d",
			"strAwayTeam": "Away %d",
			"strTimestamp": "2025-04-10T18:00:00",
			"strVenue": "Stadium %d",
			"strLeague": %q
		}`, league, i, i, i, i, league)
	}
	return body + `]}`
}

func TestFetchMissingKeyIsUnavailable(t *testing.T) {
	a := New("http://unused.invalid", "", testPerMinute, slog.New(slog.DiscardHandler))
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
	_, err := a.Fetch(context.Background(), event.SportBasketball)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrRateLimited)
}

func TestFetchGarbageBodyIsMalformed(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	_, err := a.Fetch(context.Background(), event.SportCricket)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrMalformed)
}

func TestFetchMapsScheduleRecords(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/eventsnextleague.php", r.URL.Path)
		assert.Equal(t, "4391", r.URL.Query().Get("id"))
		w.Write([]byte(`{"events": [
			{
				"idEvent": "602133",
				"strHomeTeam": "Kansas City Chiefs",
				"strAwayTeam": "Buffalo Bills",
				"strTimestamp": "2025-04-10T18:00:00",
				"strVenue": "Arrowhead Stadium",
				"strLeague": "NFL"
			},
			{
				"strHomeTeam": "",
				"strAwayTeam": ""
			}
		]}`))
	}))

	events, err := a.Fetch(context.Background(), event.SportFootball)
	require.NoError(t, err)
	require.Len(t, events, 1, "records without identity fields are skipped")

	e := events[0]
	assert.Equal(t, "602133", e.ID)
	assert.Equal(t, event.SportFootball, e.Sport)
	assert.Equal(t, "Kansas City Chiefs", e.HomeTeam)
	assert.Equal(t, "Buffalo Bills", e.AwayTeam)
	assert.Equal(t, "2025-04-10T18:00:00", e.RawStart)
	assert.Equal(t, "Arrowhead Stadium", e.Venue)
	assert.Equal(t, "NFL", e.Competition)
	assert.Equal(t, event.StatusScheduled, e.Status)
}

func TestFetchAllToleratesPartialFailure(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case leagueIDs[event.SportFootball]:
			w.Write([]byte(scheduleBody("NFL", 2)))
		case leagueIDs[event.SportBasketball]:
			w.WriteHeader(http.StatusInternalServerError)
		case leagueIDs[event.SportCricket]:
			w.Write([]byte(scheduleBody("IPL", 1)))
		default:
			t.Errorf("unexpected league id %q", r.URL.Query().Get("id"))
		}
	}))

	events, err := a.Fetch(context.Background(), event.CategoryAll)
	require.NoError(t, err, "one failed league must not sink the others")
	require.Len(t, events, 3)
	assert.Equal(t, event.SportFootball, events[0].Sport)
	assert.Equal(t, event.SportFootball, events[1].Sport)
	assert.Equal(t, event.SportCricket, events[2].Sport)
}

func TestFetchAllFailsWhenEveryLeagueFails(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := a.Fetch(context.Background(), event.CategoryAll)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestFetchIgnoresUnknownCategory(t *testing.T) {
	var calls int
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	events, err := a.Fetch(context.Background(), "hockey")
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Zero(t, calls)
}
