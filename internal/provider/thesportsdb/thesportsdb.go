// Package thesportsdb provides the TheSportsDB adapter. One API serves every
// sport through per-league schedule endpoints, so this adapter covers all
// three categories with a league-ID map.
package thesportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/provider"
)

// DefaultBaseURL is the TheSportsDB JSON API root. The API key is a path
// segment rather than a header.
const DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

// League IDs per sport: NFL, NBA, IPL.
var leagueIDs = map[string]string{
	event.SportFootball:   "4391",
	event.SportBasketball: "4387",
	event.SportCricket:    "4546",
}

// Order matters for the umbrella category so output stays deterministic.
var sportOrder = []string{event.SportFootball, event.SportBasketball, event.SportCricket}

// fieldMap declares TheSportsDB's event schema. The schedule endpoint returns
// flat records, which makes this adapter the natural fit for the generic
// field-mapping normalizer.
var fieldMap = event.FieldMap{
	ID:            "idEvent",
	HomeTeam:      "strHomeTeam",
	AwayTeam:      "strAwayTeam",
	StartTime:     "strTimestamp",
	Venue:         "strVenue",
	Competition:   "strLeague",
	DefaultStatus: event.StatusScheduled,
}

// Adapter fetches upcoming events from TheSportsDB.
type Adapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates the TheSportsDB adapter.
func New(baseURL, apiKey string, requestsPerMinute int, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Adapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// Name implements provider.Provider.
func (a *Adapter) Name() string { return "thesportsdb" }

type scheduleResponse struct {
	Events []map[string]interface{} `json:"events"`
}

// Fetch implements provider.Provider.
func (a *Adapter) Fetch(ctx context.Context, category string) ([]event.Event, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("thesportsdb key not configured: %w", provider.ErrUnavailable)
	}

	if category != event.CategoryAll {
		if _, ok := leagueIDs[category]; !ok {
			return nil, nil
		}
		return a.fetchLeague(ctx, category)
	}

	var all []event.Event
	var lastErr error
	for _, sport := range sportOrder {
		events, err := a.fetchLeague(ctx, sport)
		if err != nil {
			a.logger.Warn("TheSportsDB league fetch failed", "sport", sport, "error", err)
			lastErr = err
			continue
		}
		all = append(all, events...)
	}
	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}

func (a *Adapter) fetchLeague(ctx context.Context, sport string) ([]event.Event, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/%s/eventsnextleague.php?id=%s", a.baseURL, a.apiKey, leagueIDs[sport])
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request eventsnextleague: %v: %w", err, provider.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %v: %w", err, provider.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError("thesportsdb eventsnextleague", resp.StatusCode)
	}

	var result scheduleResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, provider.MalformedError("thesportsdb eventsnextleague", err)
	}

	events := make([]event.Event, 0, len(result.Events))
	for _, raw := range result.Events {
		e, err := event.Normalize(sport, raw, fieldMap)
		if err != nil {
			a.logger.Warn("TheSportsDB record skipped", "sport", sport, "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
