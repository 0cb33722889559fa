// Package cricapi provides the CricAPI adapter for cricket matches.
//
// CricAPI wraps every payload in a status envelope; a 200 with
// status != "success" still means failure (expired keys report this way).
package cricapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/provider"
)

// DefaultBaseURL is the CricAPI v1 root.
const DefaultBaseURL = "https://api.cricapi.com/v1"

// Match types served to the feed. Anything else (practice games, unknown
// formats) is skipped.
var matchTypes = map[string]string{
	"t20":  "T20",
	"odi":  "ODI",
	"test": "Test",
}

// Adapter fetches upcoming cricket matches from CricAPI.
type Adapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates the CricAPI adapter.
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
func (a *Adapter) Name() string { return "cricapi" }

type matchesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		ID        string   `json:"id"`
		Teams     []string `json:"teams"`
		Date      string   `json:"date"`
		DateTime  string   `json:"dateTimeGMT"`
		Venue     string   `json:"venue"`
		MatchType string   `json:"matchType"`
	} `json:"data"`
}

// Fetch implements provider.Provider for the cricket category.
func (a *Adapter) Fetch(ctx context.Context, category string) ([]event.Event, error) {
	if category != event.SportCricket && category != event.CategoryAll {
		return nil, nil
	}
	if a.apiKey == "" {
		return nil, fmt.Errorf("cricket API key not configured: %w", provider.ErrUnavailable)
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("apikey", a.apiKey)
	params.Set("offset", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/matches?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request /matches: %v: %w", err, provider.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %v: %w", err, provider.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError("cricapi /matches", resp.StatusCode)
	}

	var result matchesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, provider.MalformedError("cricapi /matches", err)
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("cricapi error %q: %w", result.Message, provider.ErrUnavailable)
	}

	events := make([]event.Event, 0, len(result.Data))
	for _, m := range result.Data {
		format, ok := matchTypes[m.MatchType]
		if !ok {
			continue
		}

		e := event.Event{
			ID:       m.ID,
			Sport:    event.SportCricket,
			HomeTeam: event.UnknownTeam,
			AwayTeam: event.UnknownTeam,
			RawStart: m.DateTime,
			Venue:    m.Venue,
			Status:   event.StatusScheduled,
			Format:   format,
		}
		if e.RawStart == "" {
			e.RawStart = m.Date
		}
		if len(m.Teams) > 0 {
			e.HomeTeam = m.Teams[0]
		}
		if len(m.Teams) > 1 {
			e.AwayTeam = m.Teams[1]
		}
		if e.Venue == "" {
			e.Venue = "Unknown Stadium"
		}
		events = append(events, e)
	}
	return events, nil
}
