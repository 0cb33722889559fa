// Package event defines the canonical sports event record that every
// provider normalizes into. These structs are the contract between provider
// adapters and the feed layer — adapters output these, the feed layer sorts,
// caches and serves them.
//
// Adding a new provider means producing these types; the feed layer and the
// chat formatter never change.
package event

import "time"

// Sport category identifiers. "all" is the umbrella category handled by the
// feed layer, never stored on an Event.
const (
	SportFootball   = "football"
	SportBasketball = "basketball"
	SportCricket    = "cricket"
	CategoryAll     = "all"
)

// Event statuses. Upstream status strings outside this set are kept verbatim
// for display (API-Football long statuses like "Match Finished").
const (
	StatusScheduled  = "Scheduled"
	StatusUpcoming   = "Upcoming"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusUnknown    = "Unknown status"
)

// MaxInstant is the sentinel start time for events whose timestamp could not
// be resolved. It sorts after every real instant so broken dates land at the
// end of the feed instead of faulting.
var MaxInstant = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// Event is the canonical event shape served by the feed.
type Event struct {
	ID          string    `json:"id"`
	Sport       string    `json:"sport"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	StartTime   time.Time `json:"date"`
	RawStart    string    `json:"raw_date,omitempty"` // provider timestamp as received
	DisplayTime string    `json:"ist_date,omitempty"`
	Relative    string    `json:"relative_time,omitempty"`
	Venue       string    `json:"location"`
	Status      string    `json:"status"`
	Competition string    `json:"competition,omitempty"`
	Score       string    `json:"score,omitempty"`
	Format      string    `json:"format,omitempty"` // cricket match type (T20, ODI, Test)
}

// HasValidStart reports whether the event's start time resolved to a real
// instant rather than the sentinel.
func (e Event) HasValidStart() bool {
	return !e.StartTime.IsZero() && !e.StartTime.Equal(MaxInstant)
}
