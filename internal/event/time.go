package event

import (
	"fmt"
	"time"
)

// Display timezone handles. LoadLocation can fail on stripped-down images
// without tzdata, so each falls back to a fixed offset.
var (
	IST     = loadLocation("Asia/Kolkata", "IST", 5*3600+1800)
	Eastern = loadLocation("America/New_York", "EST", -5*3600)
	London  = loadLocation("Europe/London", "BST", 3600)
)

func loadLocation(name, abbr string, offsetSeconds int) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone(abbr, offsetSeconds)
}

// Timestamp layouts accepted from upstream providers, tried in order.
// Layouts without a zone are interpreted as UTC.
var startLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStart parses a provider timestamp into a UTC instant. Zone-less
// timestamps are assumed UTC.
func ParseStart(raw string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// Canonicalize resolves the event's start time to a canonical UTC instant and
// derives the IST display fields. A missing or unparseable timestamp sets the
// sentinel rather than returning an error, so the record is never dropped.
func Canonicalize(e *Event, now time.Time) {
	if e.StartTime.IsZero() {
		if e.RawStart == "" {
			e.StartTime = MaxInstant
			return
		}
		t, err := ParseStart(e.RawStart)
		if err != nil {
			e.StartTime = MaxInstant
			return
		}
		e.StartTime = t
	}
	e.StartTime = e.StartTime.UTC()
	if !e.HasValidStart() {
		return
	}
	ist := e.StartTime.In(IST)
	e.DisplayTime = ist.Format("2006-01-02 15:04 IST")
	e.Relative = relativeDay(ist, now.In(IST))
}

// relativeDay renders the calendar-day distance between two IST times.
func relativeDay(t, now time.Time) string {
	days := int(dayOf(t).Sub(dayOf(now)).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AdjustToWindow projects a historical fixture date onto the calendar window
// around ref, preserving its clock time. Dates that would land in the past
// are pushed 7-21 days forward, keyed off the fixture's day-of-month so the
// result stays deterministic for a fixed ref.
func AdjustToWindow(fixture, ref time.Time) time.Time {
	y, m, d := ref.In(fixture.Location()).Date()
	refMidnight := time.Date(y, m, d, 0, 0, 0, 0, fixture.Location())

	adjusted := time.Date(y, fixture.Month(), fixture.Day(),
		fixture.Hour(), fixture.Minute(), 0, 0, fixture.Location())
	if adjusted.Before(refMidnight) {
		offset := 7 + fixture.Day()%14
		shifted := refMidnight.AddDate(0, 0, offset)
		adjusted = time.Date(shifted.Year(), shifted.Month(), shifted.Day(),
			fixture.Hour(), fixture.Minute(), 0, 0, fixture.Location())
	}
	return adjusted
}
