package chat

import (
	"fmt"
	"strings"

	"github.com/albapepper/matchfeed/internal/event"
)

// maxFormatted caps how many events a single reply renders. Anything beyond
// it is summarized by a trailing count.
const maxFormatted = 5

const replyDateLayout = "Monday, January 02, 2006 at 03:04 PM"

// formatDate renders an event's start for a chat reply. The pre-rendered
// display string wins when present; otherwise the canonical instant is
// formatted, and an event whose start never parsed falls back to the raw
// upstream string rather than being dropped.
func formatDate(e event.Event) string {
	if e.DisplayTime != "" {
		return e.DisplayTime
	}
	if e.HasValidStart() {
		return e.StartTime.Format(replyDateLayout)
	}
	if e.RawStart != "" {
		if t, err := event.ParseStart(e.RawStart); err == nil {
			return t.Format(replyDateLayout)
		}
		return e.RawStart
	}
	return "Date not available"
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// FormatEvents renders an event list under a sport label. The label "all"
// gets the generic heading.
func FormatEvents(events []event.Event, label string) string {
	if len(events) == 0 {
		return fmt.Sprintf("No %s events found at the moment. Please check back later.", label)
	}

	var b strings.Builder
	if label == event.CategoryAll {
		b.WriteString("Here are some upcoming sports events:\n\n")
	} else {
		fmt.Fprintf(&b, "Here are some upcoming %s events:\n\n", label)
	}

	for i, e := range events {
		if i == maxFormatted {
			break
		}
		home := orUnknown(e.HomeTeam, event.UnknownTeam)
		away := orUnknown(e.AwayTeam, event.UnknownTeam)
		venue := orUnknown(e.Venue, event.UnknownVenue)
		status := orUnknown(e.Status, event.StatusUnknown)

		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, away, home)
		fmt.Fprintf(&b, "   %s\n", formatDate(e))
		if e.Competition != "" {
			fmt.Fprintf(&b, "   %s - %s - %s\n\n", e.Competition, venue, status)
		} else {
			fmt.Fprintf(&b, "   %s - %s\n\n", venue, status)
		}
	}

	if len(events) > maxFormatted {
		fmt.Fprintf(&b, "There are %d more events available. Ask me about a specific sport or team for more details.", len(events)-maxFormatted)
	}
	return b.String()
}

// FormatTeamEvents renders a team's schedule with home/away framing. A team
// name that is a case-insensitive substring of the home field frames the
// event as home; everything else frames as away.
func FormatTeamEvents(events []event.Event, teamName string) string {
	if len(events) == 0 {
		return fmt.Sprintf("No events found for %s at the moment. Please check back later.", teamName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the upcoming events for %s:\n\n", teamName)

	needle := strings.ToLower(teamName)
	for i, e := range events {
		if i == maxFormatted {
			break
		}
		home := orUnknown(e.HomeTeam, event.UnknownTeam)
		away := orUnknown(e.AwayTeam, event.UnknownTeam)
		venue := orUnknown(e.Venue, event.UnknownVenue)
		status := orUnknown(e.Status, event.StatusUnknown)

		if strings.Contains(strings.ToLower(home), needle) {
			fmt.Fprintf(&b, "%d. vs %s (Home)\n", i+1, away)
		} else {
			fmt.Fprintf(&b, "%d. at %s (Away)\n", i+1, home)
		}
		fmt.Fprintf(&b, "   %s\n", formatDate(e))
		fmt.Fprintf(&b, "   %s - %s\n\n", venue, status)
	}

	if len(events) > maxFormatted {
		fmt.Fprintf(&b, "There are %d more events scheduled for %s.", len(events)-maxFormatted, teamName)
	}
	return b.String()
}
