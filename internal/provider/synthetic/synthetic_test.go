package synthetic

import (
	"context"
	"testing"
	"time"

	"github.com/albapepper/matchfeed/internal/event"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGeneratorsNeverEmpty(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	gens := []struct {
		gen   *Generator
		sport string
	}{
		{NewFootball(fixedClock(now)), event.SportFootball},
		{NewBasketball(fixedClock(now)), event.SportBasketball},
		{NewCricket(fixedClock(now)), event.SportCricket},
	}

	for _, g := range gens {
		events, err := g.gen.Fetch(context.Background(), g.sport)
		if err != nil {
			t.Fatalf("%s: Fetch() error: %v", g.gen.Name(), err)
		}
		if len(events) == 0 {
			t.Fatalf("%s: generator returned no events", g.gen.Name())
		}
		for _, e := range events {
			if e.Sport != g.sport {
				t.Errorf("%s: event %s has sport %q", g.gen.Name(), e.ID, e.Sport)
			}
			if !e.HasValidStart() {
				t.Errorf("%s: event %s has no valid start", g.gen.Name(), e.ID)
			}
		}
	}
}

func TestGeneratorSkipsForeignCategory(t *testing.T) {
	gen := NewCricket(fixedClock(time.Now()))
	events, err := gen.Fetch(context.Background(), event.SportFootball)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if events != nil {
		t.Fatalf("expected nil for foreign category, got %d events", len(events))
	}
}

func TestGeneratorDeterministicForFixedClock(t *testing.T) {
	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	a, _ := NewFootball(fixedClock(now)).Fetch(context.Background(), event.SportFootball)
	b, _ := NewFootball(fixedClock(now)).Fetch(context.Background(), event.SportFootball)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestGeneratorProjectsIntoFuture(t *testing.T) {
	// Ref well past the table's April dates forces the forward projection.
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	events, _ := NewBasketball(fixedClock(now)).Fetch(context.Background(), event.SportBasketball)

	for _, e := range events {
		if !e.StartTime.After(now.AddDate(0, 0, -1)) {
			t.Errorf("event %s projected into the past: %v", e.ID, e.StartTime)
		}
	}
}

func TestCricketCompetitionCarriesSeasonYear(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	events, _ := NewCricket(fixedClock(now)).Fetch(context.Background(), event.SportCricket)

	for _, e := range events {
		if e.Competition == "" || e.Format != "T20" {
			t.Fatalf("event %s: competition %q format %q", e.ID, e.Competition, e.Format)
		}
	}
	if events[0].Competition != "IPL 2025" {
		t.Fatalf("competition = %q, want IPL 2025", events[0].Competition)
	}
}
