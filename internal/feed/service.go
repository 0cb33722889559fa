// Package feed aggregates provider adapters into a normalized, time-correct,
// cached event feed. It owns the only mutable state in the system: the
// per-category cache table. No error from an adapter ever escapes this
// package — the worst case for a category is an empty list.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/albapepper/matchfeed/internal/event"
	"github.com/albapepper/matchfeed/internal/provider"
)

const (
	defaultTTL         = time.Hour
	defaultTimeout     = 5 * time.Second
	defaultMaxPerSport = 5
)

// entry is one cached per-category snapshot. Immutable after store; readers
// share the slice and must not mutate it.
type entry struct {
	events    []event.Event
	fetchedAt time.Time
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	TTL            time.Duration
	AdapterTimeout time.Duration
	MaxPerSport    int
	AlwaysFresh    []string // categories re-aggregated on every call
	Order          []string // concrete categories, aggregation/output order
	Now            func() time.Time
	Logger         *slog.Logger
}

// Service serves ordered upcoming events per category, refreshing from the
// provider chains when the cache is stale.
type Service struct {
	chains      map[string][]provider.Provider
	order       []string
	ttl         time.Duration
	timeout     time.Duration
	maxPerSport int
	alwaysFresh map[string]bool
	allFresh    bool // "all" contains an always-fresh member
	now         func() time.Time
	logger      *slog.Logger

	mu      sync.RWMutex
	entries map[string]*entry

	refreshMu sync.Mutex
	refresh   map[string]*sync.Mutex
}

// New creates a feed service over the given provider chains.
func New(chains map[string][]provider.Provider, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.AdapterTimeout <= 0 {
		opts.AdapterTimeout = defaultTimeout
	}
	if opts.MaxPerSport <= 0 {
		opts.MaxPerSport = defaultMaxPerSport
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.Order) == 0 {
		for cat := range chains {
			opts.Order = append(opts.Order, cat)
		}
		sort.Strings(opts.Order)
	}

	fresh := make(map[string]bool, len(opts.AlwaysFresh))
	for _, cat := range opts.AlwaysFresh {
		fresh[strings.ToLower(cat)] = true
	}

	return &Service{
		chains:      chains,
		order:       opts.Order,
		ttl:         opts.TTL,
		timeout:     opts.AdapterTimeout,
		maxPerSport: opts.MaxPerSport,
		alwaysFresh: fresh,
		allFresh:    len(fresh) > 0,
		now:         opts.Now,
		logger:      opts.Logger,
		entries:     make(map[string]*entry),
		refresh:     make(map[string]*sync.Mutex),
	}
}

// Events returns the ordered upcoming events for a category ("all" or a
// concrete sport). The result is served from cache within the TTL window;
// always-fresh categories re-aggregate on every call. The per-sport cap is
// applied on every call, cached or not.
func (s *Service) Events(ctx context.Context, category string) []event.Event {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = event.CategoryAll
	}
	// Unknown categories never touch the cache or the refresh-lock table;
	// caller-controlled strings must not grow either map.
	if category != event.CategoryAll {
		if _, ok := s.chains[category]; !ok {
			return nil
		}
	}

	if snap, ok := s.freshSnapshot(category); ok {
		return s.upcoming(snap)
	}

	// At most one in-flight refresh per category. A reader that loses the
	// race serves the previous snapshot, stale or not, instead of blocking.
	lock := s.refreshLock(category)
	if !lock.TryLock() {
		if snap, ok := s.anySnapshot(category); ok {
			return s.upcoming(snap)
		}
		lock.Lock()
	}
	defer lock.Unlock()

	// The refresh we waited on may have run already.
	if snap, ok := s.freshSnapshot(category); ok {
		return s.upcoming(snap)
	}

	events := s.aggregate(ctx, category)
	now := s.now()
	for i := range events {
		event.Canonicalize(&events[i], now)
	}
	// Stable: ties keep provider order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	s.mu.Lock()
	s.entries[category] = &entry{events: events, fetchedAt: now}
	s.mu.Unlock()

	return s.upcoming(events)
}

// isAlwaysFresh reports whether the category bypasses the TTL check.
// "all" is a derived union, invalidated whenever any member is.
func (s *Service) isAlwaysFresh(category string) bool {
	if category == event.CategoryAll {
		return s.allFresh
	}
	return s.alwaysFresh[category]
}

func (s *Service) freshSnapshot(category string) ([]event.Event, bool) {
	if s.isAlwaysFresh(category) {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[category]
	if !ok || s.now().Sub(e.fetchedAt) >= s.ttl {
		return nil, false
	}
	return e.events, true
}

func (s *Service) anySnapshot(category string) ([]event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[category]
	if !ok {
		return nil, false
	}
	return e.events, true
}

func (s *Service) refreshLock(category string) *sync.Mutex {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	if m, ok := s.refresh[category]; ok {
		return m
	}
	m := &sync.Mutex{}
	s.refresh[category] = m
	return m
}

// aggregate walks the fallback chain for a concrete category, or fans out
// per-sport for "all". Never returns an error: a fully failed category is an
// empty slice.
func (s *Service) aggregate(ctx context.Context, category string) []event.Event {
	if category != event.CategoryAll {
		return s.aggregateConcrete(ctx, category)
	}

	// One independent chain walk per concrete sport. Partial failure in one
	// sport must not block the others, and output order must stay stable, so
	// results land in a slot per category.
	results := make([][]event.Event, len(s.order))
	var wg sync.WaitGroup
	for i, sport := range s.order {
		wg.Add(1)
		go func(i int, sport string) {
			defer wg.Done()
			results[i] = s.aggregateConcrete(ctx, sport)
		}(i, sport)
	}
	wg.Wait()

	var all []event.Event
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// aggregateConcrete walks the category's provider chain in priority order and
// accepts the first non-empty result. Each adapter call runs under its own
// timeout; a timeout counts as unavailable and the walk continues.
func (s *Service) aggregateConcrete(ctx context.Context, category string) []event.Event {
	chain, ok := s.chains[category]
	if !ok {
		s.logger.Warn("No provider chain for category", "category", category)
		return nil
	}

	outcomes := make([]provider.Outcome, 0, len(chain))
	for _, p := range chain {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		events, err := p.Fetch(cctx, category)
		cancel()

		if err != nil && errors.Is(cctx.Err(), context.DeadlineExceeded) {
			err = provider.ErrUnavailable
		}
		o := provider.Outcome{Provider: p.Name(), Events: events, Err: err}
		outcomes = append(outcomes, o)

		if o.Failed() {
			s.logger.Warn("Provider failed, falling back",
				"category", category, "provider", p.Name(), "error", err)
			continue
		}
		if o.Accepted() {
			s.logger.Info("Provider served events",
				"category", category, "provider", p.Name(),
				"count", len(events), "attempts", len(outcomes))
			return events
		}
		s.logger.Info("Provider returned no events, falling back",
			"category", category, "provider", p.Name())
	}

	s.logger.Warn("All providers exhausted", "category", category, "attempts", len(outcomes))
	return nil
}

// upcoming caps the feed at maxPerSport events per sport, earliest first.
// Groups keep the order sports first appear in the (already sorted) input
// concatenated per sport, mirroring the cap applied on every read.
func (s *Service) upcoming(events []event.Event) []event.Event {
	groups := make(map[string][]event.Event)
	var order []string
	for _, e := range events {
		if _, seen := groups[e.Sport]; !seen {
			order = append(order, e.Sport)
		}
		groups[e.Sport] = append(groups[e.Sport], e)
	}

	out := make([]event.Event, 0, len(events))
	for _, sport := range order {
		g := groups[sport]
		if len(g) > s.maxPerSport {
			g = g[:s.maxPerSport]
		}
		out = append(out, g...)
	}
	return out
}

// Stats reports cache state for health endpoints.
func (s *Service) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	categories := make(map[string]interface{}, len(s.entries))
	for cat, e := range s.entries {
		categories[cat] = map[string]interface{}{
			"events":     len(e.events),
			"fetched_at": e.fetchedAt.UTC().Format(time.RFC3339),
			"stale":      now.Sub(e.fetchedAt) >= s.ttl || s.isAlwaysFresh(cat),
		}
	}
	return map[string]interface{}{
		"ttl_seconds":  int(s.ttl.Seconds()),
		"always_fresh": s.alwaysFreshList(),
		"categories":   categories,
	}
}

func (s *Service) alwaysFreshList() []string {
	out := make([]string, 0, len(s.alwaysFresh))
	for _, cat := range s.order {
		if s.alwaysFresh[cat] {
			out = append(out, cat)
		}
	}
	return out
}
