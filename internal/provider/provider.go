// Package provider defines the uniform contract between upstream data
// adapters and the feed layer. Every adapter — real HTTP APIs and the
// synthetic generators alike — implements Provider; the feed layer walks an
// ordered chain of them per sport and takes the first non-empty result.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/albapepper/matchfeed/internal/event"
)

// Provider is a single upstream source of events for one or more sports.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, category string) ([]event.Event, error)
}

// Adapter failure taxonomy. All of these are recovered by the fallback chain
// and never surface past the feed layer; they exist so logs can tell an auth
// problem from a quota problem from garbage on the wire.
var (
	ErrUnavailable = errors.New("upstream unavailable")
	ErrRateLimited = errors.New("upstream rate limited")
	ErrMalformed   = errors.New("upstream malformed response")
)

// StatusError maps a non-200 upstream response to the failure taxonomy.
func StatusError(name string, code int) error {
	switch {
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%s returned %d: %w", name, code, ErrRateLimited)
	default:
		return fmt.Errorf("%s returned %d: %w", name, code, ErrUnavailable)
	}
}

// MalformedError wraps a decode failure in the taxonomy.
func MalformedError(name string, err error) error {
	return fmt.Errorf("%s decode: %v: %w", name, err, ErrMalformed)
}

// Outcome is the tagged result of one adapter attempt. The chain walk records
// one per adapter so "no data" and "adapter error" stay distinguishable even
// though both advance the chain.
type Outcome struct {
	Provider string
	Events   []event.Event
	Err      error
}

// Failed reports whether the adapter errored (as opposed to returning an
// empty but valid result).
func (o Outcome) Failed() bool { return o.Err != nil }

// Accepted reports whether this outcome terminates the chain walk.
func (o Outcome) Accepted() bool { return o.Err == nil && len(o.Events) > 0 }
