package handler

import (
	"net/http"

	"github.com/albapepper/matchfeed/internal/api/respond"
	"github.com/albapepper/matchfeed/internal/event"
)

// GetEvents returns the upcoming events for a category. The "type" query
// parameter selects a sport or "all" (the default). Unknown categories yield
// an empty list rather than an error; the feed is never a fault source.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("type")
	if category == "" {
		category = event.CategoryAll
	}

	events := h.feed.Events(r.Context(), category)
	if events == nil {
		events = []event.Event{}
	}
	respond.WriteCacheable(w, events, h.cfg.CacheTTL)
}
