// Package handler provides HTTP handlers for all API endpoints.
// Handlers read from the feed service and the chat service; neither is
// written from this layer.
package handler

import (
	"net/http"
	"time"

	"github.com/albapepper/matchfeed/internal/api/respond"
	"github.com/albapepper/matchfeed/internal/chat"
	"github.com/albapepper/matchfeed/internal/config"
	"github.com/albapepper/matchfeed/internal/feed"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	feed *feed.Service
	chat *chat.Service
	cfg  *config.Config
}

// New creates a Handler with shared dependencies.
func New(f *feed.Service, c *chat.Service, cfg *config.Config) *Handler {
	return &Handler{
		feed: f,
		chat: c,
		cfg:  cfg,
	}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Matchfeed API",
		"version": "1.0.0",
		"status":  "running",
		"sports":  config.Sports(),
		"features": []string{
			"provider_fallback_chains",
			"ttl_event_cache",
			"rule_based_chat",
			"ai_assist_fallback",
		},
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns feed cache statistics.
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.feed.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
