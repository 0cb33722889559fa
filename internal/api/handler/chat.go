package handler

import (
	"encoding/json"
	"net/http"

	"github.com/albapepper/matchfeed/internal/api/respond"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Chat answers a single free-text query.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if req.Message == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_MESSAGE", "No message provided")
		return
	}

	reply := h.chat.Respond(r.Context(), req.Message)
	respond.WriteJSONObject(w, http.StatusOK, chatResponse{Response: reply})
}

// Classify exposes the resolver's classification for a query. Useful for
// debugging pattern order without generating a full reply.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_QUERY", "q query parameter is required")
		return
	}

	c := h.chat.Classify(query)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"topic":      c.Topic,
		"intent":     c.Intent,
		"parameters": c.Params,
	})
}
