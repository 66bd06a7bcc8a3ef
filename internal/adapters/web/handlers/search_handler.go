package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/towermap/internal/core/ports"
)

// SearchHandler starts tower searches. Results arrive on the websocket.
type SearchHandler struct {
	Service ports.SessionService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service ports.SessionService) *SearchHandler {
	return &SearchHandler{Service: service}
}

// HandleCarrier starts a carrier search at the selected point.
func (h *SearchHandler) HandleCarrier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Carrier string `json:"carrier"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := h.Service.SearchCarrier(r.Context(), req.Carrier); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted)
}

// HandleBroad starts a broad-area search at the selected point.
func (h *SearchHandler) HandleBroad(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.BroadAreaSearch(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted)
}
