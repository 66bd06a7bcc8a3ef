package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/ports"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

// MapHandler handles selection, navigation and summary filter requests
type MapHandler struct {
	Service  ports.SessionService
	Carriers []string
	// Fallback locates the user when the browser reports nothing.
	Fallback geo.Provider
}

// NewMapHandler creates a new MapHandler
func NewMapHandler(service ports.SessionService, carriers []string, fallback geo.Provider) *MapHandler {
	return &MapHandler{
		Service:  service,
		Carriers: carriers,
		Fallback: fallback,
	}
}

type pointRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// HandleClick selects a point, as a map click does.
func (h *MapHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decodeBody(r, &req); err != nil || req.Lat == nil || req.Lon == nil {
		writeError(w, domain.ErrInvalidCoordinate)
		return
	}
	if err := h.Service.ClickMap(r.Context(), domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}); err != nil {
		writeError(w, err)
		return
	}
	h.writeState(w, r, http.StatusOK)
}

// HandleLocate geocodes a place name and moves the map there.
func (h *MapHandler) HandleLocate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location string `json:"location"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := h.Service.MoveToLocation(r.Context(), req.Location); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted)
}

// HandleCoordinates recentres the map on typed-in coordinates.
func (h *MapHandler) HandleCoordinates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, domain.ErrInvalidCoordinate)
		return
	}
	if err := h.Service.MoveToCoordinates(r.Context(), req.Lat, req.Lon); err != nil {
		writeError(w, err)
		return
	}
	h.writeState(w, r, http.StatusOK)
}

// HandleGeolocation selects the user's position. The body carries either
// the browser-reported lat/lon or its failure code; an empty body uses the
// configured fallback position.
func (h *MapHandler) HandleGeolocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lat  *float64 `json:"lat"`
		Lon  *float64 `json:"lon"`
		Code *int     `json:"code"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	var provider geo.Provider
	switch {
	case req.Lat != nil && req.Lon != nil:
		provider = geo.ReportedProvider{Position: &domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}}
	case req.Code != nil:
		provider = geo.ReportedProvider{Code: geo.PositionErrorCode(*req.Code)}
	default:
		provider = h.Fallback
	}

	if err := h.Service.UseCurrentLocation(r.Context(), provider); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, accepted)
}

// HandleFilter changes the summary list filter.
func (h *MapHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	filter, err := domain.ParseTowerFilter(req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.SetFilter(r.Context(), filter); err != nil {
		writeError(w, err)
		return
	}
	h.writeState(w, r, http.StatusOK)
}

// HandleToggle flips the coverage circle of a tower marker.
func (h *MapHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.ToggleCircle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleState returns the session snapshot.
func (h *MapHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, r, http.StatusOK)
}

// HandleCarriers lists the carriers offered for carrier searches.
func (h *MapHandler) HandleCarriers(w http.ResponseWriter, r *http.Request) {
	carriers := h.Carriers
	if carriers == nil {
		carriers = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"carriers": carriers})
}

func (h *MapHandler) writeState(w http.ResponseWriter, r *http.Request, status int) {
	st, err := h.Service.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, st)
}
