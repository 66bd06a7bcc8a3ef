package mock

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
)

// Backend serves the tower search and geocoding API from generated data.
type Backend struct {
	generator *DataGenerator
	carriers  []string
	latency   time.Duration
	router    *mux.Router
}

// NewBackend creates a mock backend. Broad-area searches cover all carriers.
// latency delays every response so the loading indicator is visible.
func NewBackend(scenario string, carriers []string, latency time.Duration) *Backend {
	b := &Backend{
		generator: NewDataGenerator(scenario),
		carriers:  carriers,
		latency:   latency,
		router:    mux.NewRouter(),
	}
	b.router.HandleFunc("/geocode-location", b.handleGeocode).Methods(http.MethodPost)
	b.router.HandleFunc("/filter-towers", b.handleFilterTowers).Methods(http.MethodPost)
	b.router.HandleFunc("/broad-area-search", b.handleBroadArea).Methods(http.MethodPost)
	return b
}

// ServeHTTP implements http.Handler.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.latency > 0 {
		select {
		case <-time.After(b.latency):
		case <-r.Context().Done():
			return
		}
	}
	b.router.ServeHTTP(w, r)
}

type searchPayload struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Carrier string   `json:"carrier"`
}

func (b *Backend) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Location) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Location name is required"})
		return
	}

	log.Printf("Geocoding location: %s", req.Location)
	c, ok := Geocode(req.Location)
	if !ok {
		log.Printf("Coordinates not found for location: %s", req.Location)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Location not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"lat": c.Lat, "lon": c.Lon})
}

func (b *Backend) handleFilterTowers(w http.ResponseWriter, r *http.Request) {
	at, req, ok := decodeSearch(w, r)
	if !ok {
		return
	}
	carrier := strings.TrimSpace(req.Carrier)
	if carrier == "" {
		carrier = b.defaultCarrier()
	}
	towers := ClosestPerType(b.generator.InRange(at, carrier))
	log.Printf("Found %d closest towers for %s at %s", len(towers), carrier, at)
	writeJSON(w, http.StatusOK, towers)
}

func (b *Backend) handleBroadArea(w http.ResponseWriter, r *http.Request) {
	at, _, ok := decodeSearch(w, r)
	if !ok {
		return
	}
	towers := b.generator.InRange(at, b.carriers...)
	if towers == nil {
		towers = []domain.Tower{}
	}
	log.Printf("Found %d towers in range at %s", len(towers), at)
	writeJSON(w, http.StatusOK, towers)
}

func (b *Backend) defaultCarrier() string {
	if len(b.carriers) > 0 {
		return b.carriers[0]
	}
	return ""
}

func decodeSearch(w http.ResponseWriter, r *http.Request) (domain.Coordinate, searchPayload, bool) {
	var req searchPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Lat == nil || req.Lon == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Latitude and longitude are required"})
		return domain.Coordinate{}, req, false
	}
	at := domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	if err := at.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Could not determine country from the provided location."})
		return domain.Coordinate{}, req, false
	}
	return at, req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("mock backend: encode response: %v", err)
	}
}
