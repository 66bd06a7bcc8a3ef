package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcalzada-xor/towermap/internal/adapters/web/middleware"
)

func SetupRoutes(ctx context.Context, s *Server) http.Handler {
	r := mux.NewRouter()

	// Geocoding hits the backend on every call
	locateLimiter := middleware.NewRateLimiter(ctx, s.locateLimit, time.Minute)

	r.HandleFunc("/ws", s.Hub.HandleWebSocket)

	// API routes hang off the root router so a method mismatch yields 405.
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Selection and navigation
	r.HandleFunc("/api/map/click", s.MapHandler.HandleClick).Methods(http.MethodPost)
	r.Handle("/api/locate", middleware.RateLimitMiddleware(locateLimiter)(http.HandlerFunc(s.MapHandler.HandleLocate))).Methods(http.MethodPost)
	r.HandleFunc("/api/coordinates", s.MapHandler.HandleCoordinates).Methods(http.MethodPost)
	r.HandleFunc("/api/geolocation", s.MapHandler.HandleGeolocation).Methods(http.MethodPost)

	// Searches
	r.HandleFunc("/api/search/carrier", s.SearchHandler.HandleCarrier).Methods(http.MethodPost)
	r.HandleFunc("/api/search/broad", s.SearchHandler.HandleBroad).Methods(http.MethodPost)

	// Summary and overlays
	r.HandleFunc("/api/filter", s.MapHandler.HandleFilter).Methods(http.MethodPut)
	r.HandleFunc("/api/overlays/{id}/toggle", s.MapHandler.HandleToggle).Methods(http.MethodPost)
	r.HandleFunc("/api/state", s.MapHandler.HandleState).Methods(http.MethodGet)
	r.HandleFunc("/api/carriers", s.MapHandler.HandleCarriers).Methods(http.MethodGet)

	// Exports
	r.HandleFunc("/api/export", s.ExportHandler.HandleExport).Methods(http.MethodGet)
	r.HandleFunc("/api/overlays.geojson", s.ExportHandler.HandleGeoJSON).Methods(http.MethodGet)
	r.HandleFunc("/api/summary.pdf", s.ExportHandler.HandleSummaryPDF).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	if s.StaticDir != "" {
		r.PathPrefix("/").MatcherFunc(notAPI).Handler(http.FileServer(http.Dir(s.StaticDir)))
	}

	return r
}

// notAPI keeps the static catch-all from shadowing API method mismatches.
func notAPI(r *http.Request, _ *mux.RouteMatch) bool {
	return !strings.HasPrefix(r.URL.Path, "/api/")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"Method not allowed"}`))
}
