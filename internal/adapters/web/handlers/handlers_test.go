package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lcalzada-xor/towermap/internal/adapters/web"
	"github.com/lcalzada-xor/towermap/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/services/session"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

func serve(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleGeolocation_Providers(t *testing.T) {
	fallback := geo.NewStaticProvider(1, 2)

	tests := []struct {
		name  string
		body  string
		match func(p geo.Provider) bool
	}{
		{
			name: "reported position",
			body: `{"lat":40.5,"lon":-73.5}`,
			match: func(p geo.Provider) bool {
				rp, ok := p.(geo.ReportedProvider)
				return ok && rp.Position != nil && *rp.Position == domain.Coordinate{Lat: 40.5, Lon: -73.5}
			},
		},
		{
			name: "reported failure",
			body: `{"code":3}`,
			match: func(p geo.Provider) bool {
				rp, ok := p.(geo.ReportedProvider)
				return ok && rp.Position == nil && rp.Code == geo.CodeTimeout
			},
		},
		{
			name:  "fallback",
			body:  ``,
			match: func(p geo.Provider) bool { return p == fallback },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(web.MockSessionService)
			svc.On("UseCurrentLocation", mock.Anything, mock.MatchedBy(tt.match)).Return(nil)

			h := handlers.NewMapHandler(svc, nil, fallback)
			rec := serve(h.HandleGeolocation, http.MethodPost, "/api/geolocation", tt.body)

			assert.Equal(t, http.StatusAccepted, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGeolocation_Unsupported(t *testing.T) {
	svc := new(web.MockSessionService)
	svc.On("UseCurrentLocation", mock.Anything, mock.Anything).Return(geo.ErrUnsupported)

	h := handlers.NewMapHandler(svc, nil, nil)
	rec := serve(h.HandleGeolocation, http.MethodPost, "/api/geolocation", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrNoSelection, http.StatusBadRequest},
		{domain.ErrNoCarrier, http.StatusBadRequest},
		{session.ErrClosed, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := new(web.MockSessionService)
		svc.On("SearchCarrier", mock.Anything, "AT&T").Return(tt.err)

		h := handlers.NewSearchHandler(svc)
		rec := serve(h.HandleCarrier, http.MethodPost, "/api/search/carrier", `{"carrier":"AT&T"}`)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.JSONEq(t, `{"error":"`+tt.err.Error()+`"}`, rec.Body.String())
	}
}

func TestHandleCarrier_RejectsUnknownFields(t *testing.T) {
	svc := new(web.MockSessionService)
	h := handlers.NewSearchHandler(svc)

	rec := serve(h.HandleCarrier, http.MethodPost, "/api/search/carrier", `{"carier":"AT&T"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SearchCarrier", mock.Anything, mock.Anything)
}

func TestHandleToggle_UsesPathID(t *testing.T) {
	svc := new(web.MockSessionService)
	svc.On("ToggleCircle", mock.Anything, "abc").Return(nil)
	svc.On("ToggleCircle", mock.Anything, "missing").Return(domain.ErrUnknownOverlay)

	h := handlers.NewMapHandler(svc, nil, nil)
	r := mux.NewRouter()
	r.HandleFunc("/api/overlays/{id}/toggle", h.HandleToggle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/overlays/abc/toggle", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/overlays/missing/toggle", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleClick_MissingCoordinates(t *testing.T) {
	svc := new(web.MockSessionService)
	h := handlers.NewMapHandler(svc, nil, nil)

	rec := serve(h.HandleClick, http.MethodPost, "/api/map/click", `{"lat":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ClickMap", mock.Anything, mock.Anything)
}
