package session

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/geo"
	"github.com/lcalzada-xor/towermap/internal/telemetry"
)

// MoveToLocation geocodes a place name, recentres the map on it and selects
// it. A backend "not found" message is shown verbatim and leaves the map
// unchanged.
func (s *Session) MoveToLocation(ctx context.Context, location string) error {
	return s.do(ctx, func() error {
		location = strings.TrimSpace(location)
		if location == "" {
			return s.reject(domain.ErrNoLocationText)
		}

		s.st.geocodeSeq++
		seq := s.st.geocodeSeq
		s.progress.Show()

		reqCtx := s.baseCtx
		go func() {
			c, err := s.backend.Geocode(reqCtx, location)
			s.post(func() { s.geocoded(seq, location, c, err) })
		}()
		return nil
	})
}

func (s *Session) geocoded(seq uint64, location string, c domain.Coordinate, err error) {
	// every lookup opened the indicator once, stale or not
	s.progress.Hide()
	if seq != s.st.geocodeSeq {
		return
	}

	if err == nil {
		err = c.Validate()
	}

	var gerr *domain.GeocodeError
	switch {
	case err == nil:
		telemetry.GeocodeRequests.WithLabelValues("ok").Inc()
		s.setView(domain.MapView{Center: c, Zoom: domain.ZoomDefault})
		s.selectAt(c, location)
	case errors.As(err, &gerr):
		telemetry.GeocodeRequests.WithLabelValues("not_found").Inc()
		s.logger.Warn("Location not found", "location", location, "message", gerr.Message)
		s.view.Notify(domain.ErrorNotice(gerr))
	default:
		telemetry.GeocodeRequests.WithLabelValues("error").Inc()
		s.logger.Error("Error fetching location", "location", location, "error", err)
		s.view.Notify(domain.Notice{Level: domain.NoticeError, Message: domain.MsgGeocodeFailed})
	}
}

// MoveToCoordinates recentres the map on typed-in coordinates. It does not
// change the selection.
func (s *Session) MoveToCoordinates(ctx context.Context, latText, lonText string) error {
	return s.do(ctx, func() error {
		lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
		if err != nil {
			return s.reject(domain.ErrInvalidCoordinate)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
		if err != nil {
			return s.reject(domain.ErrInvalidCoordinate)
		}
		c := domain.Coordinate{Lat: lat, Lon: lon}
		if err := c.Validate(); err != nil {
			return s.reject(err)
		}
		s.setView(domain.MapView{Center: c, Zoom: domain.ZoomDefault})
		return nil
	})
}

// UseCurrentLocation selects the position yielded by provider. Each
// geolocation failure cause is reported with its own message.
func (s *Session) UseCurrentLocation(ctx context.Context, provider geo.Provider) error {
	return s.do(ctx, func() error {
		if provider == nil {
			return s.reject(geo.ErrUnsupported)
		}
		s.progress.Show()

		reqCtx := s.baseCtx
		go func() {
			c, err := provider.Locate(reqCtx)
			s.post(func() { s.located(c, err) })
		}()
		return nil
	})
}

func (s *Session) located(c domain.Coordinate, err error) {
	s.progress.Hide()

	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		var perr *geo.PositionError
		switch {
		case errors.As(err, &perr), errors.Is(err, geo.ErrUnsupported):
			s.view.Notify(domain.ErrorNotice(err))
		case errors.Is(err, domain.ErrInvalidCoordinate):
			s.view.Notify(domain.ErrorNotice(&geo.PositionError{Code: geo.CodePositionUnavailable}))
		default:
			s.view.Notify(domain.ErrorNotice(&geo.PositionError{Code: geo.CodeUnknown}))
		}
		s.logger.Warn("Geolocation failed", "error", err)
		return
	}

	s.setView(domain.MapView{Center: c, Zoom: domain.ZoomCurrent})
	s.selectAt(c, TitleCurrentLocation)
}
