package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(40.4168, -3.7038)
	loc, err := p.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 40.4168, Lon: -3.7038}, loc)
}

func TestReportedProvider_Failure(t *testing.T) {
	tests := []struct {
		code PositionErrorCode
		msg  string
	}{
		{CodePermissionDenied, "User denied the request for Geolocation."},
		{CodePositionUnavailable, "Location information is unavailable."},
		{CodeTimeout, "The request to get user location timed out."},
		{CodeUnknown, "An unknown error occurred."},
	}

	for _, tt := range tests {
		_, err := ReportedProvider{Code: tt.code}.Locate(context.Background())
		var perr *PositionError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, tt.code, perr.Code)
		assert.Equal(t, tt.msg, err.Error())
	}
}

func TestDistance(t *testing.T) {
	a := domain.Coordinate{Lat: 40.0, Lon: -74.0}
	b := domain.Coordinate{Lat: 40.01, Lon: -74.0}

	assert.Zero(t, Distance(a, a))
	// 0.01 degrees of latitude is roughly 1.11 km
	assert.InDelta(t, 1112, Distance(a, b), 5)
}

func TestCircle(t *testing.T) {
	center := domain.Coordinate{Lat: 40.0, Lon: -74.0}
	poly := Circle(center, 1000, 16)

	require.Len(t, poly, 1)
	ring := poly[0]
	require.Len(t, ring, 17)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	for _, p := range ring {
		d := Distance(center, domain.Coordinate{Lat: p[1], Lon: p[0]})
		assert.InDelta(t, 1000, d, 10)
	}
}
