package geo

import (
	"context"
	"fmt"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Provider defines the interface for obtaining the user's current location.
type Provider interface {
	Locate(ctx context.Context) (domain.Coordinate, error)
}

// PositionErrorCode mirrors the browser Geolocation API error codes.
type PositionErrorCode int

const (
	CodeUnknown             PositionErrorCode = 0
	CodePermissionDenied    PositionErrorCode = 1
	CodePositionUnavailable PositionErrorCode = 2
	CodeTimeout             PositionErrorCode = 3
)

// PositionError is a failed geolocation attempt.
type PositionError struct {
	Code PositionErrorCode
}

func (e *PositionError) Error() string {
	switch e.Code {
	case CodePermissionDenied:
		return "User denied the request for Geolocation."
	case CodePositionUnavailable:
		return "Location information is unavailable."
	case CodeTimeout:
		return "The request to get user location timed out."
	default:
		return "An unknown error occurred."
	}
}

// ErrUnsupported is returned by providers that cannot locate at all.
var ErrUnsupported = fmt.Errorf("Geolocation is not supported by this browser.")

// StaticProvider implements Provider with a fixed location.
type StaticProvider struct {
	Lat float64
	Lng float64
}

// NewStaticProvider creates a provider that always returns the same location.
func NewStaticProvider(lat, lng float64) *StaticProvider {
	return &StaticProvider{
		Lat: lat,
		Lng: lng,
	}
}

// Locate returns the fixed location.
func (s *StaticProvider) Locate(ctx context.Context) (domain.Coordinate, error) {
	return domain.Coordinate{Lat: s.Lat, Lon: s.Lng}, nil
}

// ReportedProvider replays a position (or failure) reported by a browser view.
type ReportedProvider struct {
	Position *domain.Coordinate
	Code     PositionErrorCode
}

// Locate returns the reported position, or a PositionError when the view
// reported a failure code.
func (r ReportedProvider) Locate(ctx context.Context) (domain.Coordinate, error) {
	if r.Position == nil {
		return domain.Coordinate{}, &PositionError{Code: r.Code}
	}
	return *r.Position, nil
}

// Point converts a coordinate to an orb point (lon, lat order).
func Point(c domain.Coordinate) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// Distance returns the haversine distance in meters between two coordinates.
func Distance(a, b domain.Coordinate) float64 {
	return orbgeo.DistanceHaversine(Point(a), Point(b))
}

// Circle approximates a circle of radius meters around center as a closed
// polygon ring with the given number of segments.
func Circle(center domain.Coordinate, radius float64, segments int) orb.Polygon {
	if segments < 3 {
		segments = 3
	}
	c := Point(center)
	ring := make(orb.Ring, 0, segments+1)
	for i := 0; i < segments; i++ {
		bearing := 360 * float64(i) / float64(segments)
		ring = append(ring, orbgeo.PointAtBearingAndDistance(c, bearing, radius))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}
