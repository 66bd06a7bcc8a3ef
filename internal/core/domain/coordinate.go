package domain

import (
	"fmt"
	"math"
)

// Coordinate is a WGS84 point selected on the map.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate rejects points outside the lat/lon ranges and non-finite values.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return ErrInvalidCoordinate
	}
	if c.Lat < -90 || c.Lat > 90 {
		return ErrInvalidCoordinate
	}
	if c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// String renders the coordinate with 6 decimals, as shown in pin labels.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon)
}

// Readout is the pointer-position text shown under the map.
func (c Coordinate) Readout() string {
	return fmt.Sprintf("Latitude: %.6f, Longitude: %.6f", c.Lat, c.Lon)
}

// MapView describes where the map is centred.
type MapView struct {
	Center Coordinate `json:"center"`
	Zoom   int        `json:"zoom"`
}

// Zoom levels used when recentring the map.
const (
	ZoomDefault = 12
	ZoomCurrent = 14
)
