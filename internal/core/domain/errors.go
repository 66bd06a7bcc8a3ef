package domain

import (
	"errors"
	"fmt"
)

// User input errors. Their messages are shown to the user as-is.
var (
	ErrNoLocationText    = errors.New("Please enter a location.")
	ErrNoSelection       = errors.New("Please place a pin on the map first.")
	ErrInvalidCoordinate = errors.New("Please enter valid coordinates.")
	ErrNoCarrier         = errors.New("Please select a carrier before searching.")
	ErrInvalidFilter     = errors.New("Unknown tower type filter.")
)

// Result validation errors.
var (
	ErrInvalidRange         = errors.New("range must be non-negative")
	ErrInvalidDistance      = errors.New("distance must be non-negative")
	ErrInvalidSignalQuality = errors.New("signal quality must be between 0 and 100")
)

// ErrUnknownOverlay is returned when an overlay ID is not on the map.
var ErrUnknownOverlay = errors.New("unknown overlay")

// Generic messages for failures whose details are only logged.
const (
	MsgSearchFailed   = "An error occurred while searching for towers."
	MsgGeocodeFailed  = "An error occurred while fetching the location."
	MsgLocationAbsent = "Location not found."
)

// IsUserError reports whether err is caused by user input rather than by a
// backend or network failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrNoLocationText) ||
		errors.Is(err, ErrNoSelection) ||
		errors.Is(err, ErrInvalidCoordinate) ||
		errors.Is(err, ErrNoCarrier) ||
		errors.Is(err, ErrInvalidFilter)
}

// GeocodeError carries a message reported by the geocoding backend.
type GeocodeError struct {
	Message string
}

func (e *GeocodeError) Error() string {
	if e.Message == "" {
		return MsgLocationAbsent
	}
	return e.Message
}

// BackendError is a non-success response from the tower backend.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}
