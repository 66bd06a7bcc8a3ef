package domain

import (
	"fmt"
	"math"
)

// TowerType is the radio technology reported for a tower.
type TowerType string

const (
	TowerCDMA TowerType = "CDMA"
	TowerGSM  TowerType = "GSM"
	TowerLTE  TowerType = "LTE"
	TowerUMTS TowerType = "UMTS"
	TowerNR   TowerType = "NR"
)

// KnownTowerTypes lists the types the UI has dedicated icons for.
var KnownTowerTypes = []TowerType{TowerCDMA, TowerGSM, TowerLTE, TowerUMTS, TowerNR}

// IsKnown reports whether t is one of KnownTowerTypes.
func (t TowerType) IsKnown() bool {
	for _, k := range KnownTowerTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Tower is a single search result. Towers have no stable identity; a result
// list is always replaced as a whole.
type Tower struct {
	Type          TowerType `json:"type"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	Range         float64   `json:"range"`          // meters
	SignalQuality float64   `json:"signal_quality"` // 0-100
	Distance      float64   `json:"distance"`       // meters
	Color         string    `json:"color"`
}

// Position returns the tower location as a Coordinate.
func (t Tower) Position() Coordinate {
	return Coordinate{Lat: t.Lat, Lon: t.Lon}
}

// Validate checks the numeric invariants of a backend result.
func (t Tower) Validate() error {
	if err := t.Position().Validate(); err != nil {
		return fmt.Errorf("tower %s: %w", t.Type, err)
	}
	if t.Range < 0 || math.IsNaN(t.Range) || math.IsInf(t.Range, 0) {
		return fmt.Errorf("tower %s: %w", t.Type, ErrInvalidRange)
	}
	if t.Distance < 0 || math.IsNaN(t.Distance) || math.IsInf(t.Distance, 0) {
		return fmt.Errorf("tower %s: %w", t.Type, ErrInvalidDistance)
	}
	if t.SignalQuality < 0 || t.SignalQuality > 100 || math.IsNaN(t.SignalQuality) {
		return fmt.Errorf("tower %s: %w", t.Type, ErrInvalidSignalQuality)
	}
	return nil
}

// SignalBand buckets a signal quality score for icon selection.
type SignalBand string

const (
	BandLow   SignalBand = "low"
	BandMid   SignalBand = "mid"
	BandGood  SignalBand = "good"
	BandGreat SignalBand = "great"
)

// BandFor maps a quality score onto its band. Upper bounds are inclusive.
func BandFor(quality float64) SignalBand {
	switch {
	case quality <= 10:
		return BandLow
	case quality <= 30:
		return BandMid
	case quality <= 70:
		return BandGood
	default:
		return BandGreat
	}
}

const iconBase = "/static/images/"

// DefaultIcon is used for the drop pin and for unrecognized tower types.
const DefaultIcon = iconBase + "marker-icon.png"

// TowerIcon returns the marker icon URL for a tower type.
func TowerIcon(t TowerType) string {
	switch t {
	case TowerCDMA:
		return iconBase + "cdma.png"
	case TowerGSM:
		return iconBase + "gsm.png"
	case TowerLTE:
		return iconBase + "lte.png"
	case TowerUMTS:
		return iconBase + "umts.png"
	case TowerNR:
		return iconBase + "nr.png"
	default:
		return DefaultIcon
	}
}

// SignalIcon returns the icon URL for a signal band.
func SignalIcon(b SignalBand) string {
	return iconBase + "signal_" + string(b) + ".png"
}
