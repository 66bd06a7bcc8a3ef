package domain

// OverlayKind distinguishes the objects drawn above the base tiles.
type OverlayKind string

const (
	OverlayDropPin        OverlayKind = "drop_pin"
	OverlayTowerMarker    OverlayKind = "tower_marker"
	OverlayCoverageCircle OverlayKind = "coverage_circle"
)

// CoverageFillOpacity is the fill opacity of every coverage circle.
const CoverageFillOpacity = 0.1

// Overlay is a map object as sent to views.
type Overlay struct {
	ID          string      `json:"id"`
	Kind        OverlayKind `json:"kind"`
	Position    Coordinate  `json:"position"`
	Icon        string      `json:"icon,omitempty"`
	Label       string      `json:"label,omitempty"`
	Radius      float64     `json:"radius,omitempty"` // meters, circles only
	Color       string      `json:"color,omitempty"`
	FillOpacity float64     `json:"fill_opacity,omitempty"`
	// TowerIndex is the position of the source tower in the result list,
	// -1 for the drop pin.
	TowerIndex int `json:"tower_index"`
	// PairID links a marker to its circle and back.
	PairID string `json:"pair_id,omitempty"`
}
