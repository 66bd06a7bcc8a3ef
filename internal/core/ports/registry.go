package ports

import "github.com/lcalzada-xor/towermap/internal/core/domain"

// OverlayRegistry owns the lifecycle of every overlay on the map.
type OverlayRegistry interface {
	// SetDropPin replaces the drop pin; at most one exists at a time.
	SetDropPin(c domain.Coordinate, title string) domain.Overlay

	// ReplaceTowerOverlays removes all tower overlays and draws one marker and
	// one coverage circle per tower, in input order.
	ReplaceTowerOverlays(towers []domain.Tower, showCircles bool)

	// ClearTowerOverlays removes all tower markers and circles.
	ClearTowerOverlays()

	// ToggleCircle flips the visibility of the circle paired with markerID.
	ToggleCircle(markerID string) (visible bool, err error)

	// Counts returns the number of tracked tower markers and circles.
	Counts() (markers, circles int)

	// HasDropPin reports whether a drop pin is on the map.
	HasDropPin() bool

	// Snapshot returns the overlays currently drawn on the map.
	Snapshot() []domain.Overlay
}
