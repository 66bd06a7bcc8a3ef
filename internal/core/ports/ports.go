package ports

import (
	"context"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/geo"
)

// MapView is the overlay surface of a rendered map.
// Implementations must be safe for concurrent use.
type MapView interface {
	// AddOverlay draws an overlay. Adding an ID that is already drawn is a no-op.
	AddOverlay(o domain.Overlay)
	// RemoveOverlay erases an overlay by ID.
	RemoveOverlay(id string)
	// SetView recentres the map.
	SetView(v domain.MapView)
}

// ProgressView drives the loading indicator pair (icon + bar).
type ProgressView interface {
	ShowProgress()
	SetProgress(percent int)
	HideProgress()
}

// SummaryView renders the ranked tower list.
type SummaryView interface {
	RenderSummary(rows []domain.SummaryRow)
}

// Notifier shows blocking user notifications.
type Notifier interface {
	Notify(n domain.Notice)
}

// ReadoutView shows the pointer coordinate readout.
type ReadoutView interface {
	SetReadout(text string)
}

// View is everything a session renders into.
type View interface {
	MapView
	ProgressView
	SummaryView
	Notifier
	ReadoutView
}

// SessionService is the command surface of a map session, used by the web adapter.
type SessionService interface {
	ClickMap(ctx context.Context, c domain.Coordinate) error
	PointerMoved(ctx context.Context, c domain.Coordinate) error
	MoveToLocation(ctx context.Context, location string) error
	MoveToCoordinates(ctx context.Context, latText, lonText string) error
	UseCurrentLocation(ctx context.Context, provider geo.Provider) error
	SearchCarrier(ctx context.Context, carrier string) error
	BroadAreaSearch(ctx context.Context) error
	SetFilter(ctx context.Context, filter domain.TowerFilter) error
	ToggleCircle(ctx context.Context, markerID string) error
	State(ctx context.Context) (domain.SessionState, error)
	Overlays(ctx context.Context) ([]domain.Overlay, error)
}
