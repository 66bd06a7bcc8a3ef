package overlay

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/ports"
	"github.com/lcalzada-xor/towermap/internal/telemetry"
)

// towerPair is the marker and coverage circle drawn for one tower.
type towerPair struct {
	marker      domain.Overlay
	circle      domain.Overlay
	circleShown bool
}

// Registry implements ports.OverlayRegistry on top of a MapView.
// The drop pin is tracked apart from the tower overlays, which are only ever
// replaced as a whole.
type Registry struct {
	mu       sync.Mutex
	view     ports.MapView
	dropPin  *domain.Overlay
	pairs    []towerPair
	byMarker map[string]int
	newID    func() string
}

// NewRegistry creates an empty registry drawing into view.
func NewRegistry(view ports.MapView) *Registry {
	return &Registry{
		view:     view,
		byMarker: make(map[string]int),
		newID:    uuid.NewString,
	}
}

// DropPinLabel is the popup text of a drop pin.
func DropPinLabel(title string, c domain.Coordinate) string {
	return fmt.Sprintf("%s\nLatitude: %.6f\nLongitude: %.6f", title, c.Lat, c.Lon)
}

// MarkerLabel is the popup text of a tower marker.
func MarkerLabel(t domain.Tower) string {
	return fmt.Sprintf("Type: %s\nRange: %gm\nDistance: %.2fm\nSignal Quality: %.2f%%",
		t.Type, t.Range, t.Distance, t.SignalQuality)
}

// SetDropPin removes the current pin, if any, and draws a new one at c.
func (r *Registry) SetDropPin(c domain.Coordinate, title string) domain.Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dropPin != nil {
		r.view.RemoveOverlay(r.dropPin.ID)
		r.dropPin = nil
	}

	pin := domain.Overlay{
		ID:         r.newID(),
		Kind:       domain.OverlayDropPin,
		Position:   c,
		Icon:       domain.DefaultIcon,
		Label:      DropPinLabel(title, c),
		TowerIndex: -1,
	}
	r.view.AddOverlay(pin)
	r.dropPin = &pin
	return pin
}

// HasDropPin reports whether a drop pin is drawn.
func (r *Registry) HasDropPin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropPin != nil
}

// ReplaceTowerOverlays erases every tower overlay from previous calls before
// drawing one marker and one circle per tower. Circles start hidden when
// showCircles is false; the marker still owns its pair.
func (r *Registry) ReplaceTowerOverlays(towers []domain.Tower, showCircles bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLocked()

	r.pairs = make([]towerPair, 0, len(towers))
	for i, t := range towers {
		markerID, circleID := r.newID(), r.newID()
		p := towerPair{
			marker: domain.Overlay{
				ID:         markerID,
				Kind:       domain.OverlayTowerMarker,
				Position:   t.Position(),
				Icon:       domain.TowerIcon(t.Type),
				Label:      MarkerLabel(t),
				TowerIndex: i,
				PairID:     circleID,
			},
			circle: domain.Overlay{
				ID:          circleID,
				Kind:        domain.OverlayCoverageCircle,
				Position:    t.Position(),
				Radius:      t.Range,
				Color:       t.Color,
				FillOpacity: domain.CoverageFillOpacity,
				TowerIndex:  i,
				PairID:      markerID,
			},
			circleShown: showCircles,
		}

		r.view.AddOverlay(p.marker)
		if p.circleShown {
			r.view.AddOverlay(p.circle)
		}
		r.byMarker[markerID] = len(r.pairs)
		r.pairs = append(r.pairs, p)
	}

	r.reportLocked()
}

// ClearTowerOverlays erases all tower markers and circles.
func (r *Registry) ClearTowerOverlays() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	r.reportLocked()
}

func (r *Registry) clearLocked() {
	for _, p := range r.pairs {
		if p.circleShown {
			r.view.RemoveOverlay(p.circle.ID)
		}
		r.view.RemoveOverlay(p.marker.ID)
	}
	r.pairs = nil
	r.byMarker = make(map[string]int)
}

// ToggleCircle shows the circle paired with markerID if hidden and hides it
// if shown. Other towers are not affected.
func (r *Registry) ToggleCircle(markerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byMarker[markerID]
	if !ok {
		return false, fmt.Errorf("toggle %s: %w", markerID, domain.ErrUnknownOverlay)
	}

	p := &r.pairs[idx]
	if p.circleShown {
		r.view.RemoveOverlay(p.circle.ID)
	} else {
		r.view.AddOverlay(p.circle)
	}
	p.circleShown = !p.circleShown
	r.reportLocked()
	return p.circleShown, nil
}

// Counts returns the tracked tower markers and circles. Hidden circles are
// still tracked.
func (r *Registry) Counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pairs), len(r.pairs)
}

// Snapshot returns the overlays currently drawn, pin first, then towers in
// result order.
func (r *Registry) Snapshot() []domain.Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Overlay, 0, 1+2*len(r.pairs))
	if r.dropPin != nil {
		out = append(out, *r.dropPin)
	}
	for _, p := range r.pairs {
		out = append(out, p.marker)
		if p.circleShown {
			out = append(out, p.circle)
		}
	}
	return out
}

func (r *Registry) reportLocked() {
	shown := 0
	for _, p := range r.pairs {
		if p.circleShown {
			shown++
		}
	}
	telemetry.TowerOverlays.WithLabelValues(string(domain.OverlayTowerMarker)).Set(float64(len(r.pairs)))
	telemetry.TowerOverlays.WithLabelValues(string(domain.OverlayCoverageCircle)).Set(float64(shown))
}
