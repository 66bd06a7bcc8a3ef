package mock

import (
	"sync"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
)

// RecordingView is an in-memory ports.View used in tests and headless runs.
// It keeps the overlays currently drawn plus a history of everything else it
// was asked to render.
type RecordingView struct {
	mu sync.Mutex

	drawn    map[string]domain.Overlay
	order    []string
	adds     int
	removes  int
	views    []domain.MapView
	progress []int
	visible  bool
	shows    int
	hides    int
	summary  []domain.SummaryRow
	renders  int
	notices  []domain.Notice
	readout  string
}

// NewRecordingView creates an empty view.
func NewRecordingView() *RecordingView {
	return &RecordingView{drawn: make(map[string]domain.Overlay)}
}

func (v *RecordingView) AddOverlay(o domain.Overlay) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.drawn[o.ID]; ok {
		return
	}
	v.drawn[o.ID] = o
	v.order = append(v.order, o.ID)
	v.adds++
}

func (v *RecordingView) RemoveOverlay(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.drawn[id]; !ok {
		return
	}
	delete(v.drawn, id)
	for i, oid := range v.order {
		if oid == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	v.removes++
}

func (v *RecordingView) SetView(mv domain.MapView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.views = append(v.views, mv)
}

func (v *RecordingView) ShowProgress() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = true
	v.shows++
}

func (v *RecordingView) SetProgress(percent int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, percent)
}

func (v *RecordingView) HideProgress() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = false
	v.hides++
}

func (v *RecordingView) RenderSummary(rows []domain.SummaryRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.summary = append([]domain.SummaryRow(nil), rows...)
	v.renders++
}

func (v *RecordingView) Notify(n domain.Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, n)
}

func (v *RecordingView) SetReadout(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.readout = text
}

// Drawn returns the overlays on the map in draw order.
func (v *RecordingView) Drawn() []domain.Overlay {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Overlay, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.drawn[id])
	}
	return out
}

// CountKind returns how many drawn overlays are of kind k.
func (v *RecordingView) CountKind(k domain.OverlayKind) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, o := range v.drawn {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// IsDrawn reports whether an overlay ID is on the map.
func (v *RecordingView) IsDrawn(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.drawn[id]
	return ok
}

// Views returns every SetView call.
func (v *RecordingView) Views() []domain.MapView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.MapView(nil), v.views...)
}

// Progress returns every percentage written to the bar.
func (v *RecordingView) Progress() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]int(nil), v.progress...)
}

// ProgressVisible reports whether the indicator is shown.
func (v *RecordingView) ProgressVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// ProgressHides counts HideProgress calls.
func (v *RecordingView) ProgressHides() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hides
}

// Summary returns the last rendered summary.
func (v *RecordingView) Summary() []domain.SummaryRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.SummaryRow(nil), v.summary...)
}

// SummaryRenders counts RenderSummary calls.
func (v *RecordingView) SummaryRenders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders
}

// Notices returns every notification shown.
func (v *RecordingView) Notices() []domain.Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Notice(nil), v.notices...)
}

// Readout returns the current pointer readout.
func (v *RecordingView) Readout() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.readout
}
