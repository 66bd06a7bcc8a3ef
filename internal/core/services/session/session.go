package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/ports"
	"github.com/lcalzada-xor/towermap/internal/core/services/progress"
	"github.com/lcalzada-xor/towermap/internal/core/services/summary"
)

// ErrClosed is returned by operations submitted after the loop has stopped.
var ErrClosed = errors.New("session closed")

// Pin titles.
const (
	TitleDropMarker      = "Drop Marker"
	TitleCurrentLocation = "Your Current Location"
)

// DefaultView is New York City at zoom 12.
var DefaultView = domain.MapView{
	Center: domain.Coordinate{Lat: 40.730610, Lon: -73.935242},
	Zoom:   domain.ZoomDefault,
}

// state is owned by the loop goroutine; nothing else reads or writes it.
type state struct {
	selection *domain.Coordinate
	view      domain.MapView
	towers    []domain.Tower
	filter    domain.TowerFilter
	phase     domain.Phase

	seq      uint64 // last search sequence issued
	inflight *search
	last     *domain.SearchRecord

	geocodeSeq uint64
}

// Session is the map-state synchronization engine for one map. Every
// operation is serialized through a single event loop, so overlay, cache and
// progress updates are never interleaved.
type Session struct {
	backend  ports.TowerBackend
	view     ports.View
	overlays ports.OverlayRegistry
	progress *progress.Simulator
	logger   *slog.Logger
	now      func() time.Time

	events  chan func()
	done    chan struct{}
	baseCtx context.Context

	st state
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides time.Now, for elapsed-time reporting.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithInitialView sets the map view reported before any recentring.
func WithInitialView(v domain.MapView) Option {
	return func(s *Session) { s.st.view = v }
}

// New creates a session. Run must be called for operations to be processed.
func New(backend ports.TowerBackend, view ports.View, overlays ports.OverlayRegistry, sim *progress.Simulator, opts ...Option) *Session {
	s := &Session{
		backend:  backend,
		view:     view,
		overlays: overlays,
		progress: sim,
		logger:   slog.Default(),
		now:      time.Now,
		events:   make(chan func(), 64),
		done:     make(chan struct{}),
		baseCtx:  context.Background(),
		st: state{
			view:   DefaultView,
			filter: domain.AllTowers(),
			phase:  domain.PhaseIdle,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes events until ctx is cancelled. In-flight requests are
// cancelled on return.
func (s *Session) Run(ctx context.Context) error {
	s.baseCtx = ctx
	defer close(s.done)

	s.logger.Info("Map session started", "center", s.st.view.Center.String(), "zoom", s.st.view.Zoom)
	for {
		select {
		case <-ctx.Done():
			if s.st.inflight != nil {
				s.st.inflight.cancel()
				s.st.inflight.run.Finish()
				s.st.inflight.span.End()
				s.st.inflight = nil
			}
			s.logger.Info("Map session stopped")
			return nil
		case fn := <-s.events:
			fn()
		}
	}
}

// do runs fn on the loop and waits for its result.
func (s *Session) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	select {
	case s.events <- func() { errc <- fn() }:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errc:
		return err
	case <-s.done:
		// the loop may have run fn right before exiting
		select {
		case err := <-errc:
			return err
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post schedules fn on the loop without waiting. Used by request goroutines
// to hand their results back.
func (s *Session) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

// reject notifies the user of an input error and returns it.
func (s *Session) reject(err error) error {
	s.view.Notify(domain.ErrorNotice(err))
	return err
}

func (s *Session) setView(v domain.MapView) {
	s.st.view = v
	s.view.SetView(v)
}

func (s *Session) selectAt(c domain.Coordinate, title string) {
	sel := c
	s.st.selection = &sel
	s.overlays.SetDropPin(c, title)
}

// ClickMap selects the clicked point and drops a pin on it.
func (s *Session) ClickMap(ctx context.Context, c domain.Coordinate) error {
	return s.do(ctx, func() error {
		if err := c.Validate(); err != nil {
			return s.reject(err)
		}
		s.selectAt(c, TitleDropMarker)
		return nil
	})
}

// PointerMoved updates the coordinate readout.
func (s *Session) PointerMoved(ctx context.Context, c domain.Coordinate) error {
	return s.do(ctx, func() error {
		s.view.SetReadout(c.Readout())
		return nil
	})
}

// SetFilter changes the summary filter and re-renders from the cache. It
// never issues a request.
func (s *Session) SetFilter(ctx context.Context, f domain.TowerFilter) error {
	if err := f.Validate(); err != nil {
		return s.reject(err)
	}
	return s.do(ctx, func() error {
		s.st.filter = f
		s.view.RenderSummary(summary.Render(s.st.towers, f))
		return nil
	})
}

// ToggleCircle shows or hides the coverage circle paired with a marker.
func (s *Session) ToggleCircle(ctx context.Context, markerID string) error {
	return s.do(ctx, func() error {
		_, err := s.overlays.ToggleCircle(markerID)
		return err
	})
}

// State returns a snapshot of the session.
func (s *Session) State(ctx context.Context) (domain.SessionState, error) {
	var out domain.SessionState
	err := s.do(ctx, func() error {
		out = s.snapshot()
		return nil
	})
	return out, err
}

// Overlays returns the overlays currently drawn.
func (s *Session) Overlays(ctx context.Context) ([]domain.Overlay, error) {
	var out []domain.Overlay
	err := s.do(ctx, func() error {
		out = s.overlays.Snapshot()
		return nil
	})
	return out, err
}

func (s *Session) snapshot() domain.SessionState {
	markers, circles := s.overlays.Counts()
	out := domain.SessionState{
		View:       s.st.view,
		Towers:     append([]domain.Tower{}, s.st.towers...),
		Filter:     s.st.filter,
		Summary:    summary.Render(s.st.towers, s.st.filter),
		Phase:      s.st.phase,
		Markers:    markers,
		Circles:    circles,
		HasDropPin: s.overlays.HasDropPin(),
	}
	if s.st.selection != nil {
		sel := *s.st.selection
		out.Selection = &sel
	}
	if s.st.inflight != nil {
		out.InFlight = s.st.inflight.seq
	}
	if s.st.last != nil {
		rec := *s.st.last
		out.LastSearch = &rec
	}
	return out
}
