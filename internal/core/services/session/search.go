package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/services/progress"
	"github.com/lcalzada-xor/towermap/internal/core/services/summary"
	"github.com/lcalzada-xor/towermap/internal/telemetry"
)

// search is one Loading cycle. Only the search whose seq equals the latest
// issued may commit.
type search struct {
	seq     uint64
	kind    domain.SearchKind
	carrier string
	coord   domain.Coordinate
	started time.Time

	run    *progress.Run
	cancel context.CancelFunc
	span   trace.Span
}

// SearchCarrier runs a carrier-scoped search at the current selection.
func (s *Session) SearchCarrier(ctx context.Context, carrier string) error {
	return s.do(ctx, func() error {
		carrier = strings.TrimSpace(carrier)
		if carrier == "" {
			return s.reject(domain.ErrNoCarrier)
		}
		if s.st.selection == nil {
			return s.reject(domain.ErrNoSelection)
		}
		s.startSearch(domain.SearchCarrier, carrier)
		return nil
	})
}

// BroadAreaSearch runs an unscoped search at the current selection.
func (s *Session) BroadAreaSearch(ctx context.Context) error {
	return s.do(ctx, func() error {
		if s.st.selection == nil {
			return s.reject(domain.ErrNoSelection)
		}
		s.startSearch(domain.SearchBroadArea, "")
		return nil
	})
}

// startSearch enters Loading: tower overlays are cleared before the request
// is sent, and any earlier search is superseded.
func (s *Session) startSearch(kind domain.SearchKind, carrier string) {
	if prev := s.st.inflight; prev != nil {
		prev.cancel()
		prev.span.SetStatus(codes.Error, "superseded")
		prev.span.End()
		telemetry.SearchesTotal.WithLabelValues(string(prev.kind), "superseded").Inc()
		s.logger.Debug("Search superseded", "seq", prev.seq, "kind", prev.kind)
	}

	s.st.seq++
	sr := &search{
		seq:     s.st.seq,
		kind:    kind,
		carrier: carrier,
		coord:   *s.st.selection,
		started: s.now(),
	}

	s.overlays.ClearTowerOverlays()
	sr.run = s.progress.Start()

	reqCtx, cancel := context.WithCancel(s.baseCtx)
	reqCtx, sr.span = telemetry.Tracer().Start(reqCtx, "session.search",
		trace.WithAttributes(
			attribute.Int64("search.seq", int64(sr.seq)),
			attribute.String("search.kind", string(kind)),
			attribute.String("search.carrier", carrier),
			attribute.Float64("search.lat", sr.coord.Lat),
			attribute.Float64("search.lon", sr.coord.Lon),
		))
	sr.cancel = cancel

	s.st.inflight = sr
	s.st.phase = domain.PhaseLoading

	s.logger.Info("Searching towers", "seq", sr.seq, "kind", kind, "carrier", carrier, "lat", sr.coord.Lat, "lon", sr.coord.Lon)

	go func() {
		towers, err := s.fetch(reqCtx, sr)
		s.post(func() { s.complete(sr, towers, err) })
	}()
}

func (s *Session) fetch(ctx context.Context, sr *search) ([]domain.Tower, error) {
	var (
		towers []domain.Tower
		err    error
	)
	switch sr.kind {
	case domain.SearchCarrier:
		towers, err = s.backend.FilterTowers(ctx, sr.coord, sr.carrier)
	default:
		towers, err = s.backend.BroadAreaSearch(ctx, sr.coord)
	}
	if err != nil {
		return nil, err
	}
	for i, t := range towers {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tower at index %d: %w", i, err)
		}
	}
	if towers == nil {
		towers = []domain.Tower{}
	}
	return towers, nil
}

// complete leaves Loading. Responses from superseded searches are dropped so
// they cannot clobber newer results.
func (s *Session) complete(sr *search, towers []domain.Tower, err error) {
	if s.st.inflight == nil || s.st.inflight.seq != sr.seq {
		telemetry.StaleResponses.WithLabelValues(string(sr.kind)).Inc()
		s.logger.Debug("Discarding stale search response", "seq", sr.seq, "latest", s.st.seq)
		return
	}
	s.st.inflight = nil
	s.st.phase = domain.PhaseIdle
	sr.cancel()
	defer sr.span.End()

	elapsed := s.now().Sub(sr.started)
	rec := &domain.SearchRecord{
		Seq:      sr.seq,
		Kind:     sr.kind,
		Carrier:  sr.carrier,
		Elapsed:  elapsed,
		Finished: s.now(),
	}

	if err != nil {
		// cache and overlays keep their last good state
		rec.Outcome = domain.OutcomeFailure
		s.logger.Error("Tower search failed", "seq", sr.seq, "kind", sr.kind, "error", err)
		sr.span.RecordError(err)
		sr.span.SetStatus(codes.Error, err.Error())
	} else {
		rec.Outcome = domain.OutcomeSuccess
		rec.Towers = len(towers)
		s.st.towers = towers
		s.view.RenderSummary(summary.Render(s.st.towers, s.st.filter))
		s.overlays.ReplaceTowerOverlays(s.st.towers, sr.kind == domain.SearchCarrier)
		s.logger.Info("Tower search complete", "seq", sr.seq, "towers", len(towers), "elapsed", elapsed)
		sr.span.SetAttributes(attribute.Int("search.towers", len(towers)))
	}
	s.st.last = rec

	sr.run.Finish()

	telemetry.SearchesTotal.WithLabelValues(string(sr.kind), string(rec.Outcome)).Inc()
	telemetry.SearchDuration.WithLabelValues(string(sr.kind)).Observe(elapsed.Seconds())

	if err != nil {
		s.view.Notify(domain.Notice{Level: domain.NoticeError, Message: domain.MsgSearchFailed})
	}
	s.view.Notify(domain.InfoNotice(fmt.Sprintf("Loading complete! Time taken: %.2f seconds", elapsed.Seconds())))
}
