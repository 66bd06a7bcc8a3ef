package progress

import (
	"sync"
	"time"

	"github.com/lcalzada-xor/towermap/internal/core/ports"
)

// Defaults match the cosmetic loading bar: 5% every 100ms.
const (
	DefaultStep     = 5
	DefaultInterval = 100 * time.Millisecond
)

// Simulator drives a loading bar on a fixed timer. It never observes the
// request it decorates; the bar may reach 100% before or after completion.
type Simulator struct {
	view     ports.ProgressView
	step     int
	interval time.Duration

	mu      sync.Mutex
	current *Run
	shown   int // indicator-only lookups still outstanding
}

// NewSimulator creates a simulator. Non-positive step or interval fall back
// to the defaults.
func NewSimulator(view ports.ProgressView, step int, interval time.Duration) *Simulator {
	if step <= 0 {
		step = DefaultStep
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		view:     view,
		step:     step,
		interval: interval,
	}
}

// Run is the cancellable handle of one counting sequence.
type Run struct {
	sim *Simulator

	mu      sync.Mutex
	percent int
	timer   *time.Timer
	done    bool
}

// Start cancels any previous run, resets the bar to 0 and starts counting.
func (s *Simulator) Start() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.cancel()
	}

	r := &Run{sim: s}
	s.current = r

	s.view.ShowProgress()
	s.view.SetProgress(0)
	r.tick()
	return r
}

// Active reports whether a counting run is in progress.
func (s *Simulator) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Show displays the indicator without counting, for short lookups. Every
// Show must be matched by one Hide.
func (s *Simulator) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown++
	s.view.ShowProgress()
}

// Hide closes an indicator opened with Show. The indicator stays up while a
// counting run or another lookup still needs it.
func (s *Simulator) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shown > 0 {
		s.shown--
	}
	if s.current != nil || s.shown > 0 {
		return
	}
	s.view.HideProgress()
	s.view.SetProgress(0)
}

func (r *Run) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done || r.percent >= 100 {
		return
	}
	r.percent += r.sim.step
	if r.percent > 100 {
		r.percent = 100
	}
	r.sim.view.SetProgress(r.percent)

	if r.percent < 100 {
		r.timer = time.AfterFunc(r.sim.interval, r.tick)
	}
}

// cancel stops the timer chain without touching the view.
func (r *Run) cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = true
	if r.timer != nil {
		r.timer.Stop()
	}
}

// Finish forces the bar to 100% and hides it. It is a no-op on a run that
// was already finished or superseded by a newer Start.
func (r *Run) Finish() {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	if r.timer != nil {
		r.timer.Stop()
	}
	r.percent = 100
	r.mu.Unlock()

	s := r.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == r {
		s.current = nil
	}
	s.view.SetProgress(100)
	if s.shown > 0 {
		return
	}
	s.view.HideProgress()
}

// Percent returns the current bar value.
func (r *Run) Percent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.percent
}
