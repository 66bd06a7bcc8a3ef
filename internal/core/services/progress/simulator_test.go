package progress

import (
	"testing"
	"time"

	"github.com/lcalzada-xor/towermap/internal/mock"
	"github.com/stretchr/testify/assert"
)

func TestSimulator_CountsToHundred(t *testing.T) {
	view := mock.NewRecordingView()
	sim := NewSimulator(view, 25, 5*time.Millisecond)

	run := sim.Start()
	assert.True(t, view.ProgressVisible())

	assert.Eventually(t, func() bool { return run.Percent() == 100 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{0, 25, 50, 75, 100}, view.Progress())

	// Reaching 100 does not hide the bar; only Finish does.
	assert.True(t, view.ProgressVisible())
	run.Finish()
	assert.False(t, view.ProgressVisible())
	assert.False(t, sim.Active())
}

func TestSimulator_FinishForcesHundred(t *testing.T) {
	view := mock.NewRecordingView()
	sim := NewSimulator(view, 5, time.Hour)

	run := sim.Start()
	assert.Equal(t, 5, run.Percent())

	run.Finish()
	progress := view.Progress()
	assert.Equal(t, 100, progress[len(progress)-1])
	assert.False(t, view.ProgressVisible())

	// Idempotent
	run.Finish()
	assert.Equal(t, 1, view.ProgressHides())
}

func TestSimulator_RestartSupersedesPreviousRun(t *testing.T) {
	view := mock.NewRecordingView()
	sim := NewSimulator(view, 10, 5*time.Millisecond)

	first := sim.Start()
	time.Sleep(20 * time.Millisecond)
	second := sim.Start()

	frozen := first.Percent()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, first.Percent(), "superseded run stops counting")

	// A superseded run finishing must not hide the newer run's bar.
	first.Finish()
	assert.True(t, view.ProgressVisible())
	assert.True(t, sim.Active())

	second.Finish()
	assert.False(t, view.ProgressVisible())
}

func TestSimulator_ShowHideLeavesRunAlone(t *testing.T) {
	view := mock.NewRecordingView()
	sim := NewSimulator(view, 0, 0)
	assert.Equal(t, DefaultStep, sim.step)
	assert.Equal(t, DefaultInterval, sim.interval)

	sim.Show()
	assert.True(t, view.ProgressVisible())
	sim.Hide()
	assert.False(t, view.ProgressVisible())

	run := sim.Start()
	sim.Hide()
	assert.True(t, view.ProgressVisible())
	run.Finish()
}

func TestSimulator_FinishKeepsLookupIndicator(t *testing.T) {
	view := mock.NewRecordingView()
	sim := NewSimulator(view, 5, time.Hour)

	run := sim.Start()
	sim.Show()

	run.Finish()
	assert.True(t, view.ProgressVisible(), "pending lookup keeps the indicator up")
	assert.Equal(t, 0, view.ProgressHides())

	sim.Hide()
	assert.False(t, view.ProgressVisible())
}

func TestSimulator_OverlappingLookups(t *testing.T) {
	view := mock.NewRecordingView()
	sim := NewSimulator(view, 5, time.Hour)

	sim.Show()
	sim.Show()
	sim.Hide()
	assert.True(t, view.ProgressVisible())

	sim.Hide()
	assert.False(t, view.ProgressVisible())

	// Unbalanced Hide does not underflow.
	sim.Hide()
	sim.Show()
	assert.True(t, view.ProgressVisible())
	sim.Hide()
	assert.False(t, view.ProgressVisible())
}
