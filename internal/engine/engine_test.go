package engine

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gesturekey/internal/actions"
	"gesturekey/internal/config"
	"gesturekey/internal/errors"
	"gesturekey/internal/gesture"
	"gesturekey/internal/hid"
	"gesturekey/internal/irq"
	"gesturekey/internal/log"
	"gesturekey/internal/sensor"
	"gesturekey/internal/status"
)

type rig struct {
	eng   *Engine
	latch *sensor.Latch
	line  *irq.Line
	rec   *hid.Recorder
	ind   *status.Recorder
}

func newRig(t *testing.T) *rig {
	t.Helper()
	table, err := actions.FromConfig(config.New())
	require.NoError(t, err)

	r := &rig{
		line: irq.NewLine(),
		rec:  hid.NewRecorder(),
		ind:  &status.Recorder{},
	}
	r.latch = sensor.NewLatch(func() { r.line.Trigger() })

	r.eng, err = New(Deps{
		Sensor:    r.latch,
		Transport: r.rec,
		Indicator: r.ind,
		Interrupt: r.line,
		Table:     table,
	}, Options{GestureGain: 1, PollInterval: time.Millisecond})
	require.NoError(t, err)
	r.eng.SetSleep(func(time.Duration) {})
	return r
}

func (r *rig) boot(t *testing.T) {
	t.Helper()
	require.NoError(t, r.eng.Boot())
	r.ind.Reset()
	r.rec.Reset()
}

// gesture pushes code into the sensor and runs the poll loop once.
func (r *rig) gesture(t *testing.T, code int) {
	t.Helper()
	r.latch.Push(code)
	require.True(t, r.eng.Step(), "expected a gesture pass")
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{}, Options{})
	assert.Error(t, err)
}

func TestBoot(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.eng.Boot())

	assert.Equal(t, []bool{false, true, false, true, false}, r.ind.Status())
	assert.Equal(t, 0, r.ind.Mode())
	assert.True(t, r.latch.Enabled())
	assert.Equal(t, 1, r.latch.Gain())
	assert.True(t, r.line.Attached())
	assert.True(t, r.eng.Stats().Booted)
}

func TestBootFatalSensor(t *testing.T) {
	r := newRig(t)
	r.latch.FailInit(io.ErrUnexpectedEOF)

	err := r.eng.Boot()
	require.Error(t, err)
	assert.True(t, errors.IsFatalSensor(err))
	assert.False(t, r.line.Attached())
	assert.Equal(t, -1, r.ind.Mode())
	assert.Error(t, r.eng.Run(context.Background()))
}

func TestBootDegradedSensor(t *testing.T) {
	r := newRig(t)
	r.latch.FailEnable(io.ErrUnexpectedEOF)
	r.latch.FailGain(io.ErrUnexpectedEOF)

	require.NoError(t, r.eng.Boot())
	assert.True(t, r.line.Attached())
}

func TestPanicBlinksUntilCancelled(t *testing.T) {
	r := newRig(t)
	ctx, cancel := context.WithCancel(context.Background())
	sleeps := 0
	r.eng.SetSleep(func(time.Duration) {
		sleeps++
		if sleeps == 6 {
			cancel()
		}
	})

	r.eng.Panic(ctx)
	assert.Equal(t, []bool{false, true, false, true, false, true}, r.ind.Status())
}

func TestScenarioMediaTap(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	r.gesture(t, gesture.CodeLeft)

	assert.Equal(t, []string{"release_all", "media PLAY_PAUSE", "release_all"}, r.rec.Strings())
	assert.Equal(t, []bool{false, true, false}, r.ind.Status(), "activity blink")
	stats := r.eng.Stats()
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Dispatched)
	assert.False(t, r.eng.Step(), "flag cleared after the pass")
}

func TestScenarioEnterSelection(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	r.gesture(t, gesture.CodeFar)

	st := r.eng.Stats().Mode
	assert.True(t, st.Selecting)
	assert.Equal(t, 0, st.Selected)
	assert.Equal(t, 0, r.ind.Mode())
	assert.Empty(t, r.rec.Calls())
}

func TestScenarioSelectAndCommit(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	for _, code := range []int{gesture.CodeFar, gesture.CodeRight, gesture.CodeRight, gesture.CodeNear, gesture.CodeFar} {
		r.gesture(t, code)
	}

	st := r.eng.Stats().Mode
	assert.Equal(t, 2, st.Current)
	assert.False(t, st.Selecting)
	assert.Equal(t, []int{0, 1, 2, 2, 2}, r.ind.Modes())
	assert.Empty(t, r.rec.Calls())
}

func TestScenarioHoldThenNext(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	for _, code := range []int{gesture.CodeFar, gesture.CodeLeft, gesture.CodeLeft, gesture.CodeLeft, gesture.CodeNear, gesture.CodeFar} {
		r.gesture(t, code)
	}
	require.Equal(t, 3, r.eng.Stats().Mode.Current)

	r.gesture(t, gesture.CodeUp)
	assert.Equal(t, []string{"release_all", "press W"}, r.rec.Strings())

	r.rec.Reset()
	r.gesture(t, gesture.CodeRight)
	assert.Equal(t, []string{"release_all", "press D"}, r.rec.Strings())
}

func TestDisconnectedDropsWithoutTouchingSensor(t *testing.T) {
	r := newRig(t)
	r.boot(t)
	r.rec.SetConnected(false)

	r.latch.Push(gesture.CodeLeft)
	assert.False(t, r.eng.Step())
	assert.False(t, r.eng.Step(), "pending flag consumed")

	assert.Empty(t, r.rec.Calls())
	assert.Equal(t, 0, r.latch.Reads())
	assert.True(t, r.latch.IsGestureAvailable())
	assert.Equal(t, 1, r.eng.Stats().Dropped)

	r.rec.SetConnected(true)
	assert.False(t, r.eng.Step(), "dropped gestures are not queued")
}

func TestDisconnectedDropIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.WithOutput(&buf))
	log.SetDebug(true)
	defer func() {
		log.SetDebug(false)
		log.Configure()
	}()

	r := newRig(t)
	r.boot(t)
	r.rec.SetConnected(false)
	r.latch.Push(gesture.CodeUp)
	assert.False(t, r.eng.Step())

	assert.Contains(t, buf.String(), "gesture dropped")
	assert.Contains(t, buf.String(), errors.ErrNotConnected.Error())
}

func TestGestureDuringPassIsDropped(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	pushed := false
	r.rec.OnCall(func(hid.Call) {
		if !pushed {
			pushed = true
			r.latch.Push(gesture.CodeRight)
		}
	})

	r.gesture(t, gesture.CodeLeft)
	assert.False(t, r.eng.Step(), "edge while detached must not leave a pending flag")
	assert.Equal(t, 1, r.eng.Stats().Processed)

	_, missed := r.line.Counts()
	assert.Equal(t, 1, missed)

	r.rec.OnCall(nil)
	r.gesture(t, gesture.CodeUp)
	assert.Equal(t, 2, r.eng.Stats().Processed)
}

func TestUnknownAndIgnoredGestures(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	r.gesture(t, gesture.CodeAll)
	r.gesture(t, 99)
	r.gesture(t, gesture.CodeNear)
	r.gesture(t, gesture.CodeNone)

	assert.Empty(t, r.rec.Calls())
	stats := r.eng.Stats()
	assert.Equal(t, 4, stats.Processed)
	assert.Equal(t, 4, stats.Ignored)
	assert.Equal(t, 0, stats.Dispatched)
}

func TestDisabledSlotCountsAsProcessed(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	// select mode 5, whose slots are all disabled
	for _, code := range []int{gesture.CodeFar, gesture.CodeLeft, gesture.CodeNear, gesture.CodeFar} {
		r.gesture(t, code)
	}
	r.rec.Reset()
	r.gesture(t, gesture.CodeDown)

	assert.Equal(t, []string{"release_all"}, r.rec.Strings())
	assert.Equal(t, 0, r.eng.Stats().Dispatched)
}

func TestEmptyPass(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	r.line.Trigger()
	assert.True(t, r.eng.Step())
	assert.Equal(t, 1, r.eng.Stats().Empty)
	assert.Equal(t, []bool{false, true, false}, r.ind.Status(), "activity blink even without gesture")
}

func TestRun(t *testing.T) {
	r := newRig(t)
	r.boot(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.eng.Run(ctx) }()

	r.latch.Push(gesture.CodeDown)
	require.Eventually(t, func() bool { return r.eng.Stats().Dispatched == 1 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	calls := r.rec.Strings()
	assert.Equal(t, []string{"release_all", "media NEXT_TRACK", "release_all", "release_all"}, calls)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.New()
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, cfg.Sensor.GestureGain, opts.GestureGain)
	assert.Equal(t, 100*time.Millisecond, opts.BootBlink)
	assert.Equal(t, 250*time.Millisecond, opts.ActivityBlink)
	assert.Equal(t, cfg.PollInterval, opts.PollInterval)
}
