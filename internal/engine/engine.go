// Package engine wires sensor, mode controller, dispatcher and event gate
// into the device's boot sequence and poll loop.
package engine

import (
	"context"
	"sync"
	"time"

	"gesturekey/internal/actions"
	"gesturekey/internal/config"
	"gesturekey/internal/dispatch"
	"gesturekey/internal/errors"
	"gesturekey/internal/gate"
	"gesturekey/internal/gesture"
	"gesturekey/internal/hid"
	"gesturekey/internal/irq"
	"gesturekey/internal/log"
	"gesturekey/internal/mode"
	"gesturekey/internal/sensor"
	"gesturekey/internal/status"
	"gesturekey/pkg/types"
)

// Deps are the collaborators an Engine drives.
type Deps struct {
	Sensor    sensor.Sensor
	Transport hid.Transport
	Indicator status.Indicator
	Interrupt irq.Controller
	Table     *actions.Table
}

// Options tune timing and sensor setup.
type Options struct {
	GestureGain   int
	BootBlink     time.Duration
	ActivityBlink time.Duration
	PanicBlink    time.Duration
	PollInterval  time.Duration
}

// OptionsFromConfig extracts engine options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		GestureGain:   cfg.Sensor.GestureGain,
		BootBlink:     cfg.Feedback.BootBlink,
		ActivityBlink: cfg.Feedback.ActivityBlink,
		PanicBlink:    cfg.Feedback.PanicBlink,
		PollInterval:  cfg.PollInterval,
	}
}

// Stats is a snapshot of runtime counters and mode state.
type Stats struct {
	Booted       bool
	Processed    int // gestures read from the sensor
	Dispatched   int // gestures that pressed a key
	Dropped      int // interrupts discarded while the transport was disconnected
	Ignored      int // gestures with no effect
	Empty        int // passes that found no gesture
	LastActivity time.Time
	Mode         mode.State
}

// Engine runs the gesture pipeline. Step and Run must be called from a
// single goroutine; interrupt sources only touch the gate.
type Engine struct {
	sensor     sensor.Sensor
	transport  hid.Transport
	table      *actions.Table
	blinker    *status.Blinker
	gate       *gate.Gate
	controller *mode.Controller
	dispatcher *dispatch.Dispatcher
	opts       Options
	now        func() time.Time

	mu    sync.RWMutex
	stats Stats
}

// New validates deps and builds an engine. Nothing is touched until Boot.
func New(deps Deps, opts Options) (*Engine, error) {
	switch {
	case deps.Sensor == nil:
		return nil, errors.New("engine: sensor is required")
	case deps.Transport == nil:
		return nil, errors.New("engine: transport is required")
	case deps.Indicator == nil:
		return nil, errors.New("engine: indicator is required")
	case deps.Interrupt == nil:
		return nil, errors.New("engine: interrupt controller is required")
	case deps.Table == nil:
		return nil, errors.New("engine: action table is required")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Millisecond
	}

	e := &Engine{
		sensor:     deps.Sensor,
		transport:  deps.Transport,
		table:      deps.Table,
		blinker:    status.NewBlinker(deps.Indicator),
		gate:       gate.New(deps.Interrupt),
		controller: mode.NewController(deps.Table.Modes(), deps.Indicator),
		dispatcher: dispatch.New(deps.Table, deps.Transport),
		opts:       opts,
		now:        time.Now,
	}
	return e, nil
}

// SetSleep replaces the delay used by blink patterns.
func (e *Engine) SetSleep(sleep func(time.Duration)) {
	e.blinker.SetSleep(sleep)
}

// Boot runs the start-up sequence: boot blink, sensor initialisation,
// gesture engine setup, mode indication and interrupt arming. A sensor
// that fails to initialise is fatal and returned as a *errors.SensorError;
// gesture engine setup failures are logged and boot continues.
func (e *Engine) Boot() error {
	e.blinker.Boot(e.opts.BootBlink)

	if err := e.sensor.Init(); err != nil {
		if !errors.IsFatalSensor(err) {
			err = errors.NewSensorError("gesture sensor initialization failed", "init", errors.SensorInitFailed, err)
		}
		log.LogWithError(err).Error("gesture sensor initialization failed")
		return err
	}
	if err := e.sensor.EnableGestures(); err != nil {
		log.LogWithError(err).Warn("cannot set up the gesture sensor")
	}
	if err := e.sensor.SetGestureGain(e.opts.GestureGain); err != nil {
		log.LogWithError(err).Warn("cannot configure gesture gain")
	}

	e.controller.Refresh()

	if err := e.gate.Arm(); err != nil {
		return errors.NewSensorError("cannot arm gesture interrupt", "attach", errors.InterruptAttachFailed, err)
	}

	e.mu.Lock()
	e.stats.Booted = true
	e.stats.LastActivity = e.now()
	e.stats.Mode = e.controller.State()
	e.mu.Unlock()

	log.LogWithFields(log.F("modes", e.table.Modes()), log.F("gain", e.opts.GestureGain)).Info("gesture engine ready")
	return nil
}

// Step runs one poll loop iteration and reports whether a gesture pass ran.
// A pending interrupt is discarded while the transport is disconnected.
func (e *Engine) Step() bool {
	if !e.gate.Pending() {
		return false
	}
	if !e.transport.IsConnected() {
		e.gate.Clear()
		e.mu.Lock()
		e.stats.Dropped++
		e.mu.Unlock()
		log.LogWithError(errors.ErrNotConnected).Debug("gesture dropped")
		return false
	}

	return e.gate.Process(func() {
		e.handle()
		e.blinker.Activity(e.opts.ActivityBlink)
	})
}

func (e *Engine) handle() {
	if !e.sensor.IsGestureAvailable() {
		e.mu.Lock()
		e.stats.Empty++
		e.mu.Unlock()
		return
	}

	code := e.sensor.ReadGesture()
	dir := gesture.ResolveDirection(code)
	before := e.controller.State()
	outcome := e.controller.Handle(dir)

	dispatched := false
	if outcome.Dispatch {
		dispatched = e.dispatcher.Dispatch(outcome.Mode, dir)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Mode = e.controller.State()
	e.stats.Processed++
	e.stats.LastActivity = e.now()
	switch {
	case dispatched:
		e.stats.Dispatched++
	case !outcome.Dispatch && e.stats.Mode == before:
		e.stats.Ignored++
		log.LogWithFields(log.F("code", code), log.F("direction", dir.String())).Debug("gesture ignored")
	}
}

// Run polls Step every PollInterval until ctx is done, then releases all
// keys. Boot must have succeeded first.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.RLock()
	booted := e.stats.Booted
	e.mu.RUnlock()
	if !booted {
		return errors.New("engine: Run called before a successful Boot")
	}

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.transport.ReleaseAll()
			log.Info("gesture engine stopped")
			return nil
		case <-ticker.C:
			for e.Step() {
			}
		}
	}
}

// Panic plays the fatal error pattern until ctx is done. Nothing else runs.
func (e *Engine) Panic(ctx context.Context) {
	e.blinker.Panic(ctx, e.opts.PanicBlink)
}

// Stats returns a snapshot of the counters and the current mode state.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// Table returns the action table the engine dispatches from.
func (e *Engine) Table() *actions.Table {
	return e.table
}

// ModeName returns the configured name of mode.
func (e *Engine) ModeName(m int) string {
	return e.table.ModeName(m)
}

// Describe renders what d would do in the current state. Call it from the
// goroutine that runs Step.
func (e *Engine) Describe(d types.Direction) string {
	st := e.controller.State()
	if st.Selecting {
		return d.String() + " (selecting)"
	}
	return d.String() + " -> " + e.table.Lookup(st.Current, d).String()
}
