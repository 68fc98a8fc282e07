package sensor

import (
	"sync"

	"gesturekey/internal/errors"
	"gesturekey/internal/gesture"
)

// Latch is an in-memory gesture register. Push stores a code and raises the
// edge callback; an unread code is overwritten by the next push.
type Latch struct {
	mu        sync.Mutex
	code      int
	available bool
	edge      func()

	initErr   error
	enableErr error
	gainErr   error

	enabled     bool
	gain        int
	reads       int
	overwritten int
}

// NewLatch creates a latch that calls edge after every push. edge may be nil.
func NewLatch(edge func()) *Latch {
	return &Latch{edge: edge}
}

// SetEdge replaces the edge callback.
func (l *Latch) SetEdge(edge func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.edge = edge
}

// FailInit makes Init return err.
func (l *Latch) FailInit(err error) { l.mu.Lock(); l.initErr = err; l.mu.Unlock() }

// FailEnable makes EnableGestures return err.
func (l *Latch) FailEnable(err error) { l.mu.Lock(); l.enableErr = err; l.mu.Unlock() }

// FailGain makes SetGestureGain return err.
func (l *Latch) FailGain(err error) { l.mu.Lock(); l.gainErr = err; l.mu.Unlock() }

func (l *Latch) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.initErr != nil {
		return errors.NewSensorError("gesture sensor did not respond", "init", errors.SensorInitFailed, l.initErr)
	}
	return nil
}

func (l *Latch) EnableGestures() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enableErr != nil {
		return errors.NewSensorError("cannot enable gesture engine", "enable_gestures", errors.SensorConfigFailed, l.enableErr)
	}
	l.enabled = true
	return nil
}

func (l *Latch) SetGestureGain(gain int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gainErr != nil {
		return errors.NewSensorError("cannot set gesture gain", "set_gesture_gain", errors.SensorConfigFailed, l.gainErr)
	}
	l.gain = gain
	return nil
}

func (l *Latch) IsGestureAvailable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available
}

// ReadGesture returns the latched code and empties the slot. It returns
// CodeNone if nothing is latched.
func (l *Latch) ReadGesture() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.available {
		return gesture.CodeNone
	}
	l.available = false
	l.reads++
	return l.code
}

// Push latches code and raises the edge.
func (l *Latch) Push(code int) {
	l.mu.Lock()
	if l.available {
		l.overwritten++
	}
	l.code = code
	l.available = true
	edge := l.edge
	l.mu.Unlock()

	if edge != nil {
		edge()
	}
}

// Enabled reports whether EnableGestures succeeded.
func (l *Latch) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Gain returns the last gain set.
func (l *Latch) Gain() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gain
}

// Reads returns how many gestures were read.
func (l *Latch) Reads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reads
}

// Overwritten returns how many unread gestures were replaced by a push.
func (l *Latch) Overwritten() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.overwritten
}
