// Package hid contains the keyboard transports gesture actions are sent to.
package hid

import (
	"fmt"
	"sync"
	"sync/atomic"

	"gesturekey/internal/log"
	"gesturekey/pkg/types"
)

// Transport is the HID keyboard the dispatcher drives. Calls are assumed
// synchronous; failures are the transport's own concern.
type Transport interface {
	IsConnected() bool
	Press(key types.KeyCode)
	PressMedia(key types.MediaKey)
	ReleaseAll()
}

// Op identifies a recorded transport call.
type Op int

const (
	OpPress Op = iota
	OpPressMedia
	OpReleaseAll
)

// Call is one recorded transport call.
type Call struct {
	Op    Op
	Key   types.KeyCode
	Media types.MediaKey
}

func (c Call) String() string {
	switch c.Op {
	case OpPress:
		return "press " + c.Key.String()
	case OpPressMedia:
		return "media " + c.Media.String()
	default:
		return "release_all"
	}
}

// Recorder is an in-memory Transport. It starts connected.
type Recorder struct {
	mu        sync.Mutex
	calls     []Call
	connected atomic.Bool
	onCall    func(Call)
}

// NewRecorder returns a connected Recorder.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.connected.Store(true)
	return r
}

// SetConnected changes what IsConnected reports.
func (r *Recorder) SetConnected(connected bool) {
	r.connected.Store(connected)
}

// OnCall registers fn to run after every recorded call.
func (r *Recorder) OnCall(fn func(Call)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCall = fn
}

func (r *Recorder) IsConnected() bool {
	return r.connected.Load()
}

func (r *Recorder) Press(key types.KeyCode) {
	r.record(Call{Op: OpPress, Key: key})
}

func (r *Recorder) PressMedia(key types.MediaKey) {
	r.record(Call{Op: OpPressMedia, Media: key})
}

func (r *Recorder) ReleaseAll() {
	r.record(Call{Op: OpReleaseAll})
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	fn := r.onCall
	r.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

// Calls returns a copy of every recorded call.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Strings returns the recorded calls rendered with Call.String.
func (r *Recorder) Strings() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Logged wraps a Transport and logs every call.
type Logged struct {
	next Transport
	name string
}

// NewLogged decorates next; name labels the log lines.
func NewLogged(next Transport, name string) *Logged {
	return &Logged{next: next, name: name}
}

func (l *Logged) IsConnected() bool {
	return l.next.IsConnected()
}

func (l *Logged) Press(key types.KeyCode) {
	log.LogWithFields(log.F("transport", l.name), log.F("key", key.String())).Info("press")
	l.next.Press(key)
}

func (l *Logged) PressMedia(key types.MediaKey) {
	log.LogWithFields(log.F("transport", l.name), log.F("media", key.String())).Info("press media")
	l.next.PressMedia(key)
}

func (l *Logged) ReleaseAll() {
	log.LogWithFields(log.F("transport", l.name)).Debug("release all")
	l.next.ReleaseAll()
}

// String describes the wrapped transport.
func (l *Logged) String() string {
	return fmt.Sprintf("logged(%s)", l.name)
}
