// Package irq abstracts the falling-edge interrupt of the gesture sensor.
package irq

import (
	"sync"

	"gesturekey/internal/errors"
)

// Controller attaches and detaches the gesture interrupt handler.
type Controller interface {
	Attach(handler func()) error
	Detach()
}

// Line is a software interrupt line. Trigger plays the role of a falling
// edge: it calls the attached handler, or does nothing while detached.
type Line struct {
	mu      sync.Mutex
	handler func()
	edges   int
	missed  int
}

// NewLine returns a detached line.
func NewLine() *Line {
	return &Line{}
}

// Attach installs handler. A nil handler is rejected.
func (l *Line) Attach(handler func()) error {
	if handler == nil {
		return errors.New("irq: nil handler")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
	return nil
}

// Detach removes the handler. Edges seen while detached are lost.
func (l *Line) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = nil
}

// Attached reports whether a handler is installed.
func (l *Line) Attached() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handler != nil
}

// Trigger simulates one falling edge and reports whether it was delivered.
// The handler runs with the line locked, so Detach returns only after any
// delivery in flight has finished. Handlers must not call back into the line.
func (l *Line) Trigger() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.edges++
	if l.handler == nil {
		l.missed++
		return false
	}
	l.handler()
	return true
}

// Counts returns the number of edges seen and how many found no handler.
func (l *Line) Counts() (edges, missed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.edges, l.missed
}
