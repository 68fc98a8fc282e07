// Package gate coordinates the sensor interrupt with the poll loop.
//
// The interrupt handler only sets a pending flag. The poll loop consumes it
// with Process, which keeps the interrupt detached for the whole pass so a
// pass can never overlap another and edges during a pass are dropped.
package gate

import (
	"sync/atomic"

	"gesturekey/internal/errors"
	"gesturekey/internal/irq"
	"gesturekey/internal/log"
)

// Gate owns the pending flag and the interrupt attachment.
type Gate struct {
	pending atomic.Bool
	line    irq.Controller
	passes  atomic.Uint64
}

// New creates a gate over line. The interrupt is not attached until Arm.
func New(line irq.Controller) *Gate {
	return &Gate{line: line}
}

// Signal is the interrupt handler. It must stay minimal.
func (g *Gate) Signal() {
	g.pending.Store(true)
}

// Arm attaches Signal to the interrupt line.
func (g *Gate) Arm() error {
	if err := g.line.Attach(g.Signal); err != nil {
		return errors.Wrap(err, "cannot attach gesture interrupt")
	}
	return nil
}

// Pending reports whether an interrupt is waiting to be handled.
func (g *Gate) Pending() bool {
	return g.pending.Load()
}

// Clear drops a pending interrupt without processing it.
func (g *Gate) Clear() {
	g.pending.Store(false)
}

// Passes returns how many processing passes have completed.
func (g *Gate) Passes() uint64 {
	return g.passes.Load()
}

// Process runs fn as one gated pass: detach, fn, clear pending, re-attach.
// It does nothing and returns false if no interrupt is pending.
func (g *Gate) Process(fn func()) bool {
	if !g.pending.Load() {
		return false
	}

	g.line.Detach()
	fn()
	g.pending.Store(false)
	if err := g.line.Attach(g.Signal); err != nil {
		log.LogWithError(err).Error("cannot re-attach gesture interrupt")
	}
	g.passes.Add(1)
	return true
}
