// Package dispatch turns (mode, direction) pairs into HID key sequences.
package dispatch

import (
	"gesturekey/internal/actions"
	"gesturekey/internal/hid"
	"gesturekey/internal/log"
	"gesturekey/pkg/types"
)

// Dispatcher executes action table entries against a transport.
type Dispatcher struct {
	table     *actions.Table
	transport hid.Transport
}

// New creates a dispatcher for table writing to transport.
func New(table *actions.Table, transport hid.Transport) *Dispatcher {
	return &Dispatcher{table: table, transport: transport}
}

// Dispatch executes the action bound to d in mode. Every call starts with
// ReleaseAll so held keys from a previous hold action never leak into the
// next one. Disabled or missing slots emit only that release. It reports
// whether a key was pressed.
func (d *Dispatcher) Dispatch(mode int, dir types.Direction) bool {
	d.transport.ReleaseAll()

	action := d.table.Lookup(mode, dir)
	if !action.Enabled || action.Key == nil {
		log.LogWithFields(log.F("mode", mode), log.F("direction", dir.String())).Debug("no action bound")
		return false
	}

	for _, m := range action.Modifiers {
		if m != types.KeyNone {
			d.transport.Press(m)
		}
	}

	switch key := action.Key.(type) {
	case types.Literal:
		d.transport.Press(key.Code)
	case types.Media:
		d.transport.PressMedia(key.Key)
	}

	if !action.Hold {
		d.transport.ReleaseAll()
	}

	log.LogWithFields(
		log.F("mode", mode),
		log.F("direction", dir.String()),
		log.F("action", action.String()),
	).Debug("dispatched")
	return true
}
