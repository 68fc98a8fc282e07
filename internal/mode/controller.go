// Package mode implements the mode selection state machine.
//
// In NORMAL state a FAR gesture enters SELECTING, cardinal gestures are
// handed back to the caller for dispatch and everything else is ignored.
// In SELECTING state LEFT/RIGHT browse modes with wraparound, NEAR commits
// the browsed mode without leaving selection and FAR leaves selection.
package mode

import (
	"gesturekey/internal/log"
	"gesturekey/internal/status"
	"gesturekey/pkg/types"
)

// State is the mode state owned by a Controller. Only the poll loop writes it.
type State struct {
	Current   int  // committed mode used for dispatch
	Selected  int  // mode being browsed while Selecting
	Selecting bool // whether the selection sub-state is active
}

// Displayed returns the mode the indicator should show.
func (s State) Displayed() int {
	if s.Selecting {
		return s.Selected
	}
	return s.Current
}

// Outcome tells the caller what to do after a gesture was handled.
type Outcome struct {
	Dispatch bool // run the action bound to the gesture in Mode
	Mode     int
}

// Controller interprets gestures against the mode state.
type Controller struct {
	state State
	modes int
	ind   status.Indicator
}

// NewController creates a controller for modes modes, starting in NORMAL
// with mode 0. ind receives the single-of-N mode indication.
func NewController(modes int, ind status.Indicator) *Controller {
	if modes < 1 {
		modes = 1
	}
	return &Controller{modes: modes, ind: ind}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Modes returns the number of modes the controller cycles through.
func (c *Controller) Modes() int {
	return c.modes
}

// Refresh drives the indicator to the displayed mode.
func (c *Controller) Refresh() {
	if c.ind != nil {
		c.ind.ShowMode(c.state.Displayed())
	}
}

// Handle applies one resolved gesture.
func (c *Controller) Handle(d types.Direction) Outcome {
	if c.state.Selecting {
		c.handleSelecting(d)
		c.Refresh()
		return Outcome{}
	}

	switch {
	case d == types.DirFar:
		c.state.Selecting = true
		c.state.Selected = c.state.Current
		log.LogWithFields(log.F("mode", c.state.Current)).Debug("entering mode selection")
		c.Refresh()
		return Outcome{}
	case d.IsCardinal():
		return Outcome{Dispatch: true, Mode: c.state.Current}
	default:
		// NEAR and NONE have no meaning outside selection
		return Outcome{}
	}
}

func (c *Controller) handleSelecting(d types.Direction) {
	switch d {
	case types.DirFar:
		c.state.Selecting = false
		log.LogWithFields(log.F("mode", c.state.Current)).Debug("leaving mode selection")
	case types.DirNear:
		// Commit stays in selection; only FAR leaves it.
		c.state.Current = c.state.Selected
		log.LogWithFields(log.F("mode", c.state.Current)).Info("mode committed")
	case types.DirLeft:
		c.state.Selected = (c.state.Selected - 1 + c.modes) % c.modes
	case types.DirRight:
		c.state.Selected = (c.state.Selected + 1) % c.modes
	}
}
