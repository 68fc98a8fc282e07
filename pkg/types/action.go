package types

import (
	"fmt"
	"strings"
)

const (
	// ModeCount is the number of selectable modes.
	ModeCount = 6
	// SlotsPerMode is the number of action slots per mode. Only the first
	// len(Cardinals) slots are reachable from a gesture.
	SlotsPerMode = 6
	// MaxModifiers is the number of modifier slots in a KeyAction.
	MaxModifiers = 3
)

// MainKey is the key pressed after the modifiers of a KeyAction. It is
// either a Literal keyboard usage or a Media consumer usage.
type MainKey interface {
	fmt.Stringer
	isMainKey()
}

// Literal is a keyboard page key.
type Literal struct {
	Code KeyCode
}

// Media is a consumer control key.
type Media struct {
	Key MediaKey
}

func (Literal) isMainKey() {}
func (Media) isMainKey()   {}

func (l Literal) String() string { return l.Code.String() }
func (m Media) String() string   { return m.Key.String() }

// KeyAction describes the output produced for one (mode, direction) slot.
type KeyAction struct {
	Enabled   bool
	Modifiers [MaxModifiers]KeyCode // KeyNone marks an unused slot
	Key       MainKey
	Hold      bool // keep keys pressed after dispatch
}

// String renders the action as e.g. "LEFT_CTRL+LEFT_SHIFT+T" or "PLAY_PAUSE (hold)".
func (a KeyAction) String() string {
	if !a.Enabled || a.Key == nil {
		return "-"
	}
	var parts []string
	for _, m := range a.Modifiers {
		if m != KeyNone {
			parts = append(parts, m.String())
		}
	}
	parts = append(parts, a.Key.String())
	s := strings.Join(parts, "+")
	if a.Hold {
		s += " (hold)"
	}
	return s
}
