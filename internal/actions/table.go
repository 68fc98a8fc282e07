// Package actions holds the immutable (mode, direction) -> KeyAction table.
package actions

import (
	"fmt"

	"gesturekey/internal/config"
	"gesturekey/internal/errors"
	"gesturekey/internal/gesture"
	"gesturekey/pkg/types"
)

// Row is the set of action slots of one mode.
type Row [types.SlotsPerMode]types.KeyAction

// Table is a fixed grid of key actions. It is never mutated after
// construction and is safe to share.
type Table struct {
	names []string
	rows  []Row
}

// New builds a table from rows. names may be shorter than rows; missing
// names default to "mode<N>".
func New(names []string, rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, errors.NewConfigError("action table needs at least one mode", "modes", errors.InvalidConfig, nil)
	}
	t := &Table{
		names: make([]string, len(rows)),
		rows:  make([]Row, len(rows)),
	}
	copy(t.rows, rows)
	for i := range t.names {
		t.names[i] = fmt.Sprintf("mode%d", i)
		if i < len(names) && names[i] != "" {
			t.names[i] = names[i]
		}
	}
	return t, nil
}

// FromConfig builds the full ModeCount-row table from the configured modes.
// Rows and slots the configuration does not mention are disabled.
func FromConfig(cfg *config.Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows := make([]Row, types.ModeCount)
	for i, mode := range cfg.Modes {
		for dir, spec := range mode.Actions {
			action, err := spec.KeyAction(fmt.Sprintf("modes[%d].actions.%s", i, dir))
			if err != nil {
				return nil, err
			}
			rows[i][config.Column(dir)] = action
		}
	}
	names := cfg.ModeNames()
	return New(names[:], rows)
}

// Modes returns the number of modes in the table.
func (t *Table) Modes() int {
	return len(t.rows)
}

// ModeName returns the display name of a mode, or "" when out of range.
func (t *Table) ModeName(mode int) string {
	if mode < 0 || mode >= len(t.names) {
		return ""
	}
	return t.names[mode]
}

// Slot returns the action at (mode, column). Out-of-range coordinates yield
// a disabled action.
func (t *Table) Slot(mode, column int) types.KeyAction {
	if mode < 0 || mode >= len(t.rows) || column < 0 || column >= types.SlotsPerMode {
		return types.KeyAction{}
	}
	return t.rows[mode][column]
}

// Lookup returns the action bound to a cardinal direction in mode.
// Non-cardinal directions yield a disabled action.
func (t *Table) Lookup(mode int, d types.Direction) types.KeyAction {
	column, ok := gesture.ToActionIndex(d)
	if !ok {
		return types.KeyAction{}
	}
	return t.Slot(mode, column)
}
