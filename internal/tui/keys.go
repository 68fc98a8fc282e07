package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds keyboard keys to simulated gestures.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Near, Far             key.Binding
	Connect, Quit         key.Binding
}

// DefaultKeyMap uses the arrow keys for the four swipes.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Near:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "near")),
		Far:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "far")),
		Connect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Near, k.Far, k.Connect, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Near, k.Far},
		{k.Connect, k.Quit},
	}
}
