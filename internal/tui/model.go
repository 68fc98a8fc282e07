// Package tui is an interactive simulator: key presses become gestures that
// run through the full engine against an in-memory keyboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gesturekey/internal/actions"
	"gesturekey/internal/engine"
	"gesturekey/internal/gesture"
	"gesturekey/internal/hid"
	"gesturekey/internal/irq"
	"gesturekey/internal/sensor"
	"gesturekey/internal/status"
	"gesturekey/pkg/types"
)

const maxLogLines = 12

type Model struct {
	engine *engine.Engine
	latch  *sensor.Latch
	keyb   *hid.Recorder
	leds   *status.Recorder
	names  []string

	keys KeyMap
	help help.Model

	log      []string
	lastInfo string
	title    string
}

// New boots a simulated device around table. Blink patterns are skipped so
// the interface never stalls.
func New(title string, table *actions.Table, opts engine.Options) (*Model, error) {
	line := irq.NewLine()
	latch := sensor.NewLatch(func() { line.Trigger() })
	keyb := hid.NewRecorder()
	leds := &status.Recorder{}

	eng, err := engine.New(engine.Deps{
		Sensor:    latch,
		Transport: keyb,
		Indicator: leds,
		Interrupt: line,
		Table:     table,
	}, opts)
	if err != nil {
		return nil, err
	}
	eng.SetSleep(func(time.Duration) {})
	if err := eng.Boot(); err != nil {
		return nil, err
	}

	names := make([]string, table.Modes())
	for i := range names {
		names[i] = table.ModeName(i)
	}

	return &Model{
		engine: eng,
		latch:  latch,
		keyb:   keyb,
		leds:   leds,
		names:  names,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		title:  title,
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Connect):
		m.keyb.SetConnected(!m.keyb.IsConnected())
		m.lastInfo = fmt.Sprintf("connected: %t", m.keyb.IsConnected())
	case key.Matches(msg, m.keys.Left):
		m.Gesture(types.DirLeft)
	case key.Matches(msg, m.keys.Right):
		m.Gesture(types.DirRight)
	case key.Matches(msg, m.keys.Up):
		m.Gesture(types.DirUp)
	case key.Matches(msg, m.keys.Down):
		m.Gesture(types.DirDown)
	case key.Matches(msg, m.keys.Near):
		m.Gesture(types.DirNear)
	case key.Matches(msg, m.keys.Far):
		m.Gesture(types.DirFar)
	}
	return m, nil
}

// Gesture feeds d to the simulated sensor and runs one poll step.
func (m *Model) Gesture(d types.Direction) {
	m.lastInfo = m.engine.Describe(d)
	m.latch.Push(gesture.CodeOf(d))
	if !m.engine.Step() {
		m.lastInfo = d.String() + " dropped"
	}

	m.log = append(m.log, m.keyb.Strings()...)
	m.keyb.Reset()
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// Log returns the most recent HID calls, oldest first.
func (m *Model) Log() []string {
	return append([]string(nil), m.log...)
}

// Stats returns the engine counters.
func (m *Model) Stats() engine.Stats {
	return m.engine.Stats()
}

// Connected reports the simulated link state.
func (m *Model) Connected() bool {
	return m.keyb.IsConnected()
}

// View implements tea.Model
func (m *Model) View() string {
	stats := m.engine.Stats()
	st := stats.Mode

	statusOn := false
	if s := m.leds.Status(); len(s) > 0 {
		statusOn = s[len(s)-1]
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(status.RenderLEDs(m.names, m.leds.Mode(), statusOn))
	b.WriteString("\n\n")

	if st.Selecting {
		b.WriteString(SelectedStyle.Render(fmt.Sprintf("SELECTING %s (current %s)", m.names[st.Selected], m.names[st.Current])))
	} else {
		b.WriteString(fmt.Sprintf("NORMAL %s", m.names[st.Current]))
	}
	b.WriteString("  ")
	if m.keyb.IsConnected() {
		b.WriteString(SuccessStyle.Render("connected"))
	} else {
		b.WriteString(ErrorStyle.Render("disconnected"))
	}
	b.WriteString("\n")

	if m.lastInfo != "" {
		b.WriteString(StatusStyle.Render(m.lastInfo))
		b.WriteString("\n")
	}
	b.WriteString(StatusStyle.Render(fmt.Sprintf(
		"processed %d  dispatched %d  ignored %d  dropped %d",
		stats.Processed, stats.Dispatched, stats.Ignored, stats.Dropped,
	)))
	b.WriteString("\n\n")

	for _, line := range m.log {
		b.WriteString(LogStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return App.Render(lipgloss.JoinVertical(lipgloss.Left, b.String()))
}
