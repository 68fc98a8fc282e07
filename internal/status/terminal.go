package status

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	ledOn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F")).Bold(true)
	ledOff    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	ledStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A623")).Bold(true)
)

// Terminal renders the indicator state as one line per change.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	names  []string
	mode   int
	status bool
}

// NewTerminal writes to out; names labels each mode output.
func NewTerminal(out io.Writer, names []string) *Terminal {
	return &Terminal{out: out, names: names}
}

func (t *Terminal) ShowMode(mode int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = mode
	t.render()
}

func (t *Terminal) SetStatus(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = on
	t.render()
}

func (t *Terminal) render() {
	fmt.Fprintln(t.out, RenderLEDs(t.names, t.mode, t.status))
}

// RenderLEDs draws one LED per mode name plus the status LED.
func RenderLEDs(names []string, mode int, status bool) string {
	var sb strings.Builder
	for i, name := range names {
		if i == mode {
			sb.WriteString(ledOn.Render("● " + name))
		} else {
			sb.WriteString(ledOff.Render("○ " + name))
		}
		sb.WriteString("  ")
	}
	if status {
		sb.WriteString(ledStatus.Render("◆ status"))
	} else {
		sb.WriteString(ledOff.Render("◇ status"))
	}
	return sb.String()
}
