// Package sensor provides gesture sensor implementations. All of them end in
// a Latch: a single-slot gesture register that raises an interrupt edge when
// a gesture becomes available.
package sensor

import (
	"context"
	"strconv"
	"strings"

	"gesturekey/internal/gesture"
	"gesturekey/internal/log"
	"gesturekey/pkg/types"
)

// Sensor is the gesture device the engine polls after an interrupt.
type Sensor interface {
	Init() error
	EnableGestures() error
	SetGestureGain(gain int) error
	IsGestureAvailable() bool
	ReadGesture() int
}

// ParseGesture reads one feed line: a direction name ("left", "FAR") or a
// raw numeric code. Blank lines and lines starting with '#' are skipped.
func ParseGesture(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, false
	}
	if code, err := strconv.Atoi(line); err == nil {
		return code, true
	}
	d, ok := types.ParseDirection(line)
	if !ok {
		return 0, false
	}
	if d == types.DirNone {
		return gesture.CodeNone, true
	}
	return gesture.CodeOf(d), true
}

// Pump pushes every parsable line into l until lines closes or ctx ends.
func Pump(ctx context.Context, lines <-chan string, l *Latch) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			code, ok := ParseGesture(line)
			if !ok {
				if strings.TrimSpace(line) != "" {
					log.LogWithFields(log.F("line", line)).Warn("unrecognised gesture line")
				}
				continue
			}
			l.Push(code)
		}
	}
}
