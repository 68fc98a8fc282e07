// Package status drives the mode indicator (one of N outputs lit) and the
// general purpose status output used for boot, activity and panic patterns.
package status

import (
	"context"
	"sync"
	"time"
)

// Indicator is a pure side-effect sink for device status.
type Indicator interface {
	// ShowMode lights exactly the output for mode and clears the others.
	ShowMode(mode int)
	// SetStatus drives the general purpose status output.
	SetStatus(on bool)
}

// Blinker plays timed patterns on an Indicator's status output.
type Blinker struct {
	ind   Indicator
	sleep func(time.Duration)

	mu sync.Mutex
	on bool
}

// NewBlinker returns a Blinker that waits with time.Sleep.
func NewBlinker(ind Indicator) *Blinker {
	return &Blinker{ind: ind, sleep: time.Sleep}
}

// SetSleep replaces the wait function, mostly for tests.
func (b *Blinker) SetSleep(sleep func(time.Duration)) {
	b.sleep = sleep
}

// Set drives the status output and remembers its level.
func (b *Blinker) Set(on bool) {
	b.mu.Lock()
	b.on = on
	b.mu.Unlock()
	b.ind.SetStatus(on)
}

// Boot toggles the status output four times, then restores its level.
func (b *Blinker) Boot(period time.Duration) {
	b.mu.Lock()
	saved := b.on
	b.mu.Unlock()

	b.toggle(4, period)
	b.Set(saved)
}

// Activity plays off, on, off on the status output.
func (b *Blinker) Activity(period time.Duration) {
	b.toggle(3, period)
}

// Panic toggles the status output until ctx is done. It is the terminal
// state after a fatal initialization failure.
func (b *Blinker) Panic(ctx context.Context, period time.Duration) {
	on := false
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		b.Set(on)
		b.sleep(period)
		on = !on
	}
}

func (b *Blinker) toggle(n int, period time.Duration) {
	on := false
	for i := 0; i < n; i++ {
		b.Set(on)
		b.sleep(period)
		on = !on
	}
}
