package irq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineDeliversOnlyWhenAttached(t *testing.T) {
	l := NewLine()
	calls := 0

	assert.False(t, l.Trigger())
	require.NoError(t, l.Attach(func() { calls++ }))
	assert.True(t, l.Attached())
	assert.True(t, l.Trigger())
	assert.Equal(t, 1, calls)

	l.Detach()
	assert.False(t, l.Attached())
	assert.False(t, l.Trigger())
	assert.Equal(t, 1, calls)

	edges, missed := l.Counts()
	assert.Equal(t, 3, edges)
	assert.Equal(t, 2, missed)
}

func TestLineRejectsNilHandler(t *testing.T) {
	assert.Error(t, NewLine().Attach(nil))
}

func TestDetachWaitsForDelivery(t *testing.T) {
	l := NewLine()
	entered := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, l.Attach(func() {
		close(entered)
		<-release
	}))

	go l.Trigger()
	<-entered

	detached := make(chan struct{})
	go func() {
		l.Detach()
		close(detached)
	}()

	select {
	case <-detached:
		t.Fatal("Detach returned while the handler was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-detached:
	case <-time.After(time.Second):
		t.Fatal("Detach did not return after the handler finished")
	}
	assert.False(t, l.Trigger())
}
