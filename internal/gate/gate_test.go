package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gesturekey/internal/irq"
)

func TestProcessRequiresPending(t *testing.T) {
	line := irq.NewLine()
	g := New(line)
	require.NoError(t, g.Arm())

	ran := false
	assert.False(t, g.Process(func() { ran = true }))
	assert.False(t, ran)

	line.Trigger()
	assert.True(t, g.Pending())
	assert.True(t, g.Process(func() { ran = true }))
	assert.True(t, ran)
	assert.False(t, g.Pending())
	assert.Equal(t, uint64(1), g.Passes())
}

func TestInterruptDetachedDuringPass(t *testing.T) {
	line := irq.NewLine()
	g := New(line)
	require.NoError(t, g.Arm())
	line.Trigger()

	g.Process(func() {
		assert.False(t, line.Attached())
		// an edge during the pass finds no handler and is lost
		assert.False(t, line.Trigger())
	})

	assert.True(t, line.Attached())
	assert.False(t, g.Pending())

	edges, missed := line.Counts()
	assert.Equal(t, 2, edges)
	assert.Equal(t, 1, missed)
}

func TestRetriggerAfterReattach(t *testing.T) {
	line := irq.NewLine()
	g := New(line)
	require.NoError(t, g.Arm())

	passes := 0
	line.Trigger()
	g.Process(func() { passes++ })
	line.Trigger()
	g.Process(func() { passes++ })

	assert.Equal(t, 2, passes)
	assert.Equal(t, uint64(2), g.Passes())
}

func TestSignalBeforeArm(t *testing.T) {
	line := irq.NewLine()
	g := New(line)

	assert.False(t, line.Trigger())
	assert.False(t, g.Pending())

	g.Signal()
	assert.True(t, g.Pending())
	g.Clear()
	assert.False(t, g.Pending())
}

type failingLine struct{}

func (failingLine) Attach(func()) error { return assert.AnError }
func (failingLine) Detach()             {}

func TestArmError(t *testing.T) {
	err := New(failingLine{}).Arm()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot attach gesture interrupt")
}
