package sensor

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarm/serial"

	"gesturekey/internal/errors"
	"gesturekey/internal/gesture"
	"gesturekey/pkg/testutils"
)

func TestParseGesture(t *testing.T) {
	tests := []struct {
		line string
		code int
		ok   bool
	}{
		{"LEFT", gesture.CodeLeft, true},
		{"  right ", gesture.CodeRight, true},
		{"up", gesture.CodeUp, true},
		{"Down", gesture.CodeDown, true},
		{"near", gesture.CodeNear, true},
		{"FAR", gesture.CodeFar, true},
		{"none", gesture.CodeNone, true},
		{"6", gesture.CodeFar, true},
		{"7", gesture.CodeAll, true},
		{"42", 42, true},
		{"", 0, false},
		{"# comment", 0, false},
		{"sideways", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			code, ok := ParseGesture(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.code, code)
			}
		})
	}
}

func TestLatchSingleSlot(t *testing.T) {
	var edges atomic.Int32
	l := NewLatch(func() { edges.Add(1) })

	assert.False(t, l.IsGestureAvailable())
	assert.Equal(t, gesture.CodeNone, l.ReadGesture())

	l.Push(gesture.CodeUp)
	l.Push(gesture.CodeDown)
	assert.Equal(t, int32(2), edges.Load())
	assert.True(t, l.IsGestureAvailable())
	assert.Equal(t, gesture.CodeDown, l.ReadGesture())
	assert.False(t, l.IsGestureAvailable())
	assert.Equal(t, 1, l.Reads())
	assert.Equal(t, 1, l.Overwritten())
}

func TestLatchFailures(t *testing.T) {
	l := NewLatch(nil)
	require.NoError(t, l.Init())
	require.NoError(t, l.EnableGestures())
	require.NoError(t, l.SetGestureGain(2))
	assert.True(t, l.Enabled())
	assert.Equal(t, 2, l.Gain())

	l.FailInit(io.EOF)
	err := l.Init()
	assert.True(t, errors.IsFatalSensor(err))

	l.FailEnable(io.EOF)
	err = l.EnableGestures()
	assert.True(t, errors.IsDegradedSensor(err))
	assert.False(t, errors.IsFatalSensor(err))

	l.FailGain(io.EOF)
	assert.True(t, errors.IsDegradedSensor(l.SetGestureGain(1)))
	assert.Equal(t, 2, l.Gain())
}

func waitAvailable(t *testing.T, l *Latch) {
	t.Helper()
	require.Eventually(t, l.IsGestureAvailable, 3*time.Second, 10*time.Millisecond)
}

func TestFeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestures")
	require.NoError(t, os.WriteFile(path, []byte("LEFT\n"), 0644))

	var edges atomic.Int32
	f := NewFeedFile(path, func() { edges.Add(1) })
	require.NoError(t, f.Init())
	defer f.Close()

	time.Sleep(100 * time.Millisecond)
	assert.False(t, f.IsGestureAvailable(), "existing content is skipped")

	testutils.AppendLines(t, path, "far")

	waitAvailable(t, f.Latch)
	assert.Equal(t, gesture.CodeFar, f.ReadGesture())
	assert.Equal(t, int32(1), edges.Load())
}

func TestFeedFileInitFailure(t *testing.T) {
	f := NewFeedFile(filepath.Join(t.TempDir(), "missing-dir", "feed"), nil)
	err := f.Init()
	require.Error(t, err)
	assert.True(t, errors.IsFatalSensor(err))
}

type pipePort struct {
	*io.PipeReader
}

func TestSerialSource(t *testing.T) {
	r, w := io.Pipe()
	s := NewSerialSource("/dev/ttyTEST", 115200, nil)
	s.open = func(c *serial.Config) (io.ReadCloser, error) {
		assert.Equal(t, "/dev/ttyTEST", c.Name)
		assert.Equal(t, 115200, c.Baud)
		return pipePort{r}, nil
	}
	require.NoError(t, s.Init())
	defer s.Close()

	_, err := io.Copy(w, strings.NewReader("garbage\n3\n"))
	require.NoError(t, err)

	waitAvailable(t, s.Latch)
	assert.Equal(t, gesture.CodeUp, s.ReadGesture())
	require.NoError(t, w.Close())
}

func TestSerialSourceOpenFailure(t *testing.T) {
	s := NewSerialSource("/dev/ttyNOPE", 9600, nil)
	s.open = func(*serial.Config) (io.ReadCloser, error) {
		return nil, os.ErrNotExist
	}
	err := s.Init()
	require.Error(t, err)
	assert.True(t, errors.IsFatalSensor(err))
	assert.Contains(t, err.Error(), "/dev/ttyNOPE")
}
