package actions

import (
	"testing"

	"gesturekey/internal/config"
	"gesturekey/internal/errors"
	"gesturekey/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDefaultConfig(t *testing.T) {
	table, err := FromConfig(config.New())
	require.NoError(t, err)
	require.Equal(t, types.ModeCount, table.Modes())

	tests := []struct {
		mode int
		dir  types.Direction
		key  types.MainKey
		hold bool
	}{
		{0, types.DirLeft, types.Media{Key: types.MediaPlayPause}, false},
		{0, types.DirRight, types.Media{Key: types.MediaStop}, false},
		{0, types.DirUp, types.Media{Key: types.MediaPreviousTrack}, false},
		{0, types.DirDown, types.Media{Key: types.MediaNextTrack}, false},
		{1, types.DirRight, types.Media{Key: types.MediaMute}, false},
		{1, types.DirUp, types.Literal{Code: types.KeyPageUp}, false},
		{1, types.DirDown, types.Literal{Code: types.KeyPageDown}, false},
		{2, types.DirLeft, types.Literal{Code: types.KeyLeft}, false},
		{2, types.DirUp, types.Literal{Code: types.KeyUp}, false},
		{3, types.DirLeft, types.Literal{Code: types.KeyA}, true},
		{3, types.DirRight, types.Literal{Code: types.KeyD}, true},
		{3, types.DirUp, types.Literal{Code: types.KeyW}, true},
		{3, types.DirDown, types.Literal{Code: types.KeyS}, true},
	}
	for _, tt := range tests {
		a := table.Lookup(tt.mode, tt.dir)
		assert.True(t, a.Enabled, "mode %d %s", tt.mode, tt.dir)
		assert.Equal(t, tt.key, a.Key, "mode %d %s", tt.mode, tt.dir)
		assert.Equal(t, tt.hold, a.Hold, "mode %d %s", tt.mode, tt.dir)
	}

	for _, mode := range []int{4, 5} {
		for _, d := range types.Cardinals {
			assert.False(t, table.Lookup(mode, d).Enabled, "mode %d %s", mode, d)
		}
	}

	assert.Equal(t, "wasd", table.ModeName(3))
	assert.Equal(t, "mode5", table.ModeName(5))
	assert.Equal(t, "", table.ModeName(6))
}

func TestLookupOutOfRange(t *testing.T) {
	table, err := FromConfig(config.New())
	require.NoError(t, err)

	assert.False(t, table.Lookup(-1, types.DirLeft).Enabled)
	assert.False(t, table.Lookup(types.ModeCount, types.DirLeft).Enabled)
	assert.False(t, table.Lookup(0, types.DirNear).Enabled)
	assert.False(t, table.Lookup(0, types.DirFar).Enabled)
	assert.False(t, table.Lookup(0, types.DirNone).Enabled)
	assert.False(t, table.Slot(0, types.SlotsPerMode).Enabled)
	assert.False(t, table.Slot(0, 4).Enabled, "unused slots stay disabled")
}

func TestSmallTable(t *testing.T) {
	var row Row
	row[1] = types.KeyAction{Enabled: true, Key: types.Literal{Code: types.KeySpace}}

	table, err := New([]string{"only"}, []Row{row, {}})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Modes())
	assert.Equal(t, "only", table.ModeName(0))
	assert.Equal(t, "mode1", table.ModeName(1))
	assert.Equal(t, types.Literal{Code: types.KeySpace}, table.Lookup(0, types.DirRight).Key)

	// The table keeps its own copy of the rows
	row[1] = types.KeyAction{}
	assert.True(t, table.Lookup(0, types.DirRight).Enabled)

	_, err = New(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Equal(t, "action table needs at least one mode: modes", err.Error())
}

func TestFromConfigInvalid(t *testing.T) {
	cfg := config.New()
	cfg.Modes[0].Actions["left"] = config.ActionSpec{Key: "NOPE"}
	_, err := FromConfig(cfg)
	assert.Error(t, err)
}
