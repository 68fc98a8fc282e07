package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"left", DirLeft, true},
		{" RIGHT ", DirRight, true},
		{"Up", DirUp, true},
		{"down", DirDown, true},
		{"near", DirNear, true},
		{"far", DirFar, true},
		{"none", DirNone, true},
		{"sideways", DirNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDirection(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionCardinal(t *testing.T) {
	for _, d := range Cardinals {
		assert.True(t, d.IsCardinal(), d.String())
	}
	assert.False(t, DirNone.IsCardinal())
	assert.False(t, DirNear.IsCardinal())
	assert.False(t, DirFar.IsCardinal())
	assert.Equal(t, "NONE", Direction(42).String())
}

func TestLookupKey(t *testing.T) {
	code, ok := LookupKey("w")
	require.True(t, ok)
	assert.Equal(t, KeyW, code)

	code, ok = LookupKey("1")
	require.True(t, ok)
	assert.Equal(t, KeyCode(0x1E), code)

	code, ok = LookupKey("0")
	require.True(t, ok)
	assert.Equal(t, KeyCode(0x27), code)

	code, ok = LookupKey("f12")
	require.True(t, ok)
	assert.Equal(t, KeyCode(0x45), code)

	code, ok = LookupKey("PAGE_DOWN")
	require.True(t, ok)
	assert.Equal(t, KeyPageDown, code)

	_, ok = LookupKey("PLAY_PAUSE")
	assert.False(t, ok, "media names are not keyboard keys")
}

func TestLookupMedia(t *testing.T) {
	key, ok := LookupMedia("play_pause")
	require.True(t, ok)
	assert.Equal(t, MediaPlayPause, key)
	assert.Equal(t, "PLAY_PAUSE", key.String())

	_, ok = LookupMedia("W")
	assert.False(t, ok)
	assert.Equal(t, "0x0FFF", MediaKey(0x0FFF).String())
}

func TestModifiers(t *testing.T) {
	for _, name := range []string{"LEFT_CTRL", "LEFT_SHIFT", "LEFT_ALT", "LEFT_GUI", "RIGHT_CTRL", "RIGHT_SHIFT", "RIGHT_ALT", "RIGHT_GUI"} {
		code, ok := LookupKey(name)
		require.True(t, ok, name)
		assert.True(t, code.IsModifier(), name)
	}
	assert.False(t, KeyW.IsModifier())
	assert.False(t, KeyNone.IsModifier())
}

func TestMatchKeyNames(t *testing.T) {
	arrows, err := MatchKeyNames("*_arrow")
	require.NoError(t, err)
	require.Len(t, arrows, 4)
	assert.Equal(t, "DOWN_ARROW", arrows[0].Name)
	for _, k := range arrows {
		assert.False(t, k.Media)
	}

	tracks, err := MatchKeyNames("*TRACK")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.True(t, tracks[0].Media)

	all, err := MatchKeyNames("")
	require.NoError(t, err)
	assert.Len(t, all, len(keysByName)+len(mediaByName))

	_, err = MatchKeyNames("[")
	assert.Error(t, err)
}

func TestKeyActionString(t *testing.T) {
	a := KeyAction{
		Enabled:   true,
		Modifiers: [MaxModifiers]KeyCode{KeyLeftCtrl, KeyLeftShift},
		Key:       Literal{Code: KeyW},
	}
	assert.Equal(t, "LEFT_CTRL+LEFT_SHIFT+W", a.String())

	a = KeyAction{Enabled: true, Key: Media{Key: MediaPlayPause}, Hold: true}
	assert.Equal(t, "PLAY_PAUSE (hold)", a.String())

	assert.Equal(t, "-", KeyAction{}.String())
}
