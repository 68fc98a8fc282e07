package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// KeyCode is a USB HID keyboard usage (usage page 0x07).
type KeyCode uint8

// MediaKey is a USB HID consumer control usage (usage page 0x0C).
type MediaKey uint16

const KeyNone KeyCode = 0x00

// Keyboard usages referenced directly by code. The full set of names lives
// in the registry below.
const (
	KeyA         KeyCode = 0x04
	KeyD         KeyCode = 0x07
	KeyS         KeyCode = 0x16
	KeyW         KeyCode = 0x1A
	KeyEnter     KeyCode = 0x28
	KeyEsc       KeyCode = 0x29
	KeyBackspace KeyCode = 0x2A
	KeyTab       KeyCode = 0x2B
	KeySpace     KeyCode = 0x2C
	KeyF1        KeyCode = 0x3A
	KeyInsert    KeyCode = 0x49
	KeyHome      KeyCode = 0x4A
	KeyPageUp    KeyCode = 0x4B
	KeyDelete    KeyCode = 0x4C
	KeyEnd       KeyCode = 0x4D
	KeyPageDown  KeyCode = 0x4E
	KeyRight     KeyCode = 0x4F
	KeyLeft      KeyCode = 0x50
	KeyDown      KeyCode = 0x51
	KeyUp        KeyCode = 0x52

	KeyLeftCtrl   KeyCode = 0xE0
	KeyLeftShift  KeyCode = 0xE1
	KeyLeftAlt    KeyCode = 0xE2
	KeyLeftGUI    KeyCode = 0xE3
	KeyRightCtrl  KeyCode = 0xE4
	KeyRightShift KeyCode = 0xE5
	KeyRightAlt   KeyCode = 0xE6
	KeyRightGUI   KeyCode = 0xE7
)

const (
	MediaNextTrack     MediaKey = 0x00B5
	MediaPreviousTrack MediaKey = 0x00B6
	MediaStop          MediaKey = 0x00B7
	MediaPlayPause     MediaKey = 0x00CD
	MediaMute          MediaKey = 0x00E2
	MediaVolumeUp      MediaKey = 0x00E9
	MediaVolumeDown    MediaKey = 0x00EA
	MediaEmail         MediaKey = 0x018A
	MediaCalculator    MediaKey = 0x0192
	MediaWWWHome       MediaKey = 0x0223
)

var (
	keysByName  = map[string]KeyCode{}
	namesByKey  = map[KeyCode]string{}
	mediaByName = map[string]MediaKey{
		"NEXT_TRACK":     MediaNextTrack,
		"PREVIOUS_TRACK": MediaPreviousTrack,
		"STOP":           MediaStop,
		"PLAY_PAUSE":     MediaPlayPause,
		"MUTE":           MediaMute,
		"VOLUME_UP":      MediaVolumeUp,
		"VOLUME_DOWN":    MediaVolumeDown,
		"EMAIL":          MediaEmail,
		"CALCULATOR":     MediaCalculator,
		"WWW_HOME":       MediaWWWHome,
	}
	namesByMedia = map[MediaKey]string{}
)

func init() {
	for i := 0; i < 26; i++ {
		registerKey(string(rune('A'+i)), KeyA+KeyCode(i))
	}
	// Usages 0x1E..0x26 are 1..9, 0x27 is 0.
	for i := 1; i <= 9; i++ {
		registerKey(string(rune('0'+i)), 0x1D+KeyCode(i))
	}
	registerKey("0", 0x27)
	for i := 0; i < 12; i++ {
		registerKey(fmt.Sprintf("F%d", i+1), KeyF1+KeyCode(i))
	}
	for name, code := range map[string]KeyCode{
		"ENTER":       KeyEnter,
		"ESC":         KeyEsc,
		"BACKSPACE":   KeyBackspace,
		"TAB":         KeyTab,
		"SPACE":       KeySpace,
		"INSERT":      KeyInsert,
		"HOME":        KeyHome,
		"PAGE_UP":     KeyPageUp,
		"DELETE":      KeyDelete,
		"END":         KeyEnd,
		"PAGE_DOWN":   KeyPageDown,
		"RIGHT_ARROW": KeyRight,
		"LEFT_ARROW":  KeyLeft,
		"DOWN_ARROW":  KeyDown,
		"UP_ARROW":    KeyUp,
		"LEFT_CTRL":   KeyLeftCtrl,
		"LEFT_SHIFT":  KeyLeftShift,
		"LEFT_ALT":    KeyLeftAlt,
		"LEFT_GUI":    KeyLeftGUI,
		"RIGHT_CTRL":  KeyRightCtrl,
		"RIGHT_SHIFT": KeyRightShift,
		"RIGHT_ALT":   KeyRightAlt,
		"RIGHT_GUI":   KeyRightGUI,
	} {
		registerKey(name, code)
	}
	for name, key := range mediaByName {
		namesByMedia[key] = name
	}
}

func registerKey(name string, code KeyCode) {
	keysByName[name] = code
	namesByKey[code] = name
}

// IsModifier reports whether k is one of the eight modifier usages.
func (k KeyCode) IsModifier() bool {
	return k >= KeyLeftCtrl && k <= KeyRightGUI
}

func (k KeyCode) String() string {
	if name, ok := namesByKey[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint8(k))
}

func (m MediaKey) String() string {
	if name, ok := namesByMedia[m]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint16(m))
}

// LookupKey resolves a keyboard key name such as "W", "F5" or "LEFT_CTRL".
func LookupKey(name string) (KeyCode, bool) {
	code, ok := keysByName[strings.ToUpper(strings.TrimSpace(name))]
	return code, ok
}

// LookupMedia resolves a media key name such as "PLAY_PAUSE".
func LookupMedia(name string) (MediaKey, bool) {
	key, ok := mediaByName[strings.ToUpper(strings.TrimSpace(name))]
	return key, ok
}

// KeyName is one registry entry.
type KeyName struct {
	Name  string
	Media bool
	Code  uint16
}

// MatchKeyNames returns every registered key and media name matching the
// glob pattern, sorted by name. An empty pattern matches everything.
func MatchKeyNames(pattern string) ([]KeyName, error) {
	if pattern == "" {
		pattern = "*"
	}
	g, err := glob.Compile(strings.ToUpper(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, err)
	}

	var out []KeyName
	for name, code := range keysByName {
		if g.Match(name) {
			out = append(out, KeyName{Name: name, Code: uint16(code)})
		}
	}
	for name, key := range mediaByName {
		if g.Match(name) {
			out = append(out, KeyName{Name: name, Media: true, Code: uint16(key)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
