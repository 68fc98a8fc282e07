package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gesturekey/internal/errors"
	"gesturekey/pkg/types"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Sensor sources.
const (
	SourceLatch  = "latch"  // in-process latch, fed by the simulator or replay
	SourceFeed   = "feed"   // text file tailed with fsnotify
	SourceSerial = "serial" // gesture lines from a UART bridge
)

// Transport kinds.
const (
	TransportRecorder = "recorder"
	TransportLog      = "log"
	TransportHIDG     = "hidg"
)

// DirectionKeys are the action keys accepted under modes[].actions, in
// action table column order.
var DirectionKeys = [...]string{"left", "right", "up", "down"}

// ActionSpec is the declarative form of one action table slot.
// Exactly one of Key or Media must be set for an enabled action.
type ActionSpec struct {
	Enabled   *bool    `yaml:"enabled,omitempty"`   // defaults to true when the slot is present
	Key       string   `yaml:"key,omitempty"`       // keyboard key name, e.g. "W", "PAGE_UP"
	Media     string   `yaml:"media,omitempty"`     // media key name, e.g. "PLAY_PAUSE"
	Modifiers []string `yaml:"modifiers,omitempty"` // up to three modifier key names
	Hold      bool     `yaml:"hold,omitempty"`      // keep keys pressed after dispatch
}

// ModeSpec is one named row of the action table.
type ModeSpec struct {
	Name    string                `yaml:"name"`
	Actions map[string]ActionSpec `yaml:"actions"`
}

// Config represents the application configuration structure.
type Config struct {
	Device struct {
		Name         string `yaml:"name"`         // advertised HID device name
		Manufacturer string `yaml:"manufacturer"` // advertised manufacturer
	} `yaml:"device"`
	Sensor struct {
		Source      string `yaml:"source"`       // latch, feed or serial
		FeedPath    string `yaml:"feed_path"`    // file tailed when source is feed
		SerialPort  string `yaml:"serial_port"`  // device path when source is serial
		Baud        int    `yaml:"baud"`         // serial baud rate
		GestureGain int    `yaml:"gesture_gain"` // gain index 0..3 (1x, 2x, 4x, 8x)
	} `yaml:"sensor"`
	Transport struct {
		Kind     string `yaml:"kind"`      // recorder, log or hidg
		HIDGPath string `yaml:"hidg_path"` // HID gadget device when kind is hidg
	} `yaml:"transport"`
	Feedback struct {
		BootBlink     time.Duration `yaml:"boot_blink"`     // status toggle period at boot
		ActivityBlink time.Duration `yaml:"activity_blink"` // status toggle period after a gesture
		PanicBlink    time.Duration `yaml:"panic_blink"`    // status toggle period after fatal init failure
	} `yaml:"feedback"`
	PollInterval time.Duration `yaml:"poll_interval"` // delay between poll loop iterations
	Modes        []ModeSpec    `yaml:"modes"`
}

// LoadConfig loads configuration from the default location
// (~/.config/gesturekey/config.yaml). A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "gesturekey", "config.yaml")
	cfg, err := LoadConfigFile(configPath)
	if errors.IsConfigNotFound(err) {
		return New(), nil
	}
	return cfg, err
}

// LoadConfigFile loads configuration from a specific file path, layered
// over the defaults. A file that sets modes replaces the default table.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML layered over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", "", errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// defaultConfig decodes the embedded defaults.
func defaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultYAML, cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// The returned error is a *errors.ConfigError naming the offending parameter.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	switch c.Sensor.Source {
	case SourceLatch:
	case SourceFeed:
		if c.Sensor.FeedPath == "" {
			return invalid("feed source requires a path", "sensor.feed_path")
		}
	case SourceSerial:
		if c.Sensor.SerialPort == "" {
			return invalid("serial source requires a port", "sensor.serial_port")
		}
		if c.Sensor.Baud <= 0 {
			return invalid("baud rate must be positive", "sensor.baud")
		}
	default:
		return invalid(fmt.Sprintf("unknown sensor source %q", c.Sensor.Source), "sensor.source")
	}
	if c.Sensor.GestureGain < 0 || c.Sensor.GestureGain > 3 {
		return invalid("gesture gain must be 0..3", "sensor.gesture_gain")
	}

	switch c.Transport.Kind {
	case TransportRecorder, TransportLog:
	case TransportHIDG:
		if c.Transport.HIDGPath == "" {
			return invalid("hidg transport requires a device path", "transport.hidg_path")
		}
	default:
		return invalid(fmt.Sprintf("unknown transport kind %q", c.Transport.Kind), "transport.kind")
	}

	if c.Feedback.BootBlink < 0 {
		return invalid("duration must be >= 0", "feedback.boot_blink")
	}
	if c.Feedback.ActivityBlink < 0 {
		return invalid("duration must be >= 0", "feedback.activity_blink")
	}
	if c.Feedback.PanicBlink < 0 {
		return invalid("duration must be >= 0", "feedback.panic_blink")
	}
	if c.PollInterval <= 0 {
		return invalid("poll interval must be > 0", "poll_interval")
	}

	if len(c.Modes) == 0 {
		return invalid("at least one mode is required", "modes")
	}
	if len(c.Modes) > types.ModeCount {
		return invalid(fmt.Sprintf("at most %d modes are supported", types.ModeCount), "modes")
	}
	for i, mode := range c.Modes {
		dirs := make([]string, 0, len(mode.Actions))
		for dir := range mode.Actions {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)

		// Direction keys are case-insensitive, so "left" and "LEFT" collide.
		seen := make(map[int]bool, len(dirs))
		for _, dir := range dirs {
			param := fmt.Sprintf("modes[%d].actions.%s", i, dir)
			col := Column(dir)
			if col < 0 {
				return invalid("unknown direction", param)
			}
			if seen[col] {
				return invalid("duplicate direction", param)
			}
			seen[col] = true
			if _, err := mode.Actions[dir].KeyAction(param); err != nil {
				return err
			}
		}
	}

	return nil
}

// KeyAction converts the declared action into a table slot. param prefixes
// any error.
func (a ActionSpec) KeyAction(param string) (types.KeyAction, error) {
	if a.Enabled != nil && !*a.Enabled {
		return types.KeyAction{}, nil
	}

	action := types.KeyAction{Enabled: true, Hold: a.Hold}
	switch {
	case a.Key != "" && a.Media != "":
		return types.KeyAction{}, invalid("key and media are mutually exclusive", param)
	case a.Key != "":
		code, ok := types.LookupKey(a.Key)
		if !ok {
			return types.KeyAction{}, invalid(fmt.Sprintf("unknown key %q", a.Key), param+".key")
		}
		action.Key = types.Literal{Code: code}
	case a.Media != "":
		key, ok := types.LookupMedia(a.Media)
		if !ok {
			return types.KeyAction{}, invalid(fmt.Sprintf("unknown media key %q", a.Media), param+".media")
		}
		action.Key = types.Media{Key: key}
	default:
		return types.KeyAction{}, invalid("one of key or media is required", param)
	}

	if len(a.Modifiers) > types.MaxModifiers {
		return types.KeyAction{}, invalid(fmt.Sprintf("at most %d modifiers", types.MaxModifiers), param+".modifiers")
	}
	for i, name := range a.Modifiers {
		code, ok := types.LookupKey(name)
		if !ok || !code.IsModifier() {
			return types.KeyAction{}, invalid(fmt.Sprintf("%q is not a modifier key", name), fmt.Sprintf("%s.modifiers[%d]", param, i))
		}
		action.Modifiers[i] = code
	}
	return action, nil
}

// ModeNames returns one display name per mode slot. Unnamed or unconfigured
// modes are called "mode<N>".
func (c *Config) ModeNames() [types.ModeCount]string {
	var names [types.ModeCount]string
	for i := range names {
		names[i] = fmt.Sprintf("mode%d", i)
		if i < len(c.Modes) && c.Modes[i].Name != "" {
			names[i] = c.Modes[i].Name
		}
	}
	return names
}

// Column returns the action table column for a direction key, or -1.
func Column(dir string) int {
	for i, d := range DirectionKeys {
		if strings.EqualFold(d, dir) {
			return i
		}
	}
	return -1
}

func invalid(msg, param string) error {
	return errors.NewConfigError(msg, param, errors.InvalidConfig, nil)
}
