package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TransportKind selects where MSC frames come from
type TransportKind string

const (
	TransportMIDI   TransportKind = "midi"
	TransportSerial TransportKind = "serial"
)

// PanelMode selects the front panel implementation
type PanelMode string

const (
	PanelSim    PanelMode = "sim"
	PanelSerial PanelMode = "serial"
)

// ButtonMode is how the pause button is wired
type ButtonMode string

const (
	NormallyOpen   ButtonMode = "normally_open"
	NormallyClosed ButtonMode = "normally_closed"
)

// MIDIConfig selects the MIDI input and thru output
type MIDIConfig struct {
	InputPatterns    []string `yaml:"input_patterns,omitempty"`
	ExcludedPatterns []string `yaml:"excluded_patterns,omitempty"`
	ThruPort         string   `yaml:"thru_port,omitempty"`
	RescanMs         int      `yaml:"rescan_ms,omitempty"`
}

// SerialConfig is the raw serial MSC transport
type SerialConfig struct {
	Device string `yaml:"device,omitempty"`
	Baud   int    `yaml:"baud,omitempty"`
}

// PanelConfig describes the front panel board
type PanelConfig struct {
	Mode          PanelMode  `yaml:"mode,omitempty"`
	Device        string     `yaml:"device,omitempty"`
	Baud          int        `yaml:"baud,omitempty"`
	ButtonMode    ButtonMode `yaml:"button_mode,omitempty"`
	HasRelay      *bool      `yaml:"has_relay,omitempty"`
	HasBrightness *bool      `yaml:"has_brightness,omitempty"`
}

// TimingConfig holds the polling and guard intervals
type TimingConfig struct {
	TickUs        int `yaml:"tick_us,omitempty"`
	ToggleGuardMs int `yaml:"toggle_guard_ms,omitempty"`
	FlashMs       int `yaml:"flash_ms,omitempty"`
}

// BacklightConfig points at an optional .gpl color table
type BacklightConfig struct {
	Palette string `yaml:"palette,omitempty"`
}

// LogConfig tunes the debug log
type LogConfig struct {
	Path       string   `yaml:"path,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Transport TransportKind   `yaml:"transport"`
	MIDI      MIDIConfig      `yaml:"midi"`
	Serial    SerialConfig    `yaml:"serial"`
	Panel     PanelConfig     `yaml:"panel"`
	Timing    TimingConfig    `yaml:"timing"`
	Backlight BacklightConfig `yaml:"backlight"`
	Log       LogConfig       `yaml:"log"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	relay, pot := true, true
	return &Config{
		Transport: TransportMIDI,
		MIDI: MIDIConfig{
			ExcludedPatterns: []string{"Midi Through", "Through Port", "Dummy"},
			RescanMs:         1000,
		},
		Serial: SerialConfig{
			Baud: 115200,
		},
		Panel: PanelConfig{
			Mode:          PanelSim,
			Baud:          19200,
			ButtonMode:    NormallyOpen,
			HasRelay:      &relay,
			HasBrightness: &pot,
		},
		Timing: TimingConfig{
			TickUs:        1000,
			ToggleGuardMs: 300,
			FlashMs:       1000,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "msc-monitor"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path (ConfigPath when empty), or returns
// defaults if the file does not exist. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path (ConfigPath when empty)
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Tick is the polling interval of the control loop.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Timing.TickUs) * time.Microsecond
}

func (c *Config) ToggleGuard() time.Duration {
	return time.Duration(c.Timing.ToggleGuardMs) * time.Millisecond
}

func (c *Config) FlashWindow() time.Duration {
	return time.Duration(c.Timing.FlashMs) * time.Millisecond
}

func (c *Config) RescanInterval() time.Duration {
	return time.Duration(c.MIDI.RescanMs) * time.Millisecond
}

// RelayFitted reports whether the panel has a relay (default true).
func (p PanelConfig) RelayFitted() bool {
	return p.HasRelay == nil || *p.HasRelay
}

// BrightnessFitted reports whether the panel has a brightness pot (default true).
func (p PanelConfig) BrightnessFitted() bool {
	return p.HasBrightness == nil || *p.HasBrightness
}
