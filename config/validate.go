package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only and does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	switch cfg.Transport {
	case TransportMIDI:
		if cfg.MIDI.RescanMs < 0 {
			return fmt.Errorf("config: midi.rescan_ms must be >= 0, got %d", cfg.MIDI.RescanMs)
		}
	case TransportSerial:
		if cfg.Serial.Device == "" {
			return fmt.Errorf("config: transport %q requires serial.device", cfg.Transport)
		}
		if cfg.Serial.Baud <= 0 {
			return fmt.Errorf("config: serial.baud must be > 0, got %d", cfg.Serial.Baud)
		}
	default:
		return fmt.Errorf("config: unknown transport %q (want %q or %q)", cfg.Transport, TransportMIDI, TransportSerial)
	}

	switch cfg.Panel.Mode {
	case PanelSim:
	case PanelSerial:
		if cfg.Panel.Device == "" {
			return fmt.Errorf("config: panel mode %q requires panel.device", cfg.Panel.Mode)
		}
		if cfg.Panel.Baud <= 0 {
			return fmt.Errorf("config: panel.baud must be > 0, got %d", cfg.Panel.Baud)
		}
		if cfg.Transport == TransportSerial && cfg.Panel.Device == cfg.Serial.Device {
			return fmt.Errorf("config: panel and serial transport cannot share device %s", cfg.Panel.Device)
		}
	default:
		return fmt.Errorf("config: unknown panel mode %q", cfg.Panel.Mode)
	}

	switch cfg.Panel.ButtonMode {
	case NormallyOpen, NormallyClosed:
	default:
		return fmt.Errorf("config: unknown panel.button_mode %q", cfg.Panel.ButtonMode)
	}

	if cfg.Timing.TickUs <= 0 {
		return fmt.Errorf("config: timing.tick_us must be > 0, got %d", cfg.Timing.TickUs)
	}
	if cfg.Timing.ToggleGuardMs < 0 {
		return fmt.Errorf("config: timing.toggle_guard_ms must be >= 0, got %d", cfg.Timing.ToggleGuardMs)
	}
	if cfg.Timing.FlashMs < 0 {
		return fmt.Errorf("config: timing.flash_ms must be >= 0, got %d", cfg.Timing.FlashMs)
	}

	return nil
}

// Normalize fills zero values left by a sparse file.
// It must be called only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	def := DefaultConfig()

	if cfg.MIDI.RescanMs == 0 {
		cfg.MIDI.RescanMs = def.MIDI.RescanMs
	}
	if cfg.Timing.ToggleGuardMs == 0 {
		cfg.Timing.ToggleGuardMs = def.Timing.ToggleGuardMs
	}
	if cfg.Timing.FlashMs == 0 {
		cfg.Timing.FlashMs = def.Timing.FlashMs
	}
}
