package panel

import (
	"fmt"

	"msc-monitor/config"
	"msc-monitor/control"
)

// Board is a front panel: it is sampled once per control tick and receives
// every directive the control layer emits.
type Board interface {
	control.Actuator

	// Sample returns the debounced-input candidates for this tick: whether
	// the pause button is asserted and whether the enable switch is on.
	Sample() (button, enabled bool)

	// SetInterruptHandler registers the callback for hardware button edges.
	SetInterruptHandler(fn func())

	// Brightness is the current backlight scale in [0,1].
	Brightness() float64
}

// ButtonMode maps the raw pin level onto "asserted".
type ButtonMode int

const (
	// NormallyOpen buttons pull the pin low while held.
	NormallyOpen ButtonMode = iota
	// NormallyClosed buttons release the pin high while held.
	NormallyClosed
)

// ParseButtonMode converts the config value.
func ParseButtonMode(m config.ButtonMode) (ButtonMode, error) {
	switch m {
	case config.NormallyOpen, "":
		return NormallyOpen, nil
	case config.NormallyClosed:
		return NormallyClosed, nil
	}
	return NormallyOpen, fmt.Errorf("panel: unknown button mode %q", m)
}

// Asserted reports whether a raw pin level (true = HIGH) means pressed.
func (m ButtonMode) Asserted(high bool) bool {
	if m == NormallyClosed {
		return high
	}
	return !high
}

// IdleLevel is the pin level while the button is not pressed.
func (m ButtonMode) IdleLevel() bool {
	return m == NormallyOpen
}

func (m ButtonMode) String() string {
	if m == NormallyClosed {
		return string(config.NormallyClosed)
	}
	return string(config.NormallyOpen)
}
