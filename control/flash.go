package control

import (
	"time"

	"msc-monitor/theme"
)

// DefaultFlashWindow is how long the backlight stays on the flash color
// after a command arrives.
const DefaultFlashWindow = time.Second

type FlashState int

const (
	FlashIdle FlashState = iota
	FlashFlashing
)

// FlashOverlay puts a timed color on top of the mode's backlight.
type FlashOverlay struct {
	state  FlashState
	since  time.Time
	window time.Duration
	color  theme.RGB
}

func NewFlashOverlay(window time.Duration, color theme.RGB) *FlashOverlay {
	if window <= 0 {
		window = DefaultFlashWindow
	}
	return &FlashOverlay{window: window, color: color}
}

// Trigger (re)starts the flash window at now.
func (f *FlashOverlay) Trigger(now time.Time) {
	f.state = FlashFlashing
	f.since = now
}

// Expire returns to idle once the window has passed and reports whether it
// did so on this call.
func (f *FlashOverlay) Expire(now time.Time) bool {
	if f.state != FlashFlashing || now.Sub(f.since) <= f.window {
		return false
	}
	f.state = FlashIdle
	return true
}

// Compose overrides the backlight while flashing.
func (f *FlashOverlay) Compose(d Directive) Directive {
	if f.state == FlashFlashing {
		d.Backlight = f.color
	}
	return d
}

func (f *FlashOverlay) State() FlashState { return f.state }
