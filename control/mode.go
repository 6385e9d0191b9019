package control

import (
	"time"

	"msc-monitor/debug"
	"msc-monitor/theme"
)

// DefaultToggleGuard is the minimum time between two accepted toggles.
const DefaultToggleGuard = 300 * time.Millisecond

// ModeController owns the pause/passthrough state. It is not safe for
// concurrent use; Panel serializes access to it.
type ModeController struct {
	paused  bool
	enabled bool

	lastToggle time.Time
	toggled    bool

	guard  time.Duration
	colors theme.Backlight
	out    Actuator
}

// NewModeController starts in passthrough with the enable input asserted.
func NewModeController(out Actuator, guard time.Duration, colors theme.Backlight) *ModeController {
	if guard <= 0 {
		guard = DefaultToggleGuard
	}
	return &ModeController{
		enabled: true,
		guard:   guard,
		colors:  colors,
		out:     out,
	}
}

// OnEdge handles one debounced edge. A rising edge flips the pause state when
// the controller is enabled and the guard window since the last toggle has
// passed. Everything else is consumed silently. Reports whether the state
// changed.
func (m *ModeController) OnEdge(e Edge, now time.Time) bool {
	if e != EdgeRising {
		return false
	}
	if !m.enabled {
		debug.Log("control", "edge ignored: disabled")
		return false
	}
	if m.toggled && now.Sub(m.lastToggle) < m.guard {
		debug.Log("control", "edge ignored: %s since last toggle", now.Sub(m.lastToggle))
		return false
	}

	m.paused = !m.paused
	m.lastToggle = now
	m.toggled = true
	debug.Log("control", "paused=%v", m.paused)
	m.emit()
	return true
}

// SetEnabled mirrors the external enable input. It never toggles pause.
func (m *ModeController) SetEnabled(flag bool) bool {
	if m.enabled == flag {
		return false
	}
	m.enabled = flag
	debug.Log("control", "enabled=%v", flag)
	m.emit()
	return true
}

func (m *ModeController) Paused() bool  { return m.paused }

// Guard is the minimum interval between accepted toggles.
func (m *ModeController) Guard() time.Duration { return m.guard }
func (m *ModeController) Enabled() bool { return m.enabled }

// Directive is what the current mode asks of the actuation layer.
func (m *ModeController) Directive() Directive {
	return directiveFor(m.paused, m.enabled, m.colors)
}

func (m *ModeController) emit() {
	if m.out != nil {
		m.out.Apply(m.Directive())
	}
}
