package control

import "msc-monitor/theme"

const (
	StatusPaused = "PAUSED"
	StatusPass   = "PASS"
)

// Directive is the full set of outputs the actuation layer applies.
type Directive struct {
	RelayEnergized     bool
	PassthroughEnabled bool
	Backlight          theme.RGB
	Status             string
}

// Actuator applies directives to hardware (relay, backlight, MIDI thru) or
// to a presenter. Apply must not block.
type Actuator interface {
	Apply(d Directive)
}

// ActuatorFunc adapts a plain function to Actuator.
type ActuatorFunc func(d Directive)

func (f ActuatorFunc) Apply(d Directive) { f(d) }

// Actuators fans one directive out to several actuators in order.
type Actuators []Actuator

func (as Actuators) Apply(d Directive) {
	for _, a := range as {
		if a != nil {
			a.Apply(d)
		}
	}
}

// directiveFor derives the outputs for a mode.
func directiveFor(paused, enabled bool, colors theme.Backlight) Directive {
	d := Directive{
		RelayEnergized:     paused,
		PassthroughEnabled: !paused,
		Status:             StatusPass,
	}
	if paused {
		d.Status = StatusPaused
	}

	switch {
	case !enabled:
		d.Backlight = colors.Disabled
	case paused:
		d.Backlight = colors.Paused
	default:
		d.Backlight = colors.Pass
	}
	return d
}
