package panel

import (
	"fmt"

	"msc-monitor/theme"
)

// Board to host, one per line:
//
//	READY      board (re)booted, host resends outputs
//	BTN=0|1    raw pause-button pin level
//	EN=0|1     enable switch
//	POT=n      brightness pot, 0..1023
//	IRQ        hardware edge on the button pin
//
// Host to board:
//
//	RLY=0|1    relay coil
//	RGB=rrggbb backlight PWM duty, already inverted for common anode
type messageKind int

const (
	invalid messageKind = iota
	ready
	buttonLevel
	enableLevel
	potValue
	buttonIRQ
)

type message struct {
	kind  messageKind
	value int
}

func parseMessage(s string) message {
	var value int
	switch {
	case s == "READY":
		return message{kind: ready}
	case s == "IRQ":
		return message{kind: buttonIRQ}
	}
	if _, err := fmt.Sscanf(s, "BTN=%d", &value); err == nil && (value == 0 || value == 1) {
		return message{kind: buttonLevel, value: value}
	} else if _, err := fmt.Sscanf(s, "EN=%d", &value); err == nil && (value == 0 || value == 1) {
		return message{kind: enableLevel, value: value}
	} else if _, err := fmt.Sscanf(s, "POT=%d", &value); err == nil && value >= 0 {
		return message{kind: potValue, value: value}
	}
	return message{kind: invalid}
}

func serializeRelay(on bool) string {
	if on {
		return "RLY=1"
	}
	return "RLY=0"
}

func serializeBacklight(duty theme.RGB) string {
	return "RGB=" + duty.Hex()[1:]
}

// PotScale maps a 10-bit pot reading onto a brightness factor in [0,1].
func PotScale(raw int) float64 {
	f := float64(raw) / 1024.0
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// BacklightDuty is the PWM duty sent to the board for color c at the given
// brightness. The LED is common anode, so each channel is inverted.
func BacklightDuty(c theme.RGB, brightness float64) theme.RGB {
	return c.Scale(brightness).Invert()
}
