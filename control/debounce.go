package control

// Hysteresis thresholds for the button counter, in polling ticks.
const (
	DebounceLow  = 20
	DebounceHigh = 50
	DebounceMax  = 70
)

// Edge is a change of the debounced button state.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "none"
	}
}

// Debouncer is a saturating counter with a hysteresis band. It has no notion
// of wall-clock time: its response scales with how often Sample is called.
type Debouncer struct {
	counter int
	stable  bool
}

// Sample feeds one raw reading (true = asserted) and returns the edge it
// produced, if any. Only the latest transition is reported; edges are not
// queued between calls.
func (d *Debouncer) Sample(asserted bool) Edge {
	if asserted {
		if d.counter < DebounceMax {
			d.counter++
		}
	} else if d.counter > 0 {
		d.counter--
	}

	switch {
	case !d.stable && d.counter > DebounceHigh:
		d.stable = true
		return EdgeRising
	case d.stable && d.counter < DebounceLow:
		d.stable = false
		return EdgeFalling
	}
	return EdgeNone
}

func (d *Debouncer) Counter() int { return d.counter }

// Stable is the debounced button state.
func (d *Debouncer) Stable() bool { return d.stable }
