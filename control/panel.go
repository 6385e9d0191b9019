package control

import (
	"sync"
	"sync/atomic"
	"time"

	"msc-monitor/debug"
	"msc-monitor/theme"
)

// Options tunes a Panel. Zero values fall back to the defaults.
type Options struct {
	ToggleGuard time.Duration
	FlashWindow time.Duration
	Colors      *theme.Backlight
	Now         func() time.Time
}

// Snapshot is a consistent view of the panel state for presenters.
type Snapshot struct {
	Paused    bool
	Enabled   bool
	Counter   int
	Pressed   bool
	Flashing  bool
	Directive Directive
}

// Panel is the single owner of the debouncer, mode and flash overlay. All
// multi-step updates run under one mutex. Interrupt is lock-free so it can
// be called from any goroutine, including transport callbacks.
type Panel struct {
	mu       sync.Mutex
	debounce Debouncer
	mode     *ModeController
	flash    *FlashOverlay
	out      Actuator
	now      func() time.Time
	last     Directive
	released time.Time // last debounced falling edge

	pending atomic.Int32
}

func NewPanel(out Actuator, opts Options) *Panel {
	colors := theme.DefaultBacklight()
	if opts.Colors != nil {
		colors = *opts.Colors
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	p := &Panel{
		flash: NewFlashOverlay(opts.FlashWindow, colors.Flash),
		out:   out,
		now:   now,
	}
	p.mode = NewModeController(ActuatorFunc(p.compose), opts.ToggleGuard, colors)
	p.last = p.mode.Directive()
	return p
}

// Start pushes the initial directive (passthrough) to the actuators.
func (p *Panel) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.compose(p.mode.Directive())
}

// Tick runs one polling step: enable sense, pending interrupt edges, one
// debounce sample, then flash expiry.
func (p *Panel) Tick(sample, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.mode.SetEnabled(enabled)

	for n := p.pending.Swap(0); n > 0; n-- {
		if p.polledPress(now) {
			debug.Log("control", "interrupt edge dropped: polled press")
			continue
		}
		p.mode.OnEdge(EdgeRising, now)
	}

	edge := p.debounce.Sample(sample)
	if edge == EdgeFalling {
		p.released = now
	}
	if edge != EdgeNone {
		p.mode.OnEdge(edge, now)
	}

	if p.flash.Expire(now) {
		// recomputed now, so a toggle during the flash shows up here
		p.compose(p.mode.Directive())
	}
}

// polledPress reports whether the polled path owns the current press: the
// button is still held, or was released less than one guard window ago. The
// board's interrupt fires on release, so such an edge is the same press.
func (p *Panel) polledPress(now time.Time) bool {
	if p.debounce.Stable() {
		return true
	}
	return !p.released.IsZero() && now.Sub(p.released) < p.mode.Guard()
}

// Interrupt records a hardware button edge. It is applied on the next Tick
// through the same guard as the polled path.
func (p *Panel) Interrupt() {
	p.pending.Add(1)
}

// CommandReceived starts the flash overlay.
func (p *Panel) CommandReceived() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.flash.Trigger(p.now())
	p.compose(p.mode.Directive())
}

// Directive returns the last directive pushed to the actuators.
func (p *Panel) Directive() Directive {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Paused:    p.mode.Paused(),
		Enabled:   p.mode.Enabled(),
		Counter:   p.debounce.Counter(),
		Pressed:   p.debounce.Stable(),
		Flashing:  p.flash.State() == FlashFlashing,
		Directive: p.last,
	}
}

// compose runs with p.mu held.
func (p *Panel) compose(d Directive) {
	d = p.flash.Compose(d)
	p.last = d
	if p.out != nil {
		p.out.Apply(d)
	}
}
