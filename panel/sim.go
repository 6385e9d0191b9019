package panel

import (
	"sync"
	"time"

	"msc-monitor/control"
	"msc-monitor/debug"
)

// DefaultHold is how long a simulated press keeps the button asserted. It
// has to outlast the climb through the debounce band at the tick rate.
const DefaultHold = 150 * time.Millisecond

const brightnessStep = 0.1

// Sim is an in-process panel driven from the keyboard.
type Sim struct {
	mu         sync.Mutex
	hold       time.Duration
	pressUntil time.Time
	enabled    bool
	brightness float64
	last       control.Directive
	interrupt  func()
	now        func() time.Time
}

func NewSim(hold time.Duration) *Sim {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Sim{
		hold:       hold,
		enabled:    true,
		brightness: 1,
		now:        time.Now,
	}
}

// SetClock replaces time.Now, for tests.
func (s *Sim) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Press holds the button down for the hold window.
func (s *Sim) Press() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressUntil = s.now().Add(s.hold)
	debug.Log("panel", "sim press (hold %s)", s.hold)
}

// Interrupt fires a hardware edge without touching the polled level.
func (s *Sim) Interrupt() {
	s.mu.Lock()
	fn := s.interrupt
	s.mu.Unlock()

	debug.Log("panel", "sim interrupt")
	if fn != nil {
		fn()
	}
}

// ToggleEnabled flips the enable switch and returns the new state.
func (s *Sim) ToggleEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = !s.enabled
	debug.Log("panel", "sim enable=%v", s.enabled)
	return s.enabled
}

// AdjustBrightness moves the pot by steps of 10%, clamped to [0,1].
func (s *Sim) AdjustBrightness(steps int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.brightness + float64(steps)*brightnessStep
	switch {
	case b < 0:
		b = 0
	case b > 1:
		b = 1
	}
	s.brightness = b
	return b
}

func (s *Sim) Sample() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.pressUntil), s.enabled
}

func (s *Sim) SetInterruptHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupt = fn
}

func (s *Sim) Brightness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness
}

func (s *Sim) Apply(d control.Directive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = d
}

// Directive is the last directive applied.
func (s *Sim) Directive() control.Directive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
