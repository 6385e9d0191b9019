package midi

import (
	"sync"
	"sync/atomic"

	gomidi "gitlab.com/gomidi/midi/v2"

	"msc-monitor/control"
	"msc-monitor/debug"
)

// ThruGate forwards incoming MIDI to the thru output while passthrough is
// enabled. It is a control.Actuator: the mode decides whether it is open.
type ThruGate struct {
	open atomic.Bool

	mu   sync.Mutex
	send func(gomidi.Message) error
	port string

	forwarded atomic.Uint64
	blocked   atomic.Uint64
}

// NewThruGate starts open, matching the passthrough boot state.
func NewThruGate() *ThruGate {
	g := &ThruGate{}
	g.open.Store(true)
	return g
}

func (g *ThruGate) Apply(d control.Directive) {
	if g.open.Swap(d.PassthroughEnabled) != d.PassthroughEnabled {
		debug.Log("midi", "thru open=%v", d.PassthroughEnabled)
	}
}

// Open reports whether messages are currently forwarded.
func (g *ThruGate) Open() bool {
	return g.open.Load()
}

// Attach sets the output used for forwarding.
func (g *ThruGate) Attach(port string, send func(gomidi.Message) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.port = port
	g.send = send
}

// Detach drops the output; messages are counted as blocked until the next
// Attach.
func (g *ThruGate) Detach() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.port = ""
	g.send = nil
}

// Port is the attached output name, empty when none.
func (g *ThruGate) Port() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.port
}

// Forward sends msg to the thru output if the gate is open. It reports
// whether the message went out.
func (g *ThruGate) Forward(msg gomidi.Message) bool {
	if !g.open.Load() {
		g.blocked.Add(1)
		return false
	}

	g.mu.Lock()
	send := g.send
	g.mu.Unlock()
	if send == nil {
		g.blocked.Add(1)
		return false
	}

	if err := send(msg); err != nil {
		debug.Log("midi", "thru send: %v", err)
		g.blocked.Add(1)
		return false
	}
	g.forwarded.Add(1)
	debug.LogEvery(100, "midi", "thru forwarded")
	return true
}

// Stats returns the forwarded and blocked message counts.
func (g *ThruGate) Stats() (forwarded, blocked uint64) {
	return g.forwarded.Load(), g.blocked.Load()
}
