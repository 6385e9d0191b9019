package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"msc-monitor/control"
	"msc-monitor/debug"
	"msc-monitor/msc"
	"msc-monitor/panel"
)

const (
	// DefaultTick is the control polling interval.
	DefaultTick = time.Millisecond
	// commandQueue bounds commands waiting for the loop; more are dropped.
	commandQueue = 32
	uiFPS        = 30
)

// Options tunes a Runtime.
type Options struct {
	Tick    time.Duration
	Control control.Options
}

// Snapshot is everything a presenter needs for one frame.
type Snapshot struct {
	Control    control.Snapshot
	Last       msc.Command
	HaveLast   bool
	Received   uint64
	Dropped    uint64
	Brightness float64
}

// Runtime owns the control loop. Commands from transport goroutines are
// queued with Submit and applied on the loop goroutine between samples.
type Runtime struct {
	board    panel.Board
	panel    *control.Panel
	tick     time.Duration
	commands chan msc.Command

	mu       sync.RWMutex
	last     msc.Command
	haveLast bool
	received uint64

	dropped atomic.Uint64

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// New wires board and any extra actuators (MIDI thru gate) behind one
// control.Panel.
func New(board panel.Board, extra []control.Actuator, opts Options) *Runtime {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	r := &Runtime{
		board:      board,
		tick:       opts.Tick,
		commands:   make(chan msc.Command, commandQueue),
		UpdateChan: make(chan struct{}, 1),
	}

	outs := control.Actuators{board}
	outs = append(outs, extra...)
	outs = append(outs, control.ActuatorFunc(r.onDirective))
	r.panel = control.NewPanel(outs, opts.Control)

	board.SetInterruptHandler(r.panel.Interrupt)
	return r
}

// Submit queues a decoded command. It never blocks; when the queue is full
// the command is dropped and counted.
func (r *Runtime) Submit(cmd msc.Command) {
	select {
	case r.commands <- cmd:
	default:
		n := r.dropped.Add(1)
		debug.Log("monitor", "command queue full, dropped %d so far", n)
	}
}

// Run starts the control loop (blocking - run in goroutine)
func (r *Runtime) Run(ctx context.Context) {
	r.panel.Start()

	ticker := time.NewTicker(r.tick)
	uiTicker := time.NewTicker(time.Second / uiFPS)
	defer ticker.Stop()
	defer uiTicker.Stop()

	debug.Log("monitor", "runtime started (tick %s)", r.tick)
	for {
		select {
		case <-ctx.Done():
			debug.Log("monitor", "runtime stopped")
			return
		case cmd := <-r.commands:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.step()
		case <-uiTicker.C:
			r.notify()
		}
	}
}

// step samples the board once and advances the control state.
func (r *Runtime) step() {
	button, enabled := r.board.Sample()
	r.panel.Tick(button, enabled)
	debug.LogEvery(10000, "monitor", "tick")
}

func (r *Runtime) handleCommand(cmd msc.Command) {
	r.mu.Lock()
	r.last = cmd
	r.haveLast = true
	r.received++
	r.mu.Unlock()

	r.panel.CommandReceived()
	r.notify()
}

// LastCommand returns the most recent command, ok is false before the first.
func (r *Runtime) LastCommand() (msc.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.haveLast
}

func (r *Runtime) Snapshot() Snapshot {
	r.mu.RLock()
	s := Snapshot{
		Last:     r.last,
		HaveLast: r.haveLast,
		Received: r.received,
	}
	r.mu.RUnlock()

	s.Control = r.panel.Snapshot()
	s.Dropped = r.dropped.Load()
	s.Brightness = r.board.Brightness()
	return s
}

// onDirective runs under the panel lock, so it only signals.
func (r *Runtime) onDirective(d control.Directive) {
	r.notify()
}

func (r *Runtime) notify() {
	select {
	case r.UpdateChan <- struct{}{}:
	default:
	}
}
