package monitor

import (
	"context"
	"testing"
	"time"

	"msc-monitor/control"
	"msc-monitor/msc"
	"msc-monitor/panel"
	"msc-monitor/theme"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recorder struct {
	applied []control.Directive
}

func (r *recorder) Apply(d control.Directive) { r.applied = append(r.applied, d) }

func newTestRuntime() (*Runtime, *panel.Sim, *fakeClock, *recorder) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	sim := panel.NewSim(150 * time.Millisecond)
	sim.SetClock(clk.Now)
	rec := &recorder{}
	rt := New(sim, []control.Actuator{rec}, Options{Control: control.Options{Now: clk.Now}})
	rt.panel.Start()
	return rt, sim, clk, rec
}

func run(rt *Runtime, clk *fakeClock, steps int) {
	for i := 0; i < steps; i++ {
		rt.step()
		clk.Advance(time.Millisecond)
	}
}

func TestRuntime_SimPressPauses(t *testing.T) {
	rt, sim, clk, rec := newTestRuntime()

	sim.Press()
	run(rt, clk, 300)

	d := sim.Directive()
	if !d.RelayEnergized || d.PassthroughEnabled || d.Backlight != theme.Red {
		t.Fatalf("expected paused directive on the board, got %+v", d)
	}
	if last := rec.applied[len(rec.applied)-1]; last != d {
		t.Fatalf("expected extra actuator to see the same directive, got %+v", last)
	}
	if snap := rt.Snapshot(); !snap.Control.Paused || snap.Control.Pressed {
		t.Fatalf("expected paused and released, got %+v", snap.Control)
	}
}

func TestRuntime_InterruptTogglesOnNextStep(t *testing.T) {
	rt, sim, clk, _ := newTestRuntime()

	sim.Interrupt()
	run(rt, clk, 1)
	if !rt.Snapshot().Control.Paused {
		t.Fatalf("expected interrupt edge to pause")
	}

	// second edge inside the guard window is ignored
	sim.Interrupt()
	run(rt, clk, 1)
	if !rt.Snapshot().Control.Paused {
		t.Fatalf("expected guard to suppress a second toggle")
	}

	clk.Advance(control.DefaultToggleGuard)
	sim.Interrupt()
	run(rt, clk, 1)
	if rt.Snapshot().Control.Paused {
		t.Fatalf("expected toggle back after the guard")
	}
}

func TestRuntime_CommandFlashesAndRecords(t *testing.T) {
	rt, sim, clk, _ := newTestRuntime()

	frame := msc.Encode(1, msc.TypeSound, msc.CodeGo, "12.3", "")
	rt.Submit(msc.Decode(frame))
	rt.handleCommand(<-rt.commands)

	cmd, ok := rt.LastCommand()
	if !ok || cmd.Cue() != "12.3" || cmd.Type() != msc.TypeSound {
		t.Fatalf("unexpected last command ok=%v cue=%q type=%s", ok, cmd.Cue(), cmd.Type())
	}
	if sim.Directive().Backlight != theme.Blue {
		t.Fatalf("expected flash color, got %v", sim.Directive().Backlight)
	}

	run(rt, clk, 1001)
	if got := sim.Directive().Backlight; got != theme.Blue {
		t.Fatalf("expected flash to hold through the window, got %v", got)
	}
	run(rt, clk, 1)
	if got := sim.Directive().Backlight; got != theme.Green {
		t.Fatalf("expected revert to pass color, got %v", got)
	}

	snap := rt.Snapshot()
	if snap.Received != 1 || !snap.HaveLast || snap.Brightness != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRuntime_SubmitNeverBlocks(t *testing.T) {
	rt, _, _, _ := newTestRuntime()

	for i := 0; i < commandQueue+5; i++ {
		rt.Submit(msc.Command{})
	}
	if got := rt.Snapshot().Dropped; got != 5 {
		t.Fatalf("expected 5 dropped, got %d", got)
	}
}

func TestRuntime_RunStopsOnCancel(t *testing.T) {
	sim := panel.NewSim(0)
	rt := New(sim, nil, Options{Tick: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rt.Run(ctx)
		close(done)
	}()

	rt.Submit(msc.Decode(msc.Encode(0, msc.TypeAll, msc.CodeReset, "", "")))
	deadline := time.After(2 * time.Second)
	for {
		if _, ok := rt.LastCommand(); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("command was not processed")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop")
	}
}
