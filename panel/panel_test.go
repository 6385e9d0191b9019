package panel

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"msc-monitor/config"
	"msc-monitor/control"
	"msc-monitor/theme"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		in    string
		kind  messageKind
		value int
	}{
		{"READY", ready, 0},
		{"IRQ", buttonIRQ, 0},
		{"BTN=0", buttonLevel, 0},
		{"BTN=1", buttonLevel, 1},
		{"EN=1", enableLevel, 1},
		{"POT=512", potValue, 512},
		{"BTN=2", invalid, 0},
		{"POT=-1", invalid, 0},
		{"RLY=1", invalid, 0},
		{"hello", invalid, 0},
	}

	for _, tt := range tests {
		got := parseMessage(tt.in)
		if got.kind != tt.kind || got.value != tt.value {
			t.Fatalf("%q: expected kind=%d value=%d, got kind=%d value=%d", tt.in, tt.kind, tt.value, got.kind, got.value)
		}
	}
}

func TestButtonMode(t *testing.T) {
	no, err := ParseButtonMode(config.NormallyOpen)
	if err != nil || no != NormallyOpen {
		t.Fatalf("expected NormallyOpen, got %v err=%v", no, err)
	}
	if !no.Asserted(false) || no.Asserted(true) || !no.IdleLevel() {
		t.Fatalf("normally open must assert on LOW")
	}

	nc, err := ParseButtonMode(config.NormallyClosed)
	if err != nil || nc != NormallyClosed {
		t.Fatalf("expected NormallyClosed, got %v err=%v", nc, err)
	}
	if !nc.Asserted(true) || nc.Asserted(false) || nc.IdleLevel() {
		t.Fatalf("normally closed must assert on HIGH")
	}

	if _, err := ParseButtonMode("latching"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestBacklightDuty(t *testing.T) {
	if got := BacklightDuty(theme.Green, 1); got != (theme.RGB{0xff, 0x00, 0xff}) {
		t.Fatalf("expected inverted green, got %v", got)
	}
	if got := BacklightDuty(theme.FromHex24(0xff9090), 0); got != (theme.RGB{0xff, 0xff, 0xff}) {
		t.Fatalf("expected dark LED at zero brightness, got %v", got)
	}
	if got := BacklightDuty(theme.RGB{200, 100, 0}, PotScale(512)); got != (theme.RGB{0xff - 100, 0xff - 50, 0xff}) {
		t.Fatalf("unexpected half-brightness duty %v", got)
	}
	if PotScale(5000) != 1 || PotScale(-3) != 0 {
		t.Fatalf("PotScale must clamp")
	}
}

func TestSim_PressHoldsForWindow(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewSim(100 * time.Millisecond)
	s.SetClock(func() time.Time { return now })

	if pressed, enabled := s.Sample(); pressed || !enabled {
		t.Fatalf("expected idle enabled panel, got pressed=%v enabled=%v", pressed, enabled)
	}

	s.Press()
	now = now.Add(99 * time.Millisecond)
	if pressed, _ := s.Sample(); !pressed {
		t.Fatalf("expected button held inside the window")
	}
	now = now.Add(time.Millisecond)
	if pressed, _ := s.Sample(); pressed {
		t.Fatalf("expected button released after the window")
	}

	if s.ToggleEnabled() {
		t.Fatalf("expected disabled after toggle")
	}
}

func TestSim_InterruptAndBrightness(t *testing.T) {
	s := NewSim(0)
	fired := 0
	s.SetInterruptHandler(func() { fired++ })
	s.Interrupt()
	if fired != 1 {
		t.Fatalf("expected handler called once, got %d", fired)
	}

	if b := s.AdjustBrightness(-3); b < 0.69 || b > 0.71 {
		t.Fatalf("expected 0.7, got %f", b)
	}
	if b := s.AdjustBrightness(-20); b != 0 {
		t.Fatalf("expected clamp to 0, got %f", b)
	}

	d := control.Directive{Status: control.StatusPaused}
	s.Apply(d)
	if s.Directive().Status != control.StatusPaused {
		t.Fatalf("expected directive stored")
	}
}

// fakePort feeds board lines in through a pipe and records host writes.
type fakePort struct {
	in *io.PipeReader

	mu  sync.Mutex
	out bytes.Buffer
}

func (p *fakePort) Read(b []byte) (int, error) { return p.in.Read(b) }

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

func (p *fakePort) Close() error { return p.in.Close() }

func (p *fakePort) written() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.String()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLink_RoundTrip(t *testing.T) {
	pr, pw := io.Pipe()
	port := &fakePort{in: pr}

	link := NewLink("fake", 19200, LinkOptions{
		Mode:          NormallyOpen,
		HasRelay:      true,
		HasBrightness: true,
		Open:          func(string, int) (io.ReadWriteCloser, error) { return port, nil },
	})

	irq := make(chan struct{}, 1)
	link.SetInterruptHandler(func() { irq <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		link.Run(ctx)
		close(done)
	}()
	waitFor(t, "connect", link.Connected)

	io.WriteString(pw, "BTN=0\nEN=0\nPOT=1023\n")
	waitFor(t, "samples", func() bool {
		pressed, enabled := link.Sample()
		return pressed && !enabled
	})

	link.Apply(control.Directive{RelayEnergized: true, Backlight: theme.Red})
	waitFor(t, "relay write", func() bool {
		return strings.Contains(port.written(), "RLY=1\n")
	})
	// 1023/1024 of full red, inverted
	if !strings.Contains(port.written(), "RGB=01ffff\n") {
		t.Fatalf("expected inverted red duty, got %q", port.written())
	}

	io.WriteString(pw, "IRQ\n")
	select {
	case <-irq:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected interrupt handler to fire")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop")
	}
	pw.Close()
}

func TestLink_NoRelayNoPot(t *testing.T) {
	var buf bytes.Buffer
	link := NewLink("fake", 19200, LinkOptions{Mode: NormallyClosed})
	link.Apply(control.Directive{RelayEnergized: true, Backlight: theme.Green})
	link.handleLine("POT=0")

	if link.Brightness() != 1 {
		t.Fatalf("expected full brightness without a pot, got %f", link.Brightness())
	}
	if err := link.writeState(&buf); err != nil {
		t.Fatalf("writeState: %v", err)
	}
	if buf.String() != "RGB=ff00ff\n" {
		t.Fatalf("expected only backlight line, got %q", buf.String())
	}

	link.handleLine("BTN=1")
	if pressed, _ := link.Sample(); !pressed {
		t.Fatalf("normally closed button must assert on HIGH")
	}
}
