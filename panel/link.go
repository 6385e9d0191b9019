package panel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"msc-monitor/control"
	"msc-monitor/debug"
	"msc-monitor/transport"
)

// LinkOptions describes the fitted hardware.
type LinkOptions struct {
	Mode          ButtonMode
	HasRelay      bool
	HasBrightness bool
	Retry         time.Duration
	Open          transport.OpenFunc
}

// Link talks to the front panel board over a serial line. Input lines
// update the sampled state; directives are written by a separate goroutine
// so Apply never blocks the control loop.
type Link struct {
	device string
	baud   int
	opts   LinkOptions

	mu        sync.Mutex
	pressed   bool
	enabled   bool
	pot       int
	last      control.Directive
	haveLast  bool
	connected bool
	interrupt func()

	dirty chan struct{}
}

func NewLink(device string, baud int, opts LinkOptions) *Link {
	if opts.Retry <= 0 {
		opts.Retry = time.Second
	}
	if opts.Open == nil {
		opts.Open = transport.OpenSerial
	}
	return &Link{
		device:  device,
		baud:    baud,
		opts:    opts,
		enabled: true,
		pot:     1023,
		dirty:   make(chan struct{}, 1),
	}
}

func (l *Link) Sample() (bool, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pressed, l.enabled
}

func (l *Link) SetInterruptHandler(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interrupt = fn
}

func (l *Link) Brightness() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.opts.HasBrightness {
		return 1
	}
	return PotScale(l.pot)
}

// Connected reports whether the board port is currently open.
func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

func (l *Link) Apply(d control.Directive) {
	l.mu.Lock()
	l.last = d
	l.haveLast = true
	l.mu.Unlock()
	l.markDirty()
}

func (l *Link) markDirty() {
	select {
	case l.dirty <- struct{}{}:
	default:
	}
}

// Run keeps the board connected until ctx is cancelled.
func (l *Link) Run(ctx context.Context) {
	for {
		if err := l.session(ctx); err != nil && ctx.Err() == nil {
			debug.Log("panel", "%s: %v (retry in %s)", l.device, err, l.opts.Retry)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.opts.Retry):
		}
	}
}

func (l *Link) session(ctx context.Context) error {
	port, err := l.opts.Open(l.device, l.baud)
	if err != nil {
		return err
	}
	defer port.Close()

	l.setConnected(true)
	defer l.setConnected(false)
	debug.Log("panel", "board link open %s @%d", l.device, l.baud)

	readErr := make(chan error, 1)
	go func() {
		readErr <- l.readLoop(port)
	}()

	// push the current state to a freshly opened board
	l.markDirty()

	for {
		select {
		case <-ctx.Done():
			port.Close()
			<-readErr
			return nil
		case err := <-readErr:
			return err
		case <-l.dirty:
			if err := l.writeState(port); err != nil {
				port.Close()
				<-readErr
				return err
			}
		}
	}
}

func (l *Link) readLoop(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			l.handleLine(trimmed)
		}
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("panel: %s closed", l.device)
			}
			return fmt.Errorf("panel: read %s: %w", l.device, err)
		}
	}
}

func (l *Link) handleLine(s string) {
	msg := parseMessage(s)
	if msg.kind == invalid {
		debug.Log("panel", "ignoring line %q", s)
		return
	}

	var (
		fire   func()
		resend bool
	)
	l.mu.Lock()
	switch msg.kind {
	case ready:
		resend = true
	case buttonLevel:
		l.pressed = l.opts.Mode.Asserted(msg.value == 1)
	case enableLevel:
		l.enabled = msg.value == 1
	case potValue:
		resend = l.opts.HasBrightness && l.pot != msg.value
		l.pot = msg.value
	case buttonIRQ:
		fire = l.interrupt
	}
	l.mu.Unlock()

	if msg.kind == ready {
		debug.Log("panel", "board ready")
	}
	if resend {
		l.markDirty()
	}
	if fire != nil {
		fire()
	}
}

func (l *Link) writeState(w io.Writer) error {
	l.mu.Lock()
	if !l.haveLast {
		l.mu.Unlock()
		return nil
	}
	d := l.last
	brightness := 1.0
	if l.opts.HasBrightness {
		brightness = PotScale(l.pot)
	}
	l.mu.Unlock()

	var lines []string
	if l.opts.HasRelay {
		lines = append(lines, serializeRelay(d.RelayEnergized))
	}
	lines = append(lines, serializeBacklight(BacklightDuty(d.Backlight, brightness)))

	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("panel: write %s: %w", l.device, err)
		}
	}
	debug.LogEvery(20, "panel", "wrote %s", strings.Join(lines, " "))
	return nil
}

func (l *Link) setConnected(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = v
}
