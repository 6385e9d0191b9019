package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"

	"msc-monitor/debug"
	"msc-monitor/msc"
)

// OpenFunc opens a byte stream. OpenSerial is the real one; tests swap in
// an in-memory stream.
type OpenFunc func(device string, baud int) (io.ReadWriteCloser, error)

// OpenSerial opens the named serial device at the given baud rate.
func OpenSerial(device string, baud int) (io.ReadWriteCloser, error) {
	p, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s @%d: %w", device, baud, err)
	}
	return p, nil
}

// SerialPorts lists the serial devices present on the system.
func SerialPorts() ([]string, error) {
	return serial.GetPortsList()
}

// SerialSource reads MSC frames from a raw serial line and hands each
// decoded command to the handler. It reopens the device after errors.
type SerialSource struct {
	Device string
	Baud   int
	Retry  time.Duration
	Open   OpenFunc

	handle func(msc.Command)
}

func NewSerialSource(device string, baud int, handle func(msc.Command)) *SerialSource {
	return &SerialSource{
		Device: device,
		Baud:   baud,
		Retry:  time.Second,
		Open:   OpenSerial,
		handle: handle,
	}
}

// Run blocks until ctx is cancelled.
func (s *SerialSource) Run(ctx context.Context) {
	for {
		if err := s.session(ctx); err != nil && ctx.Err() == nil {
			debug.Log("serial", "%s: %v (retry in %s)", s.Device, err, s.Retry)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.Retry):
		}
	}
}

// session owns one open port until it fails or ctx ends.
func (s *SerialSource) session(ctx context.Context) error {
	port, err := s.Open(s.Device, s.Baud)
	if err != nil {
		return err
	}
	debug.Log("serial", "opened %s @%d", s.Device, s.Baud)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			port.Close()
		case <-done:
		}
	}()
	defer port.Close()

	fr := NewFrameReader(port)
	for {
		cmd, err := fr.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("serial: %s closed", s.Device)
			}
			return fmt.Errorf("serial: read %s: %w", s.Device, err)
		}
		debug.Log("msc", "serial frame id=%02X type=%s cmd=%s cue=%q list=%q",
			cmd.DeviceID(), cmd.Type(), cmd.Code(), cmd.Cue(), cmd.List())
		if s.handle != nil {
			s.handle(cmd)
		}
	}
}
