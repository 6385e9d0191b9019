package midi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"msc-monitor/debug"
	"msc-monitor/msc"
)

const sysExBufferSize = 2 * msc.MaxFrameLen

// Options selects which ports the manager opens.
type Options struct {
	// InputPatterns limits inputs to names containing one of these
	// (case-insensitive). Empty means every input that is not excluded.
	InputPatterns    []string
	ExcludedPatterns []string
	// ThruPort is matched against output names the same way.
	ThruPort string
	PollRate time.Duration
}

// DeviceManager handles hot-plug detection of MIDI ports. Every matching
// input is listened to for MSC SysEx; all incoming messages go through the
// thru gate.
type DeviceManager struct {
	opts      Options
	inputs    map[string]*Input
	mu        sync.RWMutex
	events    chan DeviceEvent
	thru      *ThruGate
	onCommand func(msc.Command)
}

// NewDeviceManager creates a new device manager. onCommand runs on the
// driver's listener goroutine and must not block.
func NewDeviceManager(opts Options, onCommand func(msc.Command)) *DeviceManager {
	if opts.PollRate <= 0 {
		opts.PollRate = time.Second
	}
	return &DeviceManager{
		opts:      opts,
		inputs:    make(map[string]*Input),
		events:    make(chan DeviceEvent, 16),
		thru:      NewThruGate(),
		onCommand: onCommand,
	}
}

// Events returns a channel of port connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Thru is the gate the control layer opens and closes.
func (dm *DeviceManager) Thru() *ThruGate {
	return dm.thru
}

// Inputs returns the names of the inputs currently listened to, sorted.
func (dm *DeviceManager) Inputs() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	names := make([]string, 0, len(dm.inputs))
	for id := range dm.inputs {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.opts.PollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var result portsResult
	select {
	case result = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("midi", "port scan timed out, skipping")
		return
	}

	seen := make(map[string]bool)
	for _, in := range result.inPorts {
		id := in.String()
		if !SelectPort(id, dm.opts.InputPatterns, dm.opts.ExcludedPatterns) {
			continue
		}
		seen[id] = true

		dm.mu.RLock()
		_, exists := dm.inputs[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		input, err := OpenInput(id, in, dm.handle)
		if err != nil {
			debug.Log("midi", "open %q: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.inputs[id] = input
		dm.mu.Unlock()
		dm.emit(DeviceEvent{Type: DeviceConnected, Kind: PortInput, ID: id})
	}

	// Check for disconnects
	dm.mu.Lock()
	var gone []string
	for id, input := range dm.inputs {
		if !seen[id] {
			input.Close()
			delete(dm.inputs, id)
			gone = append(gone, id)
		}
	}
	dm.mu.Unlock()
	for _, id := range gone {
		dm.emit(DeviceEvent{Type: DeviceDisconnected, Kind: PortInput, ID: id})
	}

	dm.scanThru(result.outPorts)
}

func (dm *DeviceManager) scanThru(outs []drivers.Out) {
	if dm.opts.ThruPort == "" {
		return
	}

	current := dm.thru.Port()
	var match drivers.Out
	for _, out := range outs {
		if containsCI(out.String(), dm.opts.ThruPort) {
			match = out
			break
		}
	}

	switch {
	case match == nil && current != "":
		dm.thru.Detach()
		dm.emit(DeviceEvent{Type: DeviceDisconnected, Kind: PortThru, ID: current})
	case match != nil && current != match.String():
		send, err := gomidi.SendTo(match)
		if err != nil {
			debug.Log("midi", "open thru %q: %v", match.String(), err)
			return
		}
		dm.thru.Attach(match.String(), send)
		dm.emit(DeviceEvent{Type: DeviceConnected, Kind: PortThru, ID: match.String()})
	}
}

// handle runs on the listener goroutine of input id.
func (dm *DeviceManager) handle(id string, msg gomidi.Message) {
	dm.thru.Forward(msg)

	cmd, ok := msc.FromMessage(msg)
	if !ok {
		return
	}
	debug.Log("msc", "%s: id=%02X type=%s cmd=%s cue=%q list=%q",
		id, cmd.DeviceID(), cmd.Type(), cmd.Code(), cmd.Cue(), cmd.List())
	if dm.onCommand != nil {
		dm.onCommand(cmd)
	}
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	debug.Log("midi", "%s", ev)
	select {
	case dm.events <- ev:
	default:
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, input := range dm.inputs {
		input.Close()
	}
	dm.inputs = make(map[string]*Input)
	dm.thru.Detach()
}

// SelectPort applies the include and exclude patterns to a port name.
func SelectPort(name string, include, exclude []string) bool {
	for _, pat := range exclude {
		if containsCI(name, pat) {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pat := range include {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Input is one listened MIDI input port.
type Input struct {
	id   string
	stop func()
}

// OpenInput starts listening on port with SysEx enabled. recv gets every
// message along with the port id.
func OpenInput(id string, port drivers.In, recv func(id string, msg gomidi.Message)) (*Input, error) {
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		recv(id, msg)
	}, gomidi.UseSysEx(), gomidi.SysExBufferSize(sysExBufferSize), gomidi.HandleError(func(err error) {
		debug.Log("midi", "listener %q: %v", id, err)
	}))
	if err != nil {
		return nil, fmt.Errorf("midi: listen %q: %w", id, err)
	}
	return &Input{id: id, stop: stop}, nil
}

func (in *Input) ID() string { return in.id }

func (in *Input) Close() {
	if in.stop != nil {
		in.stop()
		in.stop = nil
	}
}
