package midi

import "fmt"

// DeviceEvent is emitted when ports connect/disconnect
type DeviceEvent struct {
	Type DeviceEventType
	Kind PortKind
	ID   string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// PortKind tells an MSC input apart from the thru output
type PortKind int

const (
	PortInput PortKind = iota
	PortThru
)

func (e DeviceEvent) String() string {
	verb := "connected"
	if e.Type == DeviceDisconnected {
		verb = "disconnected"
	}
	kind := "input"
	if e.Kind == PortThru {
		kind = "thru"
	}
	return fmt.Sprintf("%s %s %q", kind, verb, e.ID)
}
