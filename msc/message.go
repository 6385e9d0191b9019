package msc

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// FromMessage decodes a gomidi SysEx message. ok is false for any other
// message type. The payload is copied, so the listener may reuse msg.
func FromMessage(msg gomidi.Message) (cmd Command, ok bool) {
	var data []byte
	if !msg.GetSysEx(&data) {
		return Command{}, false
	}
	if len(data) > 0 && data[0] == sysExStart {
		data = data[1:]
	}
	if n := len(data); n > 0 && data[n-1] == sysExEnd {
		data = data[:n-1]
	}
	if len(data) > MaxFrameLen-2 {
		data = data[:MaxFrameLen-2]
	}

	frame := make([]byte, 0, len(data)+2)
	frame = append(frame, sysExStart)
	frame = append(frame, data...)
	frame = append(frame, sysExEnd)
	return Decode(frame), true
}

// Message wraps an encoded command as a gomidi SysEx message.
func Message(deviceID uint8, t Type, code Code, cue, list string) gomidi.Message {
	frame := Encode(deviceID, t, code, cue, list)
	return gomidi.SysEx(frame[1 : len(frame)-1])
}
