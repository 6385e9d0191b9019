package msc

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestFromMessage_SysEx(t *testing.T) {
	msg := Message(0x12, TypeLighting, CodeLoad, "3.5", "1")

	c, ok := FromMessage(msg)
	if !ok {
		t.Fatalf("expected SysEx message to decode")
	}
	if c.DeviceID() != 0x12 || c.Type() != TypeLighting || c.Code() != CodeLoad {
		t.Fatalf("unexpected decode: id=%d type=%s cmd=%s", c.DeviceID(), c.Type(), c.Code())
	}
	if c.Cue() != "3.5" || c.List() != "1" {
		t.Fatalf("expected cue=3.5 list=1, got cue=%q list=%q", c.Cue(), c.List())
	}
	p := c.Payload()
	if p[0] != 0xF0 || p[len(p)-1] != 0xF7 {
		t.Fatalf("expected payload framed with F0..F7, got % X", p)
	}
}

func TestFromMessage_IgnoresChannelMessages(t *testing.T) {
	if _, ok := FromMessage(gomidi.NoteOn(0, 60, 100)); ok {
		t.Fatalf("note on must not decode as MSC")
	}
}
