package msc

// Frame layout after the optional SysEx start byte:
//
//	7F <device_id> 02 <command_format> <command> <data...> [F7]
const (
	sysExStart byte = 0xF0
	sysExEnd   byte = 0xF7
	fieldEnd   byte = 0x00

	universalRealTime byte = 0x7F
	subIDShowControl  byte = 0x02

	offUniversal = 0
	offDevice    = 1
	offSubID     = 2
	offFormat    = 3
	offCommand   = 4
	headerLen    = 5
)

// Decode turns a raw frame into a Command. It accepts frames with or
// without the leading F0 and trailing F7 and never fails: short or malformed
// input yields TypeUnknown, CodeInvalid and empty cue/list.
func Decode(frame []byte) Command {
	if len(frame) > MaxFrameLen {
		frame = frame[:MaxFrameLen]
	}

	c := Command{
		typ:     TypeUnknown,
		code:    CodeInvalid,
		payload: frame,
	}

	body := frame
	if len(body) > 0 && body[0] == sysExStart {
		body = body[1:]
	}
	for i, b := range body {
		if b == sysExEnd {
			body = body[:i]
			break
		}
	}

	// Missing header bytes read as zero, which maps to Unknown/Invalid and
	// stops field extraction below.
	at := func(i int) byte {
		if i < len(body) {
			return body[i]
		}
		return 0
	}

	c.deviceID = at(offDevice) & 0x7F
	c.msc = at(offUniversal) == universalRealTime && at(offSubID) == subIDShowControl
	c.typ = ParseType(at(offFormat))
	c.code = ParseCode(at(offCommand))

	if c.typ == TypeUnknown || c.code == CodeInvalid || len(body) <= headerLen {
		return c
	}

	e := lookup(c.code)
	data := body[headerLen:]
	if e.skip > 0 {
		if len(data) <= e.skip {
			return c
		}
		data = data[e.skip:]
	}
	if e.cue {
		data = c.cue.fill(data)
	}
	if e.list {
		c.list.fill(data)
	}
	return c
}
