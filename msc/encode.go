package msc

// Encode builds a complete SysEx frame (F0 ... F7) for a command. cue and
// list are written only when the catalog says the command carries them;
// TIMED_GO gets an all-zero time code.
func Encode(deviceID uint8, t Type, code Code, cue, list string) []byte {
	out := []byte{
		sysExStart,
		universalRealTime,
		deviceID & 0x7F,
		subIDShowControl,
		byte(t),
		byte(code),
	}

	e := lookup(code)
	for i := 0; i < e.skip; i++ {
		out = append(out, 0)
	}
	switch {
	case e.cue && e.list:
		if cue != "" || list != "" {
			out = append(out, cue...)
		}
		if list != "" {
			out = append(out, fieldEnd)
			out = append(out, list...)
		}
	case e.list:
		out = append(out, list...)
	}

	return append(out, sysExEnd)
}
