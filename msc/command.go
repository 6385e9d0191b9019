package msc

const (
	// MaxFrameLen is the largest frame the decoder looks at. Longer input is
	// cut to this length before decoding.
	MaxFrameLen = 128

	MaxCueLen  = 8
	MaxListLen = 8
)

// field is a fixed-capacity ASCII number. buf always keeps a trailing zero
// byte after the last character.
type field struct {
	buf [MaxCueLen + 1]byte
	n   uint8
}

func (f *field) String() string {
	return string(f.buf[:f.n])
}

// fill copies cue characters from data until the field terminator or the end
// of data, dropping anything past capacity. It returns what follows the
// terminator, or nil when data ran out first.
func (f *field) fill(data []byte) []byte {
	for i, b := range data {
		if b == fieldEnd {
			return data[i+1:]
		}
		if int(f.n) < MaxCueLen && isCueChar(b) {
			f.buf[f.n] = b
			f.n++
		}
	}
	return nil
}

func isCueChar(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.'
}

// Command is one decoded MSC frame. It is a value type: copies are
// independent apart from the shared payload slice.
type Command struct {
	deviceID uint8
	typ      Type
	code     Code
	cue      field
	list     field
	payload  []byte
	msc      bool
}

// DeviceID is the target device id in [0,127]. 0x7F is the all-call id.
func (c Command) DeviceID() uint8 { return c.deviceID }

func (c Command) Type() Type { return c.typ }

func (c Command) Code() Code { return c.code }

// Cue is the Q_number field, empty when the command carries none.
func (c Command) Cue() string { return c.cue.String() }

// List is the Q_list field, empty when the command carries none.
func (c Command) List() string { return c.list.String() }

// Payload is the frame exactly as it was handed to Decode (after the
// MaxFrameLen cut). It aliases the caller's buffer.
func (c Command) Payload() []byte { return c.payload }

// Len is the payload length.
func (c Command) Len() int { return len(c.payload) }

// IsMSC reports whether the header carried the universal real-time and MSC
// sub-id bytes. Decoding does not depend on it.
func (c Command) IsMSC() bool { return c.msc }
