package transport

import (
	"bufio"
	"errors"
	"io"

	"msc-monitor/msc"
)

const sysExEnd = 0xF7

// FrameReader splits a raw byte stream into MSC frames. A frame ends at
// 0xF7 (not included) or after msc.MaxFrameLen bytes, whichever is first.
type FrameReader struct {
	r *bufio.Reader
}

func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReaderSize(r, msc.MaxFrameLen)}
}

// ReadFrame returns the next frame. A partial frame cut short by EOF is
// still returned, with a nil error; io.EOF is only reported once nothing
// is left.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	buf := make([]byte, 0, msc.MaxFrameLen)
	for len(buf) < msc.MaxFrameLen {
		b, err := fr.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return buf, nil
			}
			return nil, err
		}
		if b == sysExEnd {
			return buf, nil
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// ReadCommand reads one frame and decodes it.
func (fr *FrameReader) ReadCommand() (msc.Command, error) {
	frame, err := fr.ReadFrame()
	if err != nil {
		return msc.Command{}, err
	}
	return msc.Decode(frame), nil
}
