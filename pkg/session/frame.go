package session

import (
	"encoding/binary"
	"io"
)

// LengthPrefixSize is the width of the framing length field: a 4-byte
// little-endian unsigned integer giving the byte count of the SBE message
// that follows, MessageHeader included.
const LengthPrefixSize = 4

// DefaultMaxFrameLen bounds a declared frame length to guard against
// memory amplification from a corrupt or hostile length prefix.
const DefaultMaxFrameLen = 16 * 1024 * 1024

// FrameDecoder accumulates bytes from a stream and extracts complete
// length-prefixed frames. It is stateful and single-owner: one per
// session's reader task.
type FrameDecoder struct {
	buf      []byte
	maxFrame uint32
}

// NewFrameDecoder creates a decoder that rejects any declared length above
// maxFrame; a maxFrame of 0 uses DefaultMaxFrameLen.
func NewFrameDecoder(maxFrame uint32) *FrameDecoder {
	if maxFrame == 0 {
		maxFrame = DefaultMaxFrameLen
	}
	return &FrameDecoder{maxFrame: maxFrame}
}

// Push appends newly read bytes and returns every complete frame payload
// now available, in arrival order. Returned slices alias the decoder's
// internal buffer only until the next Push call — callers that need to
// retain a payload past that must copy it.
func (d *FrameDecoder) Push(chunk []byte) ([][]byte, error) {
	d.buf = append(d.buf, chunk...)

	var frames [][]byte
	for {
		if len(d.buf) < LengthPrefixSize {
			return frames, nil
		}
		n := binary.LittleEndian.Uint32(d.buf[:LengthPrefixSize])
		if n > d.maxFrame {
			return frames, &TransportError{Kind: FrameTooLarge}
		}
		total := LengthPrefixSize + int(n)
		if len(d.buf) < total {
			return frames, nil
		}
		frames = append(frames, d.buf[LengthPrefixSize:total])
		d.buf = d.buf[total:]
	}
}

// WriteFrame writes payload to w prefixed with its little-endian uint32
// length.
func WriteFrame(w io.Writer, payload []byte) error {
	var hdr [LengthPrefixSize]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return &TransportError{Kind: Io, Cause: err}
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := w.Write(payload); err != nil {
		return &TransportError{Kind: Io, Cause: err}
	}
	return nil
}
