package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// DefaultMaxFrameLength is the default upper bound on a single frame's
// payload length, in bytes.
const DefaultMaxFrameLength = 1 << 20 // 1 MiB

// lengthPrefixSize is the width, in bytes, of a frame's length prefix.
const lengthPrefixSize = 4

// ErrConnClosed is returned by FrameConn.Recv to signal that the peer has
// closed the connection, or that a short read occurred mid-frame. It is not
// itself an error condition the Session layer reports to anyone: it is
// clean termination.
var ErrConnClosed = errors.New("wire: connection closed")

// FrameConn sends and receives length-prefixed frames over an underlying
// byte-stream connection (rwc). A frame is a 4-byte little-endian unsigned
// length L followed by exactly L payload bytes.
type FrameConn struct {
	rwc         io.ReadWriteCloser
	maxFrameLen uint32
	closed      bool
}

// NewFrameConn wraps rwc in a FrameConn bounding frames to maxFrameLen
// bytes. A maxFrameLen of 0 selects DefaultMaxFrameLength.
func NewFrameConn(rwc io.ReadWriteCloser, maxFrameLen uint32) *FrameConn {
	if maxFrameLen == 0 {
		maxFrameLen = DefaultMaxFrameLength
	}
	return &FrameConn{rwc: rwc, maxFrameLen: maxFrameLen}
}

// Send emits payload as one frame: its length prefix followed by its bytes.
// The underlying connection is a raw io.Writer, so there is no separate
// buffer to flush — Send has returned only once every byte is with the
// OS/network stack.
func (f *FrameConn) Send(payload []byte) error {
	var prefix [lengthPrefixSize]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(payload)))

	if _, err := f.rwc.Write(prefix[:]); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := f.rwc.Write(payload)
	return err
}

// Recv returns the next complete frame payload. It returns ErrConnClosed
// when the peer has closed the connection, a
// short read occurs mid-frame, or the declared length exceeds
// maxFrameLen — in the last case Recv also closes the connection before
// returning, per spec.md §4.2.
func (f *FrameConn) Recv() ([]byte, error) {
	var prefix [lengthPrefixSize]byte
	if _, err := io.ReadFull(f.rwc, prefix[:]); err != nil {
		return nil, ErrConnClosed
	}

	length := binary.LittleEndian.Uint32(prefix[:])
	if length > f.maxFrameLen {
		_ = f.Close()
		return nil, ErrConnClosed
	}

	if length == 0 {
		return nil, nil
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(f.rwc, payload); err != nil {
		return nil, ErrConnClosed
	}
	return payload, nil
}

// Close releases the underlying connection. It is idempotent.
func (f *FrameConn) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.rwc.Close()
}
