// Package wire implements the primitive value encodings used on the Minecraft
// Java Edition wire: VarInt/VarLong, length-prefixed strings and byte arrays,
// big-endian fixed-width scalars, the packed block Position, UUID and Angle.
//
// All decoding happens through a Buffer, a small cursor over an in-memory
// byte slice. Encoding writes directly to a Buffer created over a growable
// internal buffer. Buffer intentionally does not wrap an arbitrary io.Reader:
// every packet payload is already fully buffered by the framing layer before
// it reaches the codec, so random access and precise "bytes consumed"
// accounting (the VarInt decode bug fixed by this design, see DESIGN.md) are
// simpler over a slice+offset than over a stream.
package wire

import (
	"bytes"
	"fmt"
)

// Buffer is a cursor over a byte slice, used for both decoding (Read* methods
// advance an offset) and encoding (Write* methods append to an internal
// bytes.Buffer).
type Buffer struct {
	data []byte // read mode
	off  int

	out *bytes.Buffer // write mode
}

// NewReader creates a Buffer for decoding from data. Read* methods consume
// bytes starting at offset 0 and advance strictly by the number of bytes the
// value actually occupies — never by pre-scanning the whole slice.
func NewReader(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewWriter creates a Buffer for encoding. Bytes() returns what has been
// written so far.
func NewWriter() *Buffer {
	return &Buffer{out: &bytes.Buffer{}}
}

// Bytes returns the bytes written so far. Only valid for a Buffer created
// with NewWriter.
func (b *Buffer) Bytes() []byte {
	if b.out != nil {
		return b.out.Bytes()
	}
	return nil
}

// Len returns the number of unread bytes remaining (read mode) or the number
// of bytes written so far (write mode).
func (b *Buffer) Len() int {
	if b.out != nil {
		return b.out.Len()
	}
	return len(b.data) - b.off
}

// Remaining returns the unread tail of the buffer without consuming it.
func (b *Buffer) Remaining() []byte {
	return b.data[b.off:]
}

// ErrShortBuffer is returned by any Read method that needs more bytes than
// remain in the buffer.
var ErrShortBuffer = fmt.Errorf("wire: unexpected end of buffer")

// ReadBytes consumes and returns exactly n bytes.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.off+n > len(b.data) {
		return nil, ErrShortBuffer
	}
	out := b.data[b.off : b.off+n]
	b.off += n
	return out, nil
}

// ReadByte consumes and returns a single byte. Implements io.ByteReader so
// VarInt decoding can share helpers that expect one.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.data) {
		return 0, ErrShortBuffer
	}
	v := b.data[b.off]
	b.off++
	return v, nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(v byte) error {
	b.out.WriteByte(v)
	return nil
}

// Write appends raw bytes.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.out.Write(p)
}
