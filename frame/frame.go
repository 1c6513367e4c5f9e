// Package frame implements the packet envelope described in SPEC_FULL.md's
// framing layer: a VarInt length prefix around either a raw packet-id+payload
// or, once compression is enabled, a VarInt uncompressed-length followed by
// a zlib-deflated packet-id+payload.
//
// Grounded on java_protocol/packet.go's WirePacket read/write pair, adapted
// to stream byte-by-byte length decoding (the teacher reads the length via
// its net_structures.DecodeVarInt helper the same way) and to
// klauspost/compress/zlib instead of the standard library's compress/zlib.
package frame

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-mclib/mcserver/wire"
	"github.com/klauspost/compress/zlib"
)

// MaxFrameLength is the hard cap on a frame's declared length, independent
// of whether compression is in use.
const MaxFrameLength = 2 * 1024 * 1024

// Frame is one decoded packet envelope: the packet ID and its payload bytes,
// with the length/compression framing already stripped.
type Frame struct {
	ID      wire.VarInt
	Payload []byte
}

// readVarInt decodes a VarInt directly off r, one byte at a time, blocking
// as needed. Used for the frame length prefix, which must be read before
// any fixed-size buffer exists to decode from.
func readVarInt(r io.Reader) (wire.VarInt, error) {
	var value int32
	var position uint
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrTruncatedFrame, err)
		}
		value |= int32(b[0]&0x7F) << position
		if b[0]&0x80 == 0 {
			break
		}
		position += 7
		if position >= 35 {
			return 0, ErrBadVarInt
		}
	}
	return wire.VarInt(value), nil
}

// ReadFrame reads exactly one frame from r. threshold is the connection's
// current compression threshold; negative disables compression entirely.
func ReadFrame(r io.Reader, threshold int) (Frame, error) {
	length, err := readVarInt(r)
	if err != nil {
		return Frame{}, err
	}
	if length < 0 {
		return Frame{}, ErrBadVarInt
	}
	if int(length) > MaxFrameLength {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrTruncatedFrame, err)
	}

	if threshold < 0 {
		return decodeIDAndPayload(body)
	}
	return decodeCompressedBody(body)
}

func decodeCompressedBody(body []byte) (Frame, error) {
	buf := wire.NewReader(body)
	uncompressedLen, err := buf.ReadVarInt()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: uncompressed-length: %v", ErrTruncatedFrame, err)
	}

	rest := buf.Remaining()
	if uncompressedLen == 0 {
		return decodeIDAndPayload(rest)
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrDecompressError, err)
	}
	defer func() { _ = zr.Close() }()

	inflated, err := io.ReadAll(io.LimitReader(zr, int64(uncompressedLen)+1))
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrDecompressError, err)
	}
	if len(inflated) != int(uncompressedLen) {
		return Frame{}, fmt.Errorf("%w: declared %d, got %d", ErrDecompressedSizeMismatch, uncompressedLen, len(inflated))
	}

	return decodeIDAndPayload(inflated)
}

func decodeIDAndPayload(data []byte) (Frame, error) {
	buf := wire.NewReader(data)
	id, err := buf.ReadVarInt()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: packet id: %v", ErrTruncatedFrame, err)
	}
	return Frame{ID: id, Payload: buf.Remaining()}, nil
}

// WriteFrame writes one frame to w. threshold is the connection's current
// compression threshold; negative disables compression entirely. A payload
// whose packet-id+payload size is strictly below a non-negative threshold is
// still sent uncompressed, with uncompressed-length = 0.
func WriteFrame(w io.Writer, f Frame, threshold int) error {
	idAndPayload := wire.NewWriter()
	if err := idAndPayload.WriteVarInt(f.ID); err != nil {
		return err
	}
	if _, err := idAndPayload.Write(f.Payload); err != nil {
		return err
	}
	raw := idAndPayload.Bytes()

	if threshold < 0 {
		return writeFrameBody(w, raw)
	}
	return writeCompressedFrameBody(w, raw, threshold)
}

func writeFrameBody(w io.Writer, body []byte) error {
	lenBuf := wire.NewWriter()
	if err := lenBuf.WriteVarInt(wire.VarInt(len(body))); err != nil {
		return err
	}
	if _, err := w.Write(lenBuf.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

func writeCompressedFrameBody(w io.Writer, raw []byte, threshold int) error {
	if len(raw) < threshold {
		frameBody := wire.NewWriter()
		if err := frameBody.WriteVarInt(0); err != nil {
			return err
		}
		if _, err := frameBody.Write(raw); err != nil {
			return err
		}
		return writeFrameBody(w, frameBody.Bytes())
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	frameBody := wire.NewWriter()
	if err := frameBody.WriteVarInt(wire.VarInt(len(raw))); err != nil {
		return err
	}
	if _, err := frameBody.Write(compressed.Bytes()); err != nil {
		return err
	}
	return writeFrameBody(w, frameBody.Bytes())
}
