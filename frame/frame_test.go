package frame_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/go-mclib/mcserver/frame"
	"github.com/go-mclib/mcserver/wire"
)

func TestWriteReadFrameUncompressed(t *testing.T) {
	f := frame.Frame{ID: 0x00, Payload: []byte("hello")}

	var buf bytes.Buffer
	if err := frame.WriteFrame(&buf, f, -1); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	got, err := frame.ReadFrame(&buf, -1)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.ID != f.ID || !bytes.Equal(got.Payload, f.Payload) {
		t.Errorf("got %+v, want %+v", got, f)
	}
}

func TestWriteReadFrameBelowThresholdStaysUncompressed(t *testing.T) {
	f := frame.Frame{ID: 0x01, Payload: []byte("tiny")}

	var buf bytes.Buffer
	if err := frame.WriteFrame(&buf, f, 256); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	// Below the threshold, the frame must carry a literal VarInt(0)
	// uncompressed-length marker right after the length prefix.
	raw := buf.Bytes()
	buf2 := wire.NewReader(raw)
	if _, err := buf2.ReadVarInt(); err != nil { // frame length
		t.Fatalf("read frame length: %v", err)
	}
	marker, err := buf2.ReadVarInt()
	if err != nil {
		t.Fatalf("read uncompressed-length marker: %v", err)
	}
	if marker != 0 {
		t.Errorf("uncompressed-length marker = %d, want 0 for a below-threshold payload", marker)
	}

	got, err := frame.ReadFrame(bytes.NewReader(raw), 256)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.ID != f.ID || !bytes.Equal(got.Payload, f.Payload) {
		t.Errorf("got %+v, want %+v", got, f)
	}
}

func TestWriteReadFrameAboveThresholdCompresses(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1024)
	f := frame.Frame{ID: 0x02, Payload: payload}

	var buf bytes.Buffer
	if err := frame.WriteFrame(&buf, f, 8); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	if buf.Len() >= len(payload) {
		t.Errorf("frame length %d did not shrink below payload length %d; compression likely did not run", buf.Len(), len(payload))
	}

	got, err := frame.ReadFrame(&buf, 8)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.ID != f.ID || !bytes.Equal(got.Payload, f.Payload) {
		t.Errorf("payload mismatch after compressed round trip")
	}
}

func TestReadFrameTruncated(t *testing.T) {
	// Declares a length longer than what actually follows.
	lenBuf := wire.NewWriter()
	_ = lenBuf.WriteVarInt(10)
	r := bytes.NewReader(append(lenBuf.Bytes(), []byte("abc")...))

	_, err := frame.ReadFrame(r, -1)
	if !errors.Is(err, frame.ErrTruncatedFrame) {
		t.Errorf("err = %v, want ErrTruncatedFrame", err)
	}
}

func TestReadFrameTooLarge(t *testing.T) {
	lenBuf := wire.NewWriter()
	_ = lenBuf.WriteVarInt(wire.VarInt(frame.MaxFrameLength + 1))
	r := io.MultiReader(bytes.NewReader(lenBuf.Bytes()))

	_, err := frame.ReadFrame(r, -1)
	if !errors.Is(err, frame.ErrFrameTooLarge) {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestReadFrameDecompressedSizeMismatch(t *testing.T) {
	// Build a compressed frame by hand, then lie about the uncompressed
	// length so the inflate output won't match it.
	f := frame.Frame{ID: 0x03, Payload: bytes.Repeat([]byte("y"), 512)}
	var buf bytes.Buffer
	if err := frame.WriteFrame(&buf, f, 8); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	raw := buf.Bytes()
	rb := wire.NewReader(raw)
	frameLen, _ := rb.ReadVarInt()
	_, _ = rb.ReadVarInt() // original (correct) uncompressed-length marker

	lenBuf := wire.NewWriter()
	_ = lenBuf.WriteVarInt(frameLen)
	body := rb.Remaining()

	// Splice in a bogus declared length (1 byte, so the frame length stays
	// representable) ahead of the same compressed bytes.
	bogus := wire.NewWriter()
	_ = bogus.WriteVarInt(1)
	newBody := append(bogus.Bytes(), body...)
	newLenBuf := wire.NewWriter()
	_ = newLenBuf.WriteVarInt(wire.VarInt(len(newBody)))

	corrupted := append(newLenBuf.Bytes(), newBody...)

	_, err := frame.ReadFrame(bytes.NewReader(corrupted), 8)
	if !errors.Is(err, frame.ErrDecompressedSizeMismatch) {
		t.Errorf("err = %v, want ErrDecompressedSizeMismatch", err)
	}
}
