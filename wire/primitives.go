package wire

import (
	"encoding/binary"
	"math"
)

// All multi-byte fixed-width integers and floats are big-endian; the
// signed/unsigned choice is per field and carried by the caller's Go type,
// not by the wire encoding, which is identical either way.

// WriteBool writes a single boolean byte (0x00/0x01).
func (b *Buffer) WriteBool(v bool) error {
	if v {
		return b.WriteByte(0x01)
	}
	return b.WriteByte(0x00)
}

// ReadBool reads a single boolean byte.
func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadByte()
	return v != 0, err
}

// WriteInt8 writes a signed 8-bit integer.
func (b *Buffer) WriteInt8(v int8) error { return b.WriteByte(byte(v)) }

// ReadInt8 reads a signed 8-bit integer.
func (b *Buffer) ReadInt8() (int8, error) {
	v, err := b.ReadByte()
	return int8(v), err
}

// WriteUint8 writes an unsigned 8-bit integer.
func (b *Buffer) WriteUint8(v uint8) error { return b.WriteByte(v) }

// ReadUint8 reads an unsigned 8-bit integer.
func (b *Buffer) ReadUint8() (uint8, error) { return b.ReadByte() }

// WriteInt16 writes a big-endian signed 16-bit integer.
func (b *Buffer) WriteInt16(v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	_, err := b.Write(buf[:])
	return err
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (b *Buffer) ReadInt16() (int16, error) {
	buf, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf)), nil
}

// WriteUint16 writes a big-endian unsigned 16-bit integer.
func (b *Buffer) WriteUint16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := b.Write(buf[:])
	return err
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (b *Buffer) ReadUint16() (uint16, error) {
	buf, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func (b *Buffer) WriteInt32(v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := b.Write(buf[:])
	return err
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (b *Buffer) ReadInt32() (int32, error) {
	buf, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf)), nil
}

// WriteInt64 writes a big-endian signed 64-bit integer.
func (b *Buffer) WriteInt64(v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := b.Write(buf[:])
	return err
}

// ReadInt64 reads a big-endian signed 64-bit integer.
func (b *Buffer) ReadInt64() (int64, error) {
	buf, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf)), nil
}

// WriteFloat32 writes a big-endian IEEE-754 single-precision float.
func (b *Buffer) WriteFloat32(v float32) error {
	return b.WriteInt32(int32(math.Float32bits(v)))
}

// ReadFloat32 reads a big-endian IEEE-754 single-precision float.
func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadInt32()
	return math.Float32frombits(uint32(v)), err
}

// WriteFloat64 writes a big-endian IEEE-754 double-precision float.
func (b *Buffer) WriteFloat64(v float64) error {
	return b.WriteInt64(int64(math.Float64bits(v)))
}

// ReadFloat64 reads a big-endian IEEE-754 double-precision float.
func (b *Buffer) ReadFloat64() (float64, error) {
	v, err := b.ReadInt64()
	return math.Float64frombits(uint64(v)), err
}
