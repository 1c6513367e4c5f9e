package wire

import "fmt"

// ErrVarIntTooBig is returned when a VarInt's continuation bits extend past
// the 5-byte limit for a 32-bit value.
var ErrVarIntTooBig = fmt.Errorf("wire: VarInt is too big")

// ErrVarLongTooBig is the VarLong analogue of ErrVarIntTooBig (10-byte limit).
var ErrVarLongTooBig = fmt.Errorf("wire: VarLong is too big")

// VarInt is a variable-length signed 32-bit integer: 7 payload bits per byte,
// little-endian groups, continuation bit 0x80, at most 5 bytes.
type VarInt int32

// WriteVarInt encodes v and appends it to the buffer.
func (b *Buffer) WriteVarInt(v VarInt) error {
	value := uint32(v)
	for {
		if value&^uint32(0x7F) == 0 {
			return b.WriteByte(byte(value))
		}
		if err := b.WriteByte(byte(value&0x7F) | 0x80); err != nil {
			return err
		}
		value >>= 7
	}
}

// ReadVarInt decodes a VarInt starting at the buffer's current offset and
// advances the offset by exactly the number of bytes the value occupies —
// it never pre-scans the remainder of the buffer (see DESIGN.md for the bug
// in the original source this corrects).
func (b *Buffer) ReadVarInt() (VarInt, error) {
	var value int32
	var position uint
	for {
		bt, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= int32(bt&0x7F) << position
		if bt&0x80 == 0 {
			break
		}
		position += 7
		if position >= 35 {
			return 0, ErrVarIntTooBig
		}
	}
	return VarInt(value), nil
}

// Len returns the number of bytes needed to encode v.
func (v VarInt) Len() int {
	value := uint32(v)
	switch {
	case value < 1<<7:
		return 1
	case value < 1<<14:
		return 2
	case value < 1<<21:
		return 3
	case value < 1<<28:
		return 4
	default:
		return 5
	}
}

// ToBytes encodes v to a standalone byte slice.
func (v VarInt) ToBytes() []byte {
	w := NewWriter()
	_ = w.WriteVarInt(v)
	return w.Bytes()
}

// VarLong is the 64-bit analogue of VarInt, at most 10 bytes.
type VarLong int64

// WriteVarLong encodes v and appends it to the buffer.
func (b *Buffer) WriteVarLong(v VarLong) error {
	value := uint64(v)
	for {
		if value&^uint64(0x7F) == 0 {
			return b.WriteByte(byte(value))
		}
		if err := b.WriteByte(byte(value&0x7F) | 0x80); err != nil {
			return err
		}
		value >>= 7
	}
}

// ReadVarLong decodes a VarLong at the current offset.
func (b *Buffer) ReadVarLong() (VarLong, error) {
	var value int64
	var position uint
	for {
		bt, err := b.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= int64(bt&0x7F) << position
		if bt&0x80 == 0 {
			break
		}
		position += 7
		if position >= 70 {
			return 0, ErrVarLongTooBig
		}
	}
	return VarLong(value), nil
}
