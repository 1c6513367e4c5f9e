package wire

import (
	"fmt"
	"unicode/utf8"
)

// ErrNegativeLength is returned when a VarInt length prefix decodes to a
// negative value.
var ErrNegativeLength = fmt.Errorf("wire: negative length prefix")

// ErrInvalidUTF8 is returned when string bytes are not well-formed UTF-8.
var ErrInvalidUTF8 = fmt.Errorf("wire: invalid UTF-8")

// ErrStringTooLong is returned when a decoded string exceeds the caller's
// maxLen (in runes).
var ErrStringTooLong = fmt.Errorf("wire: string exceeds maximum length")

// maxStringBytes bounds the byte length we're willing to allocate for a
// string before even checking its rune count, guarding against a hostile
// length prefix.
const maxStringBytes = 1 << 20

// WriteString writes a VarInt length prefix (byte count) followed by the
// UTF-8 bytes of s.
func (b *Buffer) WriteString(s string) error {
	data := []byte(s)
	if err := b.WriteVarInt(VarInt(len(data))); err != nil {
		return fmt.Errorf("write string length: %w", err)
	}
	_, err := b.Write(data)
	return err
}

// ReadString reads a VarInt length-prefixed UTF-8 string. maxLen bounds the
// rune count (0 means unbounded).
func (b *Buffer) ReadString(maxLen int) (string, error) {
	length, err := b.ReadVarInt()
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if length < 0 {
		return "", ErrNegativeLength
	}
	if int(length) > maxStringBytes {
		return "", ErrStringTooLong
	}

	data, err := b.ReadBytes(int(length))
	if err != nil {
		return "", fmt.Errorf("read string data: %w", err)
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}

	s := string(data)
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return "", ErrStringTooLong
	}
	return s, nil
}

// WriteByteArray writes a VarInt length prefix followed by the raw bytes.
func (b *Buffer) WriteByteArray(v []byte) error {
	if err := b.WriteVarInt(VarInt(len(v))); err != nil {
		return fmt.Errorf("write byte array length: %w", err)
	}
	_, err := b.Write(v)
	return err
}

// ReadByteArray reads a VarInt length-prefixed byte array. maxLen bounds the
// byte count (0 means unbounded).
func (b *Buffer) ReadByteArray(maxLen int) ([]byte, error) {
	length, err := b.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("read byte array length: %w", err)
	}
	if length < 0 {
		return nil, ErrNegativeLength
	}
	if maxLen > 0 && int(length) > maxLen {
		return nil, ErrStringTooLong
	}
	return b.ReadBytes(int(length))
}
