package wire

// Angle is a rotation angle stored as a single byte: 256 units per full turn.
type Angle uint8

// WriteAngle writes a rotation angle.
func (b *Buffer) WriteAngle(a Angle) error { return b.WriteByte(byte(a)) }

// ReadAngle reads a rotation angle.
func (b *Buffer) ReadAngle() (Angle, error) {
	v, err := b.ReadByte()
	return Angle(v), err
}
