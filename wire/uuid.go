package wire

import "github.com/google/uuid"

// WriteUUID writes the 16 raw bytes of a UUID (two big-endian 64-bit halves,
// which is exactly how google/uuid.UUID already stores its bytes).
func (b *Buffer) WriteUUID(v uuid.UUID) error {
	_, err := b.Write(v[:])
	return err
}

// ReadUUID reads 16 bytes into a UUID.
func (b *Buffer) ReadUUID() (uuid.UUID, error) {
	data, err := b.ReadBytes(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var u uuid.UUID
	copy(u[:], data)
	return u, nil
}
