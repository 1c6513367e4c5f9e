package wire

import "fmt"

// BitSet is a VarInt length-prefixed set of 64-bit words, used by ChunkData
// for the sky/block light masks.
type BitSet struct {
	Data []uint64
}

// WriteBitSet writes a VarInt word count followed by each word, big-endian.
func (b *Buffer) WriteBitSet(s BitSet) error {
	if err := b.WriteVarInt(VarInt(len(s.Data))); err != nil {
		return fmt.Errorf("write bitset length: %w", err)
	}
	for _, word := range s.Data {
		if err := b.WriteInt64(int64(word)); err != nil {
			return fmt.Errorf("write bitset word: %w", err)
		}
	}
	return nil
}

// ReadBitSet reads a VarInt-prefixed set of 64-bit words.
func (b *Buffer) ReadBitSet() (BitSet, error) {
	length, err := b.ReadVarInt()
	if err != nil {
		return BitSet{}, fmt.Errorf("read bitset length: %w", err)
	}
	if length < 0 {
		return BitSet{}, ErrNegativeLength
	}
	data := make([]uint64, length)
	for i := range data {
		v, err := b.ReadInt64()
		if err != nil {
			return BitSet{}, fmt.Errorf("read bitset word %d: %w", i, err)
		}
		data[i] = uint64(v)
	}
	return BitSet{Data: data}, nil
}
