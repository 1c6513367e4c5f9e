// Package chunkgen produces the chunk column data and heightmaps the play
// session driver needs for its join-game ChunkData packet. It is a black-box
// interface: Generator can be swapped for a real world generator later
// without touching the protocol or play packages.
//
// The section layout is grounded on original_source's
// pystom/utils/chunk.py (create_simple_chunk_data): per section a non-air
// block count, a single-valued block-state palette, and a single-valued
// biome palette. Unlike that source, the column data here has no leading
// section count (it is exactly SectionCount sections back to back), and
// per-section
// light masks are NOT embedded in the column data here — this server's
// S2CChunkData packet (protocol.S2CChunkData) carries the sky/block light
// bitsets as top-level packet fields per the registry's documented layout,
// so folding them into column data a second time would duplicate state the
// packet already carries.
package chunkgen

import (
	"github.com/go-mclib/mcserver/nbt"
	"github.com/go-mclib/mcserver/wire"
)

// SectionCount is the number of 16x16x16 sections in a column, covering
// world Y from -64 to 320.
const SectionCount = 24

// AirBlockStateID is the global block-state ID for minecraft:air, the only
// block a synthesized empty column ever contains.
const AirBlockStateID = 0

// PlainsBiomeID is the global biome ID used for every cell of a synthesized
// column.
const PlainsBiomeID = 1

// Generator produces chunk columns. The server's play session driver only
// ever asks for (0, 0); a real world generator would implement this
// interface to serve arbitrary coordinates.
type Generator interface {
	// Column returns the encoded section data and heightmap compound for
	// chunk (chunkX, chunkZ).
	Column(chunkX, chunkZ int32) (data []byte, heightmaps nbt.Tag, err error)
}

// EmptyGenerator synthesizes an all-air column with a single biome and a
// flat heightmap, as SPEC_FULL.md's play session driver emits for every
// connecting client's spawn chunk.
type EmptyGenerator struct{}

// Column implements Generator by building SectionCount all-air sections and
// a heightmap pinned to SurfaceY for every cell.
func (EmptyGenerator) Column(chunkX, chunkZ int32) ([]byte, nbt.Tag, error) {
	data, err := encodeEmptyColumn()
	if err != nil {
		return nil, nil, err
	}
	return data, flatHeightmaps(SurfaceY), nil
}

// SurfaceY is the Y level the synthesized heightmap reports for every
// column cell, even though the column itself is entirely air.
const SurfaceY = 64

func encodeEmptyColumn() ([]byte, error) {
	buf := wire.NewWriter()
	for i := 0; i < SectionCount; i++ {
		if err := encodeEmptySection(buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// encodeEmptySection writes one section's worth of paletted-container data:
// a zero non-air block count, a single-entry block palette (air) with no
// backing data array, and a single-entry biome palette with no backing data
// array.
func encodeEmptySection(buf *wire.Buffer) error {
	if err := buf.WriteInt16(0); err != nil { // non-air block count
		return err
	}
	if err := writeSingleValuePalette(buf, AirBlockStateID); err != nil {
		return err
	}
	return writeSingleValuePalette(buf, PlainsBiomeID)
}

// writeSingleValuePalette writes a paletted container holding exactly one
// distinct value: palette length 1, the value itself, and a zero-length
// backing data array (every cell implicitly is that one value).
func writeSingleValuePalette(buf *wire.Buffer, value wire.VarInt) error {
	if err := buf.WriteVarInt(1); err != nil {
		return err
	}
	if err := buf.WriteVarInt(value); err != nil {
		return err
	}
	return buf.WriteVarInt(0)
}

// longsFor37 packs a 16x16 height grid (256 values, 9 bits each) into the 37
// longs MOTION_BLOCKING/WORLD_SURFACE require, every cell set to the same
// height.
func longsFor37(height int64) []int64 {
	const bitsPerEntry = 9
	const entriesPerLong = 64 / bitsPerEntry // 7
	const totalEntries = 256
	const longCount = 37 // ceil(256/7)

	longs := make([]int64, longCount)
	for i := 0; i < totalEntries; i++ {
		longIdx := i / entriesPerLong
		bitOffset := uint((i % entriesPerLong) * bitsPerEntry)
		longs[longIdx] |= height << bitOffset
	}
	return longs
}

func flatHeightmaps(height int) nbt.Tag {
	longs := longsFor37(int64(height))
	return nbt.CompoundOf(
		nbt.CompoundEntry{Name: "MOTION_BLOCKING", Tag: nbt.LongArray(longs)},
		nbt.CompoundEntry{Name: "WORLD_SURFACE", Tag: nbt.LongArray(longs)},
	)
}
