// Package region reads the 8 KiB header of a Minecraft Anvil (.mca) region
// file: the chunk location table and the chunk timestamp table. It is an
// external collaborator's format reader, not something the core play loop
// depends on — the server synthesizes chunk data itself (see chunkgen)
// rather than reading it from disk.
//
// Grounded on original_source/pystom/MinecraftType/region.py's Region class:
// same 8192-byte minimum, same 3-byte-offset + 1-byte-count location entry
// layout, same z*32+x chunk index.
package region

import (
	"encoding/binary"
	"fmt"
	"time"
)

const headerSize = 8192

// ErrHeaderTooShort is returned when fewer than 8192 bytes are given to Parse.
var ErrHeaderTooShort = fmt.Errorf("region: header shorter than %d bytes", headerSize)

// ErrChunkCoordOutOfRange is returned when a chunk coordinate given to
// ChunkLocation/Timestamp/Generated falls outside [0, 32).
var ErrChunkCoordOutOfRange = fmt.Errorf("region: chunk coordinate out of range [0, 32)")

// ChunkLocation is one entry of the region file's 1024-entry location table:
// where a chunk's data sectors start, and how many 4 KiB sectors it spans.
// SectorOffset == 0 means the chunk has not been generated.
type ChunkLocation struct {
	SectorOffset uint32
	SectorCount  uint8
}

// Header holds the parsed contents of a region file's 8 KiB header: the
// chunk location table and the chunk timestamp table, both indexed by
// z*32+x.
type Header struct {
	Locations  [1024]ChunkLocation
	Timestamps [1024]uint32 // Unix seconds; 0 means absent.
}

// Parse reads a region file's header from the first 8192 bytes of data.
// Any bytes past the header (the actual chunk sector data) are ignored.
func Parse(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, ErrHeaderTooShort
	}

	var h Header
	for i := 0; i < 1024; i++ {
		entry := data[i*4 : i*4+4]
		h.Locations[i] = ChunkLocation{
			SectorOffset: uint32(entry[0])<<16 | uint32(entry[1])<<8 | uint32(entry[2]),
			SectorCount:  entry[3],
		}
	}
	for i := 0; i < 1024; i++ {
		start := 4096 + i*4
		h.Timestamps[i] = binary.BigEndian.Uint32(data[start : start+4])
	}
	return &h, nil
}

// chunkIndex converts in-region chunk coordinates to the header tables'
// flat index.
func chunkIndex(x, z int) (int, error) {
	if x < 0 || x >= 32 || z < 0 || z >= 32 {
		return 0, ErrChunkCoordOutOfRange
	}
	return z*32 + x, nil
}

// ChunkLocation returns the sector offset/count for chunk (x, z), where x
// and z are coordinates within the region (0-31).
func (h *Header) ChunkLocation(x, z int) (ChunkLocation, error) {
	idx, err := chunkIndex(x, z)
	if err != nil {
		return ChunkLocation{}, err
	}
	return h.Locations[idx], nil
}

// Timestamp returns the last-modified time for chunk (x, z), or the zero
// Time if the chunk has never been saved (a timestamp of 0).
func (h *Header) Timestamp(x, z int) (time.Time, error) {
	idx, err := chunkIndex(x, z)
	if err != nil {
		return time.Time{}, err
	}
	ts := h.Timestamps[idx]
	if ts == 0 {
		return time.Time{}, nil
	}
	return time.Unix(int64(ts), 0).UTC(), nil
}

// Generated reports whether chunk (x, z) has ever been written to this
// region file.
func (h *Header) Generated(x, z int) (bool, error) {
	loc, err := h.ChunkLocation(x, z)
	if err != nil {
		return false, err
	}
	return loc.SectorOffset != 0, nil
}
