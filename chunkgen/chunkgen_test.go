package chunkgen_test

import (
	"testing"

	"github.com/go-mclib/mcserver/chunkgen"
	"github.com/go-mclib/mcserver/nbt"
	"github.com/go-mclib/mcserver/wire"
)

func TestEmptyGeneratorColumnDecodesAllSections(t *testing.T) {
	data, heightmaps, err := chunkgen.EmptyGenerator{}.Column(0, 0)
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}

	buf := wire.NewReader(data)
	for i := 0; i < chunkgen.SectionCount; i++ {
		blockCount, err := buf.ReadInt16()
		if err != nil {
			t.Fatalf("section %d: ReadInt16() error = %v", i, err)
		}
		if blockCount != 0 {
			t.Errorf("section %d: block count = %d, want 0", i, blockCount)
		}

		blockPaletteLen, err := buf.ReadVarInt()
		if err != nil || blockPaletteLen != 1 {
			t.Fatalf("section %d: block palette len = %d, err = %v, want 1", i, blockPaletteLen, err)
		}
		blockValue, err := buf.ReadVarInt()
		if err != nil || blockValue != chunkgen.AirBlockStateID {
			t.Fatalf("section %d: block palette value = %d, err = %v, want %d", i, blockValue, err, chunkgen.AirBlockStateID)
		}
		blockDataLen, err := buf.ReadVarInt()
		if err != nil || blockDataLen != 0 {
			t.Fatalf("section %d: block data len = %d, err = %v, want 0", i, blockDataLen, err)
		}

		biomePaletteLen, err := buf.ReadVarInt()
		if err != nil || biomePaletteLen != 1 {
			t.Fatalf("section %d: biome palette len = %d, err = %v, want 1", i, biomePaletteLen, err)
		}
		biomeValue, err := buf.ReadVarInt()
		if err != nil || biomeValue != chunkgen.PlainsBiomeID {
			t.Fatalf("section %d: biome palette value = %d, err = %v, want %d", i, biomeValue, err, chunkgen.PlainsBiomeID)
		}
		biomeDataLen, err := buf.ReadVarInt()
		if err != nil || biomeDataLen != 0 {
			t.Fatalf("section %d: biome data len = %d, err = %v, want 0", i, biomeDataLen, err)
		}
	}

	if left := len(buf.Remaining()); left != 0 {
		t.Errorf("trailing bytes after %d sections: %d", chunkgen.SectionCount, left)
	}

	compound, ok := heightmaps.(nbt.Compound)
	if !ok {
		t.Fatalf("heightmaps type = %T, want nbt.Compound", heightmaps)
	}
	for _, key := range []string{"MOTION_BLOCKING", "WORLD_SURFACE"} {
		if compound.Get(key) == nil {
			t.Fatalf("heightmap missing key %q", key)
		}
		arr := compound.GetLongArray(key)
		if len(arr) != 37 {
			t.Errorf("heightmap[%q] length = %d, want 37", key, len(arr))
		}
	}
}

func TestColumnIsDeterministic(t *testing.T) {
	a, _, err := chunkgen.EmptyGenerator{}.Column(3, -2)
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	b, _, err := chunkgen.EmptyGenerator{}.Column(3, -2)
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}
