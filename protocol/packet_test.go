package protocol_test

import (
	"bytes"
	"testing"

	"github.com/go-mclib/mcserver/nbt"
	"github.com/go-mclib/mcserver/protocol"
	"github.com/go-mclib/mcserver/wire"
	"github.com/google/uuid"
)

func TestHandshakeRoundTrip(t *testing.T) {
	want := &protocol.C2SHandshake{
		ProtocolVersion: 771,
		ServerHost:      "localhost",
		ServerPort:      25565,
		NextState:       protocol.NextStateLogin,
	}
	data, err := protocol.Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := protocol.Decode(protocol.PhaseHandshaking, protocol.C2S, 0x00, data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	hs, ok := got.(*protocol.C2SHandshake)
	if !ok {
		t.Fatalf("Decode() returned %T, want *C2SHandshake", got)
	}
	if *hs != *want {
		t.Errorf("got %+v, want %+v", *hs, *want)
	}
}

func TestHandshakeUnknownPacket(t *testing.T) {
	_, err := protocol.Decode(protocol.PhaseHandshaking, protocol.C2S, 0x7F, nil)
	if err == nil {
		t.Fatal("Decode() should fail for an unregistered packet ID")
	}
}

func TestLoginStartRoundTrip(t *testing.T) {
	want := &protocol.C2SLoginStart{Username: "Notch"}
	buf := wire.NewWriter()
	if err := want.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := &protocol.C2SLoginStart{}
	if err := got.Read(wire.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Username != want.Username {
		t.Errorf("Username = %q, want %q", got.Username, want.Username)
	}
}

func TestLoginSuccessEncode(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	pkt := &protocol.S2CLoginSuccess{UUID: id, Username: "Notch"}

	data, err := protocol.Encode(pkt)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded := &protocol.S2CLoginSuccess{}
	if err := decoded.Read(wire.NewReader(data)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if decoded.UUID != id || decoded.Username != "Notch" {
		t.Errorf("got %+v, want uuid=%s username=Notch", decoded, id)
	}
}

func TestKeepAliveDirectionsAreDistinctTypes(t *testing.T) {
	c2s := &protocol.C2SKeepAlive{KeepAliveID: 42}
	s2c := &protocol.S2CKeepAlive{KeepAliveID: 42}

	if c2s.ID() != 0x10 {
		t.Errorf("C2SKeepAlive.ID() = %#x, want 0x10", c2s.ID())
	}
	if s2c.ID() != 0x23 {
		t.Errorf("S2CKeepAlive.ID() = %#x, want 0x23", s2c.ID())
	}
}

func TestPlayerPositionAndLookDirectionsDiffer(t *testing.T) {
	c2s := &protocol.C2SPlayerPositionAndLook{X: 1, FeetY: 2, Z: 3, Yaw: 4, Pitch: 5, OnGround: true}
	s2c := &protocol.S2CPlayerPositionAndLook{X: 1, Y: 2, Z: 3, Yaw: 4, Pitch: 5, Flags: 0, TeleportID: 7}

	if c2s.ID() == s2c.ID() && c2s.Bound() == s2c.Bound() {
		t.Fatal("serverbound and clientbound PlayerPositionAndLook must not collide")
	}
}

func TestSetCompressionRoundTrip(t *testing.T) {
	want := &protocol.S2CSetCompression{Threshold: 256}
	buf := wire.NewWriter()
	if err := want.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got := &protocol.S2CSetCompression{}
	if err := got.Read(wire.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Threshold != want.Threshold {
		t.Errorf("Threshold = %d, want %d", got.Threshold, want.Threshold)
	}
}

func TestJoinGameRoundTrip(t *testing.T) {
	want := &protocol.S2CJoinGame{
		EntityID:           1,
		IsHardcore:         false,
		Gamemode:           0,
		PreviousGamemode:   -1,
		DimensionNames:     []string{"minecraft:overworld"},
		RegistryCodec:      nbt.CompoundOf(nbt.CompoundEntry{Name: "minecraft:dimension_type", Tag: nbt.CompoundOf()}),
		DimensionType:      "minecraft:overworld",
		DimensionName:      "minecraft:overworld",
		HashedSeed:         0,
		MaxPlayers:         20,
		ViewDistance:       10,
		SimulationDistance: 10,
		ReducedDebugInfo:   false,
		RespawnScreen:      true,
		IsDebug:            false,
		IsFlat:             false,
		HasDeathLocation:   true,
		DeathLocation:      protocol.DeathLocation{Dimension: "minecraft:overworld", Position: wire.Position{X: 1, Y: 2, Z: 3}},
		PortalCooldown:     0,
	}

	data, err := protocol.Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got := &protocol.S2CJoinGame{}
	if err := got.Read(wire.NewReader(data)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.EntityID != want.EntityID || got.DimensionType != want.DimensionType ||
		len(got.DimensionNames) != 1 || got.DimensionNames[0] != "minecraft:overworld" {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.HasDeathLocation || got.DeathLocation != want.DeathLocation {
		t.Errorf("death location = %+v, want %+v", got.DeathLocation, want.DeathLocation)
	}
	if got.RegistryCodec.(nbt.Compound).Len() != 1 {
		t.Errorf("registry codec compound length = %d, want 1", got.RegistryCodec.(nbt.Compound).Len())
	}
}

func TestChunkDataRoundTrip(t *testing.T) {
	want := &protocol.S2CChunkData{
		ChunkX:     3,
		ChunkZ:     -4,
		Heightmaps: nbt.CompoundOf(nbt.CompoundEntry{Name: "MOTION_BLOCKING", Tag: nbt.LongArray{1, 2, 3}}),
		Data:       []byte{0xDE, 0xAD, 0xBE, 0xEF},
		BlockEntities: []nbt.Tag{
			nbt.CompoundOf(nbt.CompoundEntry{Name: "id", Tag: nbt.String("minecraft:chest")}),
		},
		TrustEdges:     true,
		SkyLightMask:   wire.BitSet{Data: []uint64{0x1}},
		BlockLightMask: wire.BitSet{Data: []uint64{0x2}},
		EmptySkyMask:   wire.BitSet{},
		EmptyBlockMask: wire.BitSet{},
		LightArrays:    [][]byte{bytes.Repeat([]byte{0xFF}, 2048)},
	}

	data, err := protocol.Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got := &protocol.S2CChunkData{}
	if err := got.Read(wire.NewReader(data)); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.ChunkX != want.ChunkX || got.ChunkZ != want.ChunkZ {
		t.Errorf("chunk coords = (%d,%d), want (%d,%d)", got.ChunkX, got.ChunkZ, want.ChunkX, want.ChunkZ)
	}
	if !bytes.Equal(got.Data, want.Data) {
		t.Errorf("column data mismatch")
	}
	if len(got.BlockEntities) != 1 {
		t.Fatalf("block entity count = %d, want 1", len(got.BlockEntities))
	}
	if got.BlockEntities[0].(nbt.Compound).GetString("id") != "minecraft:chest" {
		t.Errorf("block entity id mismatch")
	}
	if !got.TrustEdges {
		t.Error("TrustEdges = false, want true")
	}
	if len(got.LightArrays) != 1 || len(got.LightArrays[0]) != 2048 {
		t.Errorf("light arrays = %+v, want one 2048-byte array", got.LightArrays)
	}
}

func TestClientSettingsViewDistanceField(t *testing.T) {
	want := &protocol.C2SClientSettings{
		Locale:               "en_us",
		ViewDistance:         10,
		ChatMode:             0,
		ChatColors:           true,
		DisplayedSkinParts:   0x7f,
		MainHand:             1,
		TextFilteringEnabled: true,
	}
	buf := wire.NewWriter()
	if err := want.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := &protocol.C2SClientSettings{}
	if err := got.Read(wire.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", *got, *want)
	}
}

func TestPlayerInfoAddAndRemove(t *testing.T) {
	id := uuid.New()
	add := &protocol.S2CPlayerInfo{
		Action: protocol.PlayerInfoAddPlayer,
		Records: []protocol.PlayerInfoRecord{
			{UUID: id, Name: "Notch", GameMode: 0, Ping: 20},
		},
	}
	data, err := protocol.Encode(add)
	if err != nil {
		t.Fatalf("Encode(add) error = %v", err)
	}
	got := &protocol.S2CPlayerInfo{}
	if err := got.Read(wire.NewReader(data)); err != nil {
		t.Fatalf("Read(add) error = %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].UUID != id || got.Records[0].Name != "Notch" {
		t.Errorf("got %+v", got)
	}

	remove := &protocol.S2CPlayerInfo{
		Action:  protocol.PlayerInfoRemovePlayer,
		Records: []protocol.PlayerInfoRecord{{UUID: id}},
	}
	data, err = protocol.Encode(remove)
	if err != nil {
		t.Fatalf("Encode(remove) error = %v", err)
	}
	got = &protocol.S2CPlayerInfo{}
	if err := got.Read(wire.NewReader(data)); err != nil {
		t.Fatalf("Read(remove) error = %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].UUID != id {
		t.Errorf("got %+v", got)
	}
}
