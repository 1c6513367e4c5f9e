package protocol

import (
	"bytes"
	"fmt"

	"github.com/go-mclib/mcserver/nbt"
	"github.com/go-mclib/mcserver/wire"
	"github.com/google/uuid"
)

// readNBTTag reads one self-delimiting NBT tag directly off buf's unread
// tail: wire.Buffer has no streaming io.Reader of its own, so the tag is
// decoded from a bytes.Reader over the remaining bytes and buf's cursor is
// advanced by exactly what that decode consumed.
func readNBTTag(buf *wire.Buffer, network bool) (nbt.Tag, error) {
	remaining := buf.Remaining()
	br := bytes.NewReader(remaining)
	tag, _, err := nbt.NewReaderFrom(br).ReadTag(network)
	if err != nil {
		return nil, err
	}
	consumed := len(remaining) - br.Len()
	if _, err := buf.ReadBytes(consumed); err != nil {
		return nil, err
	}
	return tag, nil
}

// S2CPluginMessage carries a raw payload on a named channel. The server only
// emits these; Read decodes the channel and takes the rest as Data.
type S2CPluginMessage struct {
	Channel string
	Data    []byte
}

func (S2CPluginMessage) ID() wire.VarInt { return 0x19 }
func (S2CPluginMessage) Phase() Phase    { return PhasePlay }
func (S2CPluginMessage) Bound() Bound    { return S2C }

func (p *S2CPluginMessage) Read(buf *wire.Buffer) error {
	ch, err := buf.ReadString(20000)
	if err != nil {
		return err
	}
	p.Channel = ch
	p.Data = buf.Remaining()
	return nil
}

func (p *S2CPluginMessage) Write(buf *wire.Buffer) error {
	if err := buf.WriteString(p.Channel); err != nil {
		return err
	}
	_, err := buf.Write(p.Data)
	return err
}

// ChunkSection is one 16x16x16 column slice as opaque encoded block and
// biome data; chunkgen is responsible for producing it in the right shape.
type ChunkSection struct {
	Data []byte
}

// S2CChunkData sends one chunk column. Heightmaps is the network-format NBT
// compound holding the MOTION_BLOCKING/WORLD_SURFACE long arrays; Data is
// the concatenation of the column's section payloads; BlockEntities is one
// network-format NBT compound per block entity.
type S2CChunkData struct {
	ChunkX, ChunkZ int32
	Heightmaps     nbt.Tag
	Data           []byte
	BlockEntities  []nbt.Tag
	TrustEdges     bool
	SkyLightMask   wire.BitSet
	BlockLightMask wire.BitSet
	EmptySkyMask   wire.BitSet
	EmptyBlockMask wire.BitSet
	LightArrays    [][]byte
}

func (S2CChunkData) ID() wire.VarInt { return 0x22 }
func (S2CChunkData) Phase() Phase    { return PhasePlay }
func (S2CChunkData) Bound() Bound    { return S2C }

func (p *S2CChunkData) Read(buf *wire.Buffer) error {
	var err error
	if p.ChunkX, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.ChunkZ, err = buf.ReadInt32(); err != nil {
		return err
	}

	nbtLen, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("chunk data: heightmaps length: %w", err)
	}
	nbtBytes, err := buf.ReadBytes(int(nbtLen))
	if err != nil {
		return fmt.Errorf("chunk data: heightmaps bytes: %w", err)
	}
	tag, _, err := nbt.NewReader(nbtBytes).ReadTag(true)
	if err != nil {
		return fmt.Errorf("chunk data: heightmaps nbt: %w", err)
	}
	p.Heightmaps = tag

	if p.Data, err = buf.ReadByteArray(0); err != nil {
		return fmt.Errorf("chunk data: column data: %w", err)
	}

	count, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("chunk data: block entity count: %w", err)
	}
	p.BlockEntities = make([]nbt.Tag, count)
	for i := range p.BlockEntities {
		beTag, err := readNBTTag(buf, true)
		if err != nil {
			return fmt.Errorf("chunk data: block entity %d: %w", i, err)
		}
		p.BlockEntities[i] = beTag
	}

	if p.TrustEdges, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.SkyLightMask, err = buf.ReadBitSet(); err != nil {
		return err
	}
	if p.BlockLightMask, err = buf.ReadBitSet(); err != nil {
		return err
	}
	if p.EmptySkyMask, err = buf.ReadBitSet(); err != nil {
		return err
	}
	if p.EmptyBlockMask, err = buf.ReadBitSet(); err != nil {
		return err
	}

	arrayCount, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("chunk data: light array count: %w", err)
	}
	p.LightArrays = make([][]byte, arrayCount)
	for i := range p.LightArrays {
		arr, err := buf.ReadByteArray(2048)
		if err != nil {
			return fmt.Errorf("chunk data: light array %d: %w", i, err)
		}
		p.LightArrays[i] = arr
	}
	return nil
}

func (p *S2CChunkData) Write(buf *wire.Buffer) error {
	if err := buf.WriteInt32(p.ChunkX); err != nil {
		return err
	}
	if err := buf.WriteInt32(p.ChunkZ); err != nil {
		return err
	}

	hm, err := nbt.EncodeNetwork(p.Heightmaps)
	if err != nil {
		return fmt.Errorf("chunk data: encode heightmaps: %w", err)
	}
	if err := buf.WriteVarInt(wire.VarInt(len(hm))); err != nil {
		return err
	}
	if _, err := buf.Write(hm); err != nil {
		return err
	}

	if err := buf.WriteByteArray(p.Data); err != nil {
		return fmt.Errorf("chunk data: write column data: %w", err)
	}

	if err := buf.WriteVarInt(wire.VarInt(len(p.BlockEntities))); err != nil {
		return err
	}
	for i, be := range p.BlockEntities {
		enc, err := nbt.EncodeNetwork(be)
		if err != nil {
			return fmt.Errorf("chunk data: encode block entity %d: %w", i, err)
		}
		if _, err := buf.Write(enc); err != nil {
			return err
		}
	}

	if err := buf.WriteBool(p.TrustEdges); err != nil {
		return err
	}
	if err := buf.WriteBitSet(p.SkyLightMask); err != nil {
		return err
	}
	if err := buf.WriteBitSet(p.BlockLightMask); err != nil {
		return err
	}
	if err := buf.WriteBitSet(p.EmptySkyMask); err != nil {
		return err
	}
	if err := buf.WriteBitSet(p.EmptyBlockMask); err != nil {
		return err
	}

	if err := buf.WriteVarInt(wire.VarInt(len(p.LightArrays))); err != nil {
		return err
	}
	for i, arr := range p.LightArrays {
		if err := buf.WriteByteArray(arr); err != nil {
			return fmt.Errorf("chunk data: write light array %d: %w", i, err)
		}
	}
	return nil
}

// S2CKeepAlive is sent on a timer; the client must answer with a matching
// C2SKeepAlive within the session driver's timeout.
type S2CKeepAlive struct {
	KeepAliveID int64
}

func (S2CKeepAlive) ID() wire.VarInt { return 0x23 }
func (S2CKeepAlive) Phase() Phase    { return PhasePlay }
func (S2CKeepAlive) Bound() Bound    { return S2C }

func (p *S2CKeepAlive) Read(buf *wire.Buffer) error {
	v, err := buf.ReadInt64()
	p.KeepAliveID = v
	return err
}

func (p *S2CKeepAlive) Write(buf *wire.Buffer) error {
	return buf.WriteInt64(p.KeepAliveID)
}

// DeathLocation is present in S2CJoinGame only when HasDeathLocation is true.
type DeathLocation struct {
	Dimension string
	Position  wire.Position
}

// S2CJoinGame is the packet that opens the post-login play burst: it
// hands the client its entity ID, dimension set, registry codec, and the
// spawn dimension's details.
type S2CJoinGame struct {
	EntityID          int32
	IsHardcore        bool
	Gamemode          uint8
	PreviousGamemode  int8
	DimensionNames    []string
	RegistryCodec     nbt.Tag
	DimensionType     string
	DimensionName     string
	HashedSeed        int64
	MaxPlayers        wire.VarInt
	ViewDistance      wire.VarInt
	SimulationDistance wire.VarInt
	ReducedDebugInfo  bool
	RespawnScreen     bool
	IsDebug           bool
	IsFlat            bool
	HasDeathLocation  bool
	DeathLocation     DeathLocation
	PortalCooldown    wire.VarInt
}

func (S2CJoinGame) ID() wire.VarInt { return 0x28 }
func (S2CJoinGame) Phase() Phase    { return PhasePlay }
func (S2CJoinGame) Bound() Bound    { return S2C }

func (p *S2CJoinGame) Read(buf *wire.Buffer) error {
	var err error
	if p.EntityID, err = buf.ReadInt32(); err != nil {
		return err
	}
	if p.IsHardcore, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.Gamemode, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.PreviousGamemode, err = buf.ReadInt8(); err != nil {
		return err
	}

	count, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("join game: dimension count: %w", err)
	}
	p.DimensionNames = make([]string, count)
	for i := range p.DimensionNames {
		if p.DimensionNames[i], err = buf.ReadString(32767); err != nil {
			return fmt.Errorf("join game: dimension name %d: %w", i, err)
		}
	}

	tag, err := readNBTTag(buf, false)
	if err != nil {
		return fmt.Errorf("join game: registry codec: %w", err)
	}
	p.RegistryCodec = tag

	if p.DimensionType, err = buf.ReadString(32767); err != nil {
		return err
	}
	if p.DimensionName, err = buf.ReadString(32767); err != nil {
		return err
	}
	if p.HashedSeed, err = buf.ReadInt64(); err != nil {
		return err
	}
	if p.MaxPlayers, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ViewDistance, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.SimulationDistance, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ReducedDebugInfo, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.RespawnScreen, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.IsDebug, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.IsFlat, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.HasDeathLocation, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.HasDeathLocation {
		if p.DeathLocation.Dimension, err = buf.ReadString(32767); err != nil {
			return err
		}
		if p.DeathLocation.Position, err = buf.ReadPosition(); err != nil {
			return err
		}
	}
	p.PortalCooldown, err = buf.ReadVarInt()
	return err
}

func (p *S2CJoinGame) Write(buf *wire.Buffer) error {
	if err := buf.WriteInt32(p.EntityID); err != nil {
		return err
	}
	if err := buf.WriteBool(p.IsHardcore); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.Gamemode); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.PreviousGamemode); err != nil {
		return err
	}

	if err := buf.WriteVarInt(wire.VarInt(len(p.DimensionNames))); err != nil {
		return err
	}
	for _, name := range p.DimensionNames {
		if err := buf.WriteString(name); err != nil {
			return err
		}
	}

	// The registry codec is a named root tag with an empty name.
	enc, err := nbt.EncodeFile(p.RegistryCodec, "")
	if err != nil {
		return fmt.Errorf("join game: encode registry codec: %w", err)
	}
	if _, err := buf.Write(enc); err != nil {
		return err
	}

	if err := buf.WriteString(p.DimensionType); err != nil {
		return err
	}
	if err := buf.WriteString(p.DimensionName); err != nil {
		return err
	}
	if err := buf.WriteInt64(p.HashedSeed); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.MaxPlayers); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.SimulationDistance); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ReducedDebugInfo); err != nil {
		return err
	}
	if err := buf.WriteBool(p.RespawnScreen); err != nil {
		return err
	}
	if err := buf.WriteBool(p.IsDebug); err != nil {
		return err
	}
	if err := buf.WriteBool(p.IsFlat); err != nil {
		return err
	}
	if err := buf.WriteBool(p.HasDeathLocation); err != nil {
		return err
	}
	if p.HasDeathLocation {
		if err := buf.WriteString(p.DeathLocation.Dimension); err != nil {
			return err
		}
		if err := buf.WritePosition(p.DeathLocation.Position); err != nil {
			return err
		}
	}
	return buf.WriteVarInt(p.PortalCooldown)
}

// S2CPlayerAbilities reports flight/invulnerability flags and movement speeds.
type S2CPlayerAbilities struct {
	Flags        uint8
	FlyingSpeed  float32
	FOVModifier  float32
}

func (S2CPlayerAbilities) ID() wire.VarInt { return 0x32 }
func (S2CPlayerAbilities) Phase() Phase    { return PhasePlay }
func (S2CPlayerAbilities) Bound() Bound    { return S2C }

func (p *S2CPlayerAbilities) Read(buf *wire.Buffer) error {
	var err error
	if p.Flags, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.FlyingSpeed, err = buf.ReadFloat32(); err != nil {
		return err
	}
	p.FOVModifier, err = buf.ReadFloat32()
	return err
}

func (p *S2CPlayerAbilities) Write(buf *wire.Buffer) error {
	if err := buf.WriteUint8(p.Flags); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.FlyingSpeed); err != nil {
		return err
	}
	return buf.WriteFloat32(p.FOVModifier)
}

// PlayerInfoRecord is one entry of a S2CPlayerInfo packet. Which fields are
// meaningful depends on Action; this server only ever sends AddPlayer and
// RemovePlayer, so only those fields are modeled.
type PlayerInfoRecord struct {
	UUID           uuid.UUID
	Name           string
	GameMode       wire.VarInt
	Ping           wire.VarInt
	HasDisplayName bool
	DisplayName    string
}

// PlayerInfoAction selects the meaning of each record in a S2CPlayerInfo packet.
type PlayerInfoAction wire.VarInt

const (
	PlayerInfoAddPlayer PlayerInfoAction = iota
	PlayerInfoUpdateGamemode
	PlayerInfoUpdateLatency
	PlayerInfoUpdateDisplayName
	PlayerInfoRemovePlayer
)

// S2CPlayerInfo adds, updates, or removes tab-list entries.
type S2CPlayerInfo struct {
	Action  PlayerInfoAction
	Records []PlayerInfoRecord
}

func (S2CPlayerInfo) ID() wire.VarInt { return 0x36 }
func (S2CPlayerInfo) Phase() Phase    { return PhasePlay }
func (S2CPlayerInfo) Bound() Bound    { return S2C }

func (p *S2CPlayerInfo) Read(buf *wire.Buffer) error {
	action, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Action = PlayerInfoAction(action)

	count, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Records = make([]PlayerInfoRecord, count)
	for i := range p.Records {
		id, err := buf.ReadUUID()
		if err != nil {
			return err
		}
		p.Records[i].UUID = id

		switch p.Action {
		case PlayerInfoAddPlayer:
			if p.Records[i].Name, err = buf.ReadString(16); err != nil {
				return err
			}
			propCount, err := buf.ReadVarInt()
			if err != nil {
				return err
			}
			for j := int32(0); j < int32(propCount); j++ {
				if _, err := buf.ReadString(32767); err != nil {
					return err
				}
				if _, err := buf.ReadString(32767); err != nil {
					return err
				}
				hasSig, err := buf.ReadBool()
				if err != nil {
					return err
				}
				if hasSig {
					if _, err := buf.ReadString(32767); err != nil {
						return err
					}
				}
			}
			if p.Records[i].GameMode, err = buf.ReadVarInt(); err != nil {
				return err
			}
			if p.Records[i].Ping, err = buf.ReadVarInt(); err != nil {
				return err
			}
			if p.Records[i].HasDisplayName, err = buf.ReadBool(); err != nil {
				return err
			}
			if p.Records[i].HasDisplayName {
				if p.Records[i].DisplayName, err = buf.ReadString(32767); err != nil {
					return err
				}
			}
		case PlayerInfoRemovePlayer:
			// no further fields
		default:
			return fmt.Errorf("player info: unsupported action %d", p.Action)
		}
	}
	return nil
}

func (p *S2CPlayerInfo) Write(buf *wire.Buffer) error {
	if err := buf.WriteVarInt(wire.VarInt(p.Action)); err != nil {
		return err
	}
	if err := buf.WriteVarInt(wire.VarInt(len(p.Records))); err != nil {
		return err
	}
	for _, rec := range p.Records {
		if err := buf.WriteUUID(rec.UUID); err != nil {
			return err
		}
		switch p.Action {
		case PlayerInfoAddPlayer:
			if err := buf.WriteString(rec.Name); err != nil {
				return err
			}
			if err := buf.WriteVarInt(0); err != nil { // no properties
				return err
			}
			if err := buf.WriteVarInt(rec.GameMode); err != nil {
				return err
			}
			if err := buf.WriteVarInt(rec.Ping); err != nil {
				return err
			}
			if err := buf.WriteBool(rec.HasDisplayName); err != nil {
				return err
			}
			if rec.HasDisplayName {
				if err := buf.WriteString(rec.DisplayName); err != nil {
					return err
				}
			}
		case PlayerInfoRemovePlayer:
			// no further fields
		default:
			return fmt.Errorf("player info: unsupported action %d", p.Action)
		}
	}
	return nil
}

// S2CPlayerPositionAndLook teleports the client; Flags bit i being set means
// the corresponding field is relative rather than absolute. TeleportID must
// be echoed back via C2STeleportConfirm.
type S2CPlayerPositionAndLook struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      uint8
	TeleportID wire.VarInt
	Dismount   bool
}

func (S2CPlayerPositionAndLook) ID() wire.VarInt { return 0x38 }
func (S2CPlayerPositionAndLook) Phase() Phase    { return PhasePlay }
func (S2CPlayerPositionAndLook) Bound() Bound    { return S2C }

func (p *S2CPlayerPositionAndLook) Read(buf *wire.Buffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Y, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Yaw, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Pitch, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Flags, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.TeleportID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.Dismount, err = buf.ReadBool()
	return err
}

func (p *S2CPlayerPositionAndLook) Write(buf *wire.Buffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Y); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Yaw); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Pitch); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.Flags); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.TeleportID); err != nil {
		return err
	}
	return buf.WriteBool(p.Dismount)
}

// S2CUpdateViewPosition tells the client which chunk the view center is in,
// so it can reorder its chunk-loading priority.
type S2CUpdateViewPosition struct {
	ChunkX, ChunkZ wire.VarInt
}

func (S2CUpdateViewPosition) ID() wire.VarInt { return 0x49 }
func (S2CUpdateViewPosition) Phase() Phase    { return PhasePlay }
func (S2CUpdateViewPosition) Bound() Bound    { return S2C }

func (p *S2CUpdateViewPosition) Read(buf *wire.Buffer) error {
	var err error
	if p.ChunkX, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.ChunkZ, err = buf.ReadVarInt()
	return err
}

func (p *S2CUpdateViewPosition) Write(buf *wire.Buffer) error {
	if err := buf.WriteVarInt(p.ChunkX); err != nil {
		return err
	}
	return buf.WriteVarInt(p.ChunkZ)
}

// S2CSpawnPosition sets the compass/world spawn point.
type S2CSpawnPosition struct {
	Position wire.Position
	Angle    float32
}

func (S2CSpawnPosition) ID() wire.VarInt { return 0x4E }
func (S2CSpawnPosition) Phase() Phase    { return PhasePlay }
func (S2CSpawnPosition) Bound() Bound    { return S2C }

func (p *S2CSpawnPosition) Read(buf *wire.Buffer) error {
	var err error
	if p.Position, err = buf.ReadPosition(); err != nil {
		return err
	}
	p.Angle, err = buf.ReadFloat32()
	return err
}

func (p *S2CSpawnPosition) Write(buf *wire.Buffer) error {
	if err := buf.WritePosition(p.Position); err != nil {
		return err
	}
	return buf.WriteFloat32(p.Angle)
}

// S2CUpdateHealth sets the client's health, food, and saturation bars.
type S2CUpdateHealth struct {
	Health     float32
	Food       wire.VarInt
	Saturation float32
}

func (S2CUpdateHealth) ID() wire.VarInt { return 0x52 }
func (S2CUpdateHealth) Phase() Phase    { return PhasePlay }
func (S2CUpdateHealth) Bound() Bound    { return S2C }

func (p *S2CUpdateHealth) Read(buf *wire.Buffer) error {
	var err error
	if p.Health, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Food, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.Saturation, err = buf.ReadFloat32()
	return err
}

func (p *S2CUpdateHealth) Write(buf *wire.Buffer) error {
	if err := buf.WriteFloat32(p.Health); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.Food); err != nil {
		return err
	}
	return buf.WriteFloat32(p.Saturation)
}

// S2CTimeUpdate advances the client's day/night cycle and world-age clock.
type S2CTimeUpdate struct {
	WorldAge  int64
	TimeOfDay int64
}

func (S2CTimeUpdate) ID() wire.VarInt { return 0x5E }
func (S2CTimeUpdate) Phase() Phase    { return PhasePlay }
func (S2CTimeUpdate) Bound() Bound    { return S2C }

func (p *S2CTimeUpdate) Read(buf *wire.Buffer) error {
	var err error
	if p.WorldAge, err = buf.ReadInt64(); err != nil {
		return err
	}
	p.TimeOfDay, err = buf.ReadInt64()
	return err
}

func (p *S2CTimeUpdate) Write(buf *wire.Buffer) error {
	if err := buf.WriteInt64(p.WorldAge); err != nil {
		return err
	}
	return buf.WriteInt64(p.TimeOfDay)
}
