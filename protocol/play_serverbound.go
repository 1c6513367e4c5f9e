package protocol

import "github.com/go-mclib/mcserver/wire"

// C2STeleportConfirm acknowledges a S2CPlayerPositionAndLook by echoing its
// teleport ID.
type C2STeleportConfirm struct {
	TeleportID wire.VarInt
}

func (C2STeleportConfirm) ID() wire.VarInt { return 0x00 }
func (C2STeleportConfirm) Phase() Phase    { return PhasePlay }
func (C2STeleportConfirm) Bound() Bound    { return C2S }

func (p *C2STeleportConfirm) Read(buf *wire.Buffer) error {
	v, err := buf.ReadVarInt()
	p.TeleportID = v
	return err
}

func (p *C2STeleportConfirm) Write(buf *wire.Buffer) error {
	return buf.WriteVarInt(p.TeleportID)
}

// C2SClientSettings reports the client's locale and rendering preferences.
// ViewDistance is clamped to [2, 32] by the play session driver, not here.
type C2SClientSettings struct {
	Locale              string
	ViewDistance        int8
	ChatMode            wire.VarInt
	ChatColors          bool
	DisplayedSkinParts  uint8
	MainHand            wire.VarInt
	TextFilteringEnabled bool
}

func (C2SClientSettings) ID() wire.VarInt { return 0x08 }
func (C2SClientSettings) Phase() Phase    { return PhasePlay }
func (C2SClientSettings) Bound() Bound    { return C2S }

func (p *C2SClientSettings) Read(buf *wire.Buffer) error {
	var err error
	if p.Locale, err = buf.ReadString(16); err != nil {
		return err
	}
	if p.ViewDistance, err = buf.ReadInt8(); err != nil {
		return err
	}
	if p.ChatMode, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ChatColors, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.DisplayedSkinParts, err = buf.ReadUint8(); err != nil {
		return err
	}
	if p.MainHand, err = buf.ReadVarInt(); err != nil {
		return err
	}
	p.TextFilteringEnabled, err = buf.ReadBool()
	return err
}

func (p *C2SClientSettings) Write(buf *wire.Buffer) error {
	if err := buf.WriteString(p.Locale); err != nil {
		return err
	}
	if err := buf.WriteInt8(p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ChatMode); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ChatColors); err != nil {
		return err
	}
	if err := buf.WriteUint8(p.DisplayedSkinParts); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.MainHand); err != nil {
		return err
	}
	return buf.WriteBool(p.TextFilteringEnabled)
}

// C2SKeepAlive answers a S2CKeepAlive by echoing its ID. The play session
// driver matches ID against the outstanding keepalive it sent.
type C2SKeepAlive struct {
	KeepAliveID int64
}

func (C2SKeepAlive) ID() wire.VarInt { return 0x10 }
func (C2SKeepAlive) Phase() Phase    { return PhasePlay }
func (C2SKeepAlive) Bound() Bound    { return C2S }

func (p *C2SKeepAlive) Read(buf *wire.Buffer) error {
	v, err := buf.ReadInt64()
	p.KeepAliveID = v
	return err
}

func (p *C2SKeepAlive) Write(buf *wire.Buffer) error {
	return buf.WriteInt64(p.KeepAliveID)
}

// C2SPlayerPosition reports a position update with no look change.
type C2SPlayerPosition struct {
	X, FeetY, Z float64
	OnGround    bool
}

func (C2SPlayerPosition) ID() wire.VarInt { return 0x13 }
func (C2SPlayerPosition) Phase() Phase    { return PhasePlay }
func (C2SPlayerPosition) Bound() Bound    { return C2S }

func (p *C2SPlayerPosition) Read(buf *wire.Buffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.FeetY, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadFloat64(); err != nil {
		return err
	}
	p.OnGround, err = buf.ReadBool()
	return err
}

func (p *C2SPlayerPosition) Write(buf *wire.Buffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.FeetY); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.Z); err != nil {
		return err
	}
	return buf.WriteBool(p.OnGround)
}

// C2SPlayerPositionAndLook reports a combined position and look update.
type C2SPlayerPositionAndLook struct {
	X, FeetY, Z  float64
	Yaw, Pitch   float32
	OnGround     bool
}

func (C2SPlayerPositionAndLook) ID() wire.VarInt { return 0x14 }
func (C2SPlayerPositionAndLook) Phase() Phase    { return PhasePlay }
func (C2SPlayerPositionAndLook) Bound() Bound    { return C2S }

func (p *C2SPlayerPositionAndLook) Read(buf *wire.Buffer) error {
	var err error
	if p.X, err = buf.ReadFloat64(); err != nil {
		return err
	}
	if p.FeetY, err = buf.ReadFloat64(); err != nil {
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
	p.OnGround, err = buf.ReadBool()
	return err
}

func (p *C2SPlayerPositionAndLook) Write(buf *wire.Buffer) error {
	if err := buf.WriteFloat64(p.X); err != nil {
		return err
	}
	if err := buf.WriteFloat64(p.FeetY); err != nil {
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
	return buf.WriteBool(p.OnGround)
}

// C2SPlayerLook reports a look-only update.
type C2SPlayerLook struct {
	Yaw, Pitch float32
	OnGround   bool
}

func (C2SPlayerLook) ID() wire.VarInt { return 0x15 }
func (C2SPlayerLook) Phase() Phase    { return PhasePlay }
func (C2SPlayerLook) Bound() Bound    { return C2S }

func (p *C2SPlayerLook) Read(buf *wire.Buffer) error {
	var err error
	if p.Yaw, err = buf.ReadFloat32(); err != nil {
		return err
	}
	if p.Pitch, err = buf.ReadFloat32(); err != nil {
		return err
	}
	p.OnGround, err = buf.ReadBool()
	return err
}

func (p *C2SPlayerLook) Write(buf *wire.Buffer) error {
	if err := buf.WriteFloat32(p.Yaw); err != nil {
		return err
	}
	if err := buf.WriteFloat32(p.Pitch); err != nil {
		return err
	}
	return buf.WriteBool(p.OnGround)
}

func init() {
	register(PhasePlay, C2S, 0x00, func() Packet { return &C2STeleportConfirm{} })
	register(PhasePlay, C2S, 0x08, func() Packet { return &C2SClientSettings{} })
	register(PhasePlay, C2S, 0x10, func() Packet { return &C2SKeepAlive{} })
	register(PhasePlay, C2S, 0x13, func() Packet { return &C2SPlayerPosition{} })
	register(PhasePlay, C2S, 0x14, func() Packet { return &C2SPlayerPositionAndLook{} })
	register(PhasePlay, C2S, 0x15, func() Packet { return &C2SPlayerLook{} })
}
