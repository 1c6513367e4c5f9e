package protocol

import (
	"github.com/go-mclib/mcserver/wire"
	"github.com/google/uuid"
)

// C2SLoginStart carries the username the client asked to join as. The
// server derives the player's UUID from it (offline mode has no encryption
// exchange, so this is the only identity the client ever supplies).
type C2SLoginStart struct {
	Username string
}

func (C2SLoginStart) ID() wire.VarInt { return 0x00 }
func (C2SLoginStart) Phase() Phase    { return PhaseLogin }
func (C2SLoginStart) Bound() Bound    { return C2S }

func (p *C2SLoginStart) Read(buf *wire.Buffer) error {
	v, err := buf.ReadString(16)
	p.Username = v
	return err
}

func (p *C2SLoginStart) Write(buf *wire.Buffer) error {
	return buf.WriteString(p.Username)
}

// S2CLoginSuccess completes login and transitions the connection to Play.
type S2CLoginSuccess struct {
	UUID     uuid.UUID
	Username string
}

func (S2CLoginSuccess) ID() wire.VarInt { return 0x02 }
func (S2CLoginSuccess) Phase() Phase    { return PhaseLogin }
func (S2CLoginSuccess) Bound() Bound    { return S2C }

func (p *S2CLoginSuccess) Read(buf *wire.Buffer) error {
	id, err := buf.ReadUUID()
	if err != nil {
		return err
	}
	name, err := buf.ReadString(16)
	if err != nil {
		return err
	}
	p.UUID, p.Username = id, name
	return nil
}

func (p *S2CLoginSuccess) Write(buf *wire.Buffer) error {
	if err := buf.WriteUUID(p.UUID); err != nil {
		return err
	}
	return buf.WriteString(p.Username)
}

// S2CSetCompression enables zlib framing for every packet after this one.
// A negative or zero Threshold means compression stays disabled.
type S2CSetCompression struct {
	Threshold wire.VarInt
}

func (S2CSetCompression) ID() wire.VarInt { return 0x03 }
func (S2CSetCompression) Phase() Phase    { return PhaseLogin }
func (S2CSetCompression) Bound() Bound    { return S2C }

func (p *S2CSetCompression) Read(buf *wire.Buffer) error {
	v, err := buf.ReadVarInt()
	p.Threshold = v
	return err
}

func (p *S2CSetCompression) Write(buf *wire.Buffer) error {
	return buf.WriteVarInt(p.Threshold)
}

func init() {
	register(PhaseLogin, C2S, 0x00, func() Packet { return &C2SLoginStart{} })
}
