package protocol

import "github.com/go-mclib/mcserver/wire"

// C2SHandshake is the first packet on any connection. NextState selects
// whether the connection proceeds to Status (1) or Login (2); there is no
// wire value for Play or Handshaking.
type C2SHandshake struct {
	ProtocolVersion wire.VarInt
	ServerHost      string
	ServerPort      uint16
	NextState       wire.VarInt
}

func (C2SHandshake) ID() wire.VarInt { return 0x00 }
func (C2SHandshake) Phase() Phase    { return PhaseHandshaking }
func (C2SHandshake) Bound() Bound    { return C2S }

func (p *C2SHandshake) Read(buf *wire.Buffer) error {
	var err error
	if p.ProtocolVersion, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ServerHost, err = buf.ReadString(255); err != nil {
		return err
	}
	if p.ServerPort, err = buf.ReadUint16(); err != nil {
		return err
	}
	p.NextState, err = buf.ReadVarInt()
	return err
}

func (p *C2SHandshake) Write(buf *wire.Buffer) error {
	if err := buf.WriteVarInt(p.ProtocolVersion); err != nil {
		return err
	}
	if err := buf.WriteString(p.ServerHost); err != nil {
		return err
	}
	if err := buf.WriteUint16(p.ServerPort); err != nil {
		return err
	}
	return buf.WriteVarInt(p.NextState)
}

// NextStateStatus and NextStateLogin are the only valid C2SHandshake.NextState values.
const (
	NextStateStatus wire.VarInt = 1
	NextStateLogin  wire.VarInt = 2
)

func init() {
	register(PhaseHandshaking, C2S, 0x00, func() Packet { return &C2SHandshake{} })
}
