package protocol

import "github.com/go-mclib/mcserver/wire"

// C2SStatusRequest carries no fields; its mere receipt asks for a status
// response.
type C2SStatusRequest struct{}

func (C2SStatusRequest) ID() wire.VarInt               { return 0x00 }
func (C2SStatusRequest) Phase() Phase                  { return PhaseStatus }
func (C2SStatusRequest) Bound() Bound                  { return C2S }
func (*C2SStatusRequest) Read(buf *wire.Buffer) error  { return nil }
func (*C2SStatusRequest) Write(buf *wire.Buffer) error { return nil }

// C2SStatusPing carries an opaque token the server must echo back unchanged.
type C2SStatusPing struct {
	Payload int64
}

func (C2SStatusPing) ID() wire.VarInt { return 0x01 }
func (C2SStatusPing) Phase() Phase    { return PhaseStatus }
func (C2SStatusPing) Bound() Bound    { return C2S }

func (p *C2SStatusPing) Read(buf *wire.Buffer) error {
	v, err := buf.ReadInt64()
	p.Payload = v
	return err
}

func (p *C2SStatusPing) Write(buf *wire.Buffer) error {
	return buf.WriteInt64(p.Payload)
}

// S2CStatusResponse carries the JSON status document described in
// SPEC_FULL.md's external-interfaces section.
type S2CStatusResponse struct {
	JSON string
}

func (S2CStatusResponse) ID() wire.VarInt { return 0x00 }
func (S2CStatusResponse) Phase() Phase    { return PhaseStatus }
func (S2CStatusResponse) Bound() Bound    { return S2C }

func (p *S2CStatusResponse) Read(buf *wire.Buffer) error {
	v, err := buf.ReadString(0)
	p.JSON = v
	return err
}

func (p *S2CStatusResponse) Write(buf *wire.Buffer) error {
	return buf.WriteString(p.JSON)
}

// S2CStatusPong echoes a C2SStatusPing's token back to the client.
type S2CStatusPong struct {
	Payload int64
}

func (S2CStatusPong) ID() wire.VarInt { return 0x01 }
func (S2CStatusPong) Phase() Phase    { return PhaseStatus }
func (S2CStatusPong) Bound() Bound    { return S2C }

func (p *S2CStatusPong) Read(buf *wire.Buffer) error {
	v, err := buf.ReadInt64()
	p.Payload = v
	return err
}

func (p *S2CStatusPong) Write(buf *wire.Buffer) error {
	return buf.WriteInt64(p.Payload)
}

func init() {
	register(PhaseStatus, C2S, 0x00, func() Packet { return &C2SStatusRequest{} })
	register(PhaseStatus, C2S, 0x01, func() Packet { return &C2SStatusPing{} })
}
