// Package protocol defines the typed packet structures exchanged during each
// phase of the Minecraft Java Edition connection lifecycle, and the codec
// that turns them into and out of wire.Buffer payloads.
//
// Unlike the teacher protocol, this connection model has no Configuration
// phase: Login completes straight into Play (see SPEC_FULL.md §4.5).
package protocol

import (
	"fmt"

	"github.com/go-mclib/mcserver/wire"
)

// Phase is the protocol phase a connection is in. It is never sent over the
// wire; it is tracked locally and switched by Handshake and LoginSuccess.
type Phase uint8

const (
	PhaseHandshaking Phase = iota
	PhaseStatus
	PhaseLogin
	PhasePlay
)

func (p Phase) String() string {
	switch p {
	case PhaseHandshaking:
		return "Handshaking"
	case PhaseStatus:
		return "Status"
	case PhaseLogin:
		return "Login"
	case PhasePlay:
		return "Play"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Bound is the direction a packet travels.
type Bound uint8

const (
	// C2S is serverbound: client -> server.
	C2S Bound = iota
	// S2C is clientbound: server -> client.
	S2C
)

// Packet is the interface every typed packet implements. A packet knows its
// own ID, the phase it belongs to, and its direction; Read/Write (de)serialize
// only the packet's own fields, never the length/ID envelope, which is the
// frame package's job.
type Packet interface {
	ID() wire.VarInt
	Phase() Phase
	Bound() Bound
	Read(buf *wire.Buffer) error
	Write(buf *wire.Buffer) error
}

// ErrUnknownPacket is returned by Decode when no registered packet matches
// the given phase, bound and ID.
var ErrUnknownPacket = fmt.Errorf("protocol: unknown packet")

// factory constructs a fresh, zero-valued instance of a registered packet
// type so Decode can call Read on it.
type factory func() Packet

type registryKey struct {
	phase Phase
	bound Bound
	id    wire.VarInt
}

var registry = map[registryKey]factory{}

// register adds a packet type to the phase/bound/ID dispatch table. It is
// called from each packet definition file's init.
func register(phase Phase, bound Bound, id wire.VarInt, f factory) {
	registry[registryKey{phase, bound, id}] = f
}

// Decode looks up the packet type for (phase, bound, id), constructs a zero
// value, and reads its fields from payload. payload must contain exactly the
// packet's own bytes (no length prefix, no packet ID).
func Decode(phase Phase, bound Bound, id wire.VarInt, payload []byte) (Packet, error) {
	f, ok := registry[registryKey{phase, bound, id}]
	if !ok {
		return nil, fmt.Errorf("%w: phase=%s bound=%d id=%d", ErrUnknownPacket, phase, bound, id)
	}
	pkt := f()
	buf := wire.NewReader(payload)
	if err := pkt.Read(buf); err != nil {
		return nil, fmt.Errorf("protocol: decode %T: %w", pkt, err)
	}
	return pkt, nil
}

// Encode serializes a packet's own fields (not its ID) to a new byte slice.
func Encode(pkt Packet) ([]byte, error) {
	buf := wire.NewWriter()
	if err := pkt.Write(buf); err != nil {
		return nil, fmt.Errorf("protocol: encode %T: %w", pkt, err)
	}
	return buf.Bytes(), nil
}
