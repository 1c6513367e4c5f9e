package server

import (
	"net"
	"sync"

	"github.com/go-mclib/mcserver/frame"
	"github.com/go-mclib/mcserver/mclog"
	"github.com/go-mclib/mcserver/protocol"
	"github.com/google/uuid"
)

// Conn is one TCP connection's state: its current protocol phase, the
// framing layer's compression threshold, and the player identity it adopts
// once login completes. All reads happen on the connection's own task
// (single-reader); writes are serialized through writeMu so the keepalive
// task started in §4.6 can share the socket safely with the main task.
//
// Grounded on java_protocol/conn.go's net.Conn wrapper, generalized from a
// client-side encryption wrapper into a server-side phase/compression/write
// lock holder — this server has no encryption (a non-goal), so Conn's job is
// purely state tracking and write serialization instead.
type Conn struct {
	netConn net.Conn
	logger  mclog.Logger

	writeMu              sync.Mutex
	phase                protocol.Phase
	compressionThreshold int // negative disables compression

	username string
	uuid     uuid.UUID

	// pose is updated by play packets; it has no effect on anything the
	// server emits, but is kept so a future feature (e.g. broadcasting
	// positions to other clients) has somewhere to read it from.
	pose struct {
		X, Y, Z    float64
		Yaw, Pitch float32
	}
	viewDistance int
}

func newConn(nc net.Conn, logger mclog.Logger) *Conn {
	return &Conn{
		netConn:              nc,
		logger:               logger,
		phase:                protocol.PhaseHandshaking,
		compressionThreshold: -1,
		viewDistance:         10,
	}
}

// RemoteAddr returns the connection's remote endpoint, for logging.
func (c *Conn) RemoteAddr() net.Addr { return c.netConn.RemoteAddr() }

// Phase returns the connection's current protocol phase.
func (c *Conn) Phase() protocol.Phase { return c.phase }

// SetPhase transitions the connection to a new protocol phase.
func (c *Conn) SetPhase(p protocol.Phase) { c.phase = p }

// Username returns the name the client supplied at login.
func (c *Conn) Username() string { return c.username }

// SetUsername records the name the client supplied at login.
func (c *Conn) SetUsername(name string) { c.username = name }

// UUID returns the player's (offline-derived) UUID.
func (c *Conn) UUID() uuid.UUID { return c.uuid }

// SetUUID records the player's UUID.
func (c *Conn) SetUUID(id uuid.UUID) { c.uuid = id }

// ViewDistance returns the client's last-reported view distance.
func (c *Conn) ViewDistance() int { return c.viewDistance }

// SetViewDistance records the client's view distance, already clamped by the
// caller to [2, 32] per §4.6.
func (c *Conn) SetViewDistance(d int) { c.viewDistance = d }

// SetPose records the client's last-reported position and look.
func (c *Conn) SetPose(x, y, z float64, yaw, pitch float32) {
	c.pose.X, c.pose.Y, c.pose.Z = x, y, z
	c.pose.Yaw, c.pose.Pitch = yaw, pitch
}

// Pose returns the client's last-reported position and look, so a handler
// for a partial update (position-only or look-only) can preserve the fields
// it wasn't given.
func (c *Conn) Pose() (x, y, z float64, yaw, pitch float32) {
	return c.pose.X, c.pose.Y, c.pose.Z, c.pose.Yaw, c.pose.Pitch
}

// ReadPacket blocks for the next frame, decodes its packet ID against the
// current phase with bound C2S, and returns the typed packet. Reads are
// single-reader by the concurrency model, so compressionThreshold is safe to
// read here without writeMu: it only ever changes during login, before the
// keepalive task (the sole concurrent writer) exists.
func (c *Conn) ReadPacket() (protocol.Packet, error) {
	f, err := frame.ReadFrame(c.netConn, c.compressionThreshold)
	if err != nil {
		return nil, classifyReadError(err)
	}
	pkt, err := protocol.Decode(c.phase, protocol.C2S, f.ID, f.Payload)
	if err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket encodes and frames pkt, then writes it to the socket. Safe to
// call concurrently with other WritePacket calls on the same Conn (e.g. from
// both the main task and the keepalive task).
func (c *Conn) WritePacket(pkt protocol.Packet) error {
	payload, err := protocol.Encode(pkt)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return frame.WriteFrame(c.netConn, frame.Frame{ID: pkt.ID(), Payload: payload}, c.compressionThreshold)
}

// SetCompressionThreshold changes the framing layer's compression threshold
// for every subsequent read and write. The state machine calls this between
// writing S2CSetCompression and S2CLoginSuccess, per §4.5's tie-break that
// the two must straddle the threshold flip.
func (c *Conn) SetCompressionThreshold(threshold int) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.compressionThreshold = threshold
}

// Close closes the underlying socket. Safe to call more than once.
func (c *Conn) Close() error {
	return c.netConn.Close()
}
