// Package play implements the post-login session driver described in
// SPEC_FULL.md §4.6: the canned packet burst that follows LoginSuccess, the
// background keepalive clock, and the play-phase packet dispatch loop.
//
// The teacher has no equivalent (it is a client, never the side that drives
// a session open), so this package is grounded directly on
// original_source/minestom's join sequence and spec §4.6/§5's concurrency
// model: one goroutine emits the burst and then reads frames for the life
// of the connection, a second goroutine owns the keepalive clock, and both
// share only conn's write lock (via Conn.WritePacket) and a small tracker
// guarded by its own mutex.
package play

import (
	"context"
	"math/rand/v2"
	"net"
	"sync"
	"time"

	"github.com/go-mclib/mcserver/chunkgen"
	"github.com/go-mclib/mcserver/config"
	"github.com/go-mclib/mcserver/mclog"
	"github.com/go-mclib/mcserver/protocol"
	"github.com/go-mclib/mcserver/wire"
	"github.com/google/uuid"
)

// Conn is everything the play session driver needs from a connection. It is
// satisfied structurally by *server.Conn; play cannot import server (server
// imports play to hand off connections once login completes), so the
// dependency points the other way on purpose.
type Conn interface {
	ReadPacket() (protocol.Packet, error)
	WritePacket(pkt protocol.Packet) error
	Username() string
	UUID() uuid.UUID
	SetViewDistance(d int)
	SetPose(x, y, z float64, yaw, pitch float32)
	Pose() (x, y, z float64, yaw, pitch float32)
	RemoteAddr() net.Addr
	Close() error
}

const (
	// spawnTeleportID is the teleport ID carried by the one
	// PlayerPositionAndLook the join burst sends; C2STeleportConfirm is
	// expected to echo it exactly once.
	spawnTeleportID = 1

	keepaliveInterval = 15 * time.Second
	keepaliveTimeout  = 30 * time.Second
)

var generator chunkgen.Generator = chunkgen.EmptyGenerator{}

// Serve drives one connection through the entire play phase: it emits the
// post-login burst atomically, then starts the keepalive goroutine, then
// reads and dispatches play packets until the connection ends. It returns
// the error that ended the session (nil only if ctx-style cancellation is
// ever added; today every exit path is an error or a clean peer close,
// which frame/protocol surface as an error here too).
func Serve(conn Conn, cfg *config.Config, logger mclog.Logger) error {
	thread := conn.RemoteAddr().String()

	if err := sendJoinBurst(conn, cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := newKeepaliveTracker()
	kaDone := make(chan error, 1)
	go func() { kaDone <- runKeepalive(ctx, conn, tracker) }()

	readErr := readLoop(conn, tracker, logger, thread)
	cancel()
	if kaErr := <-kaDone; kaErr != nil {
		return kaErr
	}
	return readErr
}

// sendJoinBurst emits SPEC_FULL.md §4.6 steps 1-10 in order, synchronously,
// before any keepalive goroutine exists — the single-writer model needs no
// lock here since nothing else can be writing to conn yet.
func sendJoinBurst(conn Conn, cfg *config.Config) error {
	registryCodec, err := registryCodec()
	if err != nil {
		return err
	}

	data, heightmaps, err := generator.Column(0, 0)
	if err != nil {
		return err
	}

	brand := wire.NewWriter()
	if err := brand.WriteString("CustomServer"); err != nil {
		return err
	}

	burst := []protocol.Packet{
		&protocol.S2CJoinGame{
			EntityID:           1,
			IsHardcore:         false,
			Gamemode:           1, // creative
			PreviousGamemode:   -1,
			DimensionNames:     []string{overworldName},
			RegistryCodec:      registryCodec,
			DimensionType:      overworldName,
			DimensionName:      overworldName,
			HashedSeed:         0,
			MaxPlayers:         wire.VarInt(cfg.MaxPlayers),
			ViewDistance:       10,
			SimulationDistance: 10,
			ReducedDebugInfo:   false,
			RespawnScreen:      true,
			IsDebug:            false,
			IsFlat:             false,
			HasDeathLocation:   false,
			PortalCooldown:     0,
		},
		&protocol.S2CSpawnPosition{
			Position: wire.Position{X: 0, Y: 0, Z: 0},
			Angle:    0,
		},
		&protocol.S2CPlayerPositionAndLook{
			X: 0.5, Y: 65.0, Z: 0.5,
			Yaw: 0, Pitch: 0,
			Flags:      0,
			TeleportID: spawnTeleportID,
			Dismount:   false,
		},
		&protocol.S2CUpdateViewPosition{ChunkX: 0, ChunkZ: 0},
		&protocol.S2CChunkData{
			ChunkX:     0,
			ChunkZ:     0,
			Heightmaps: heightmaps,
			Data:       data,
			TrustEdges: true,
		},
		&protocol.S2CPlayerAbilities{
			Flags:       0x0F, // invulnerable | flying | allow-fly | creative
			FlyingSpeed: 0.05,
			FOVModifier: 0.1,
		},
		&protocol.S2CPlayerInfo{
			Action: protocol.PlayerInfoAddPlayer,
			Records: []protocol.PlayerInfoRecord{{
				UUID:     conn.UUID(),
				Name:     conn.Username(),
				GameMode: 1,
				Ping:     0,
			}},
		},
		&protocol.S2CUpdateHealth{Health: 20, Food: 20, Saturation: 5.0},
		&protocol.S2CPluginMessage{Channel: "minecraft:brand", Data: brand.Bytes()},
		&protocol.S2CTimeUpdate{WorldAge: 0, TimeOfDay: 6000},
	}

	for _, pkt := range burst {
		if err := conn.WritePacket(pkt); err != nil {
			return err
		}
	}
	return nil
}

// readLoop is the connection's single reader: it blocks for the next play
// packet and dispatches it, for as long as the connection survives. A panic
// inside a handler is recovered into MalformedPacketError rather than
// crashing the accept loop, mirroring dmitrymodder-minewire's
// handleConnection recover().
func readLoop(conn Conn, tracker *keepaliveTracker, logger mclog.Logger, thread string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &MalformedPacketError{Cause: r}
		}
	}()

	for {
		pkt, rerr := conn.ReadPacket()
		if rerr != nil {
			return rerr
		}

		switch p := pkt.(type) {
		case *protocol.C2STeleportConfirm:
			if p.TeleportID != spawnTeleportID {
				mclog.Warningf(logger, thread, "teleport confirm: got id %d, want %d", p.TeleportID, spawnTeleportID)
			}
		case *protocol.C2SClientSettings:
			conn.SetViewDistance(clampViewDistance(int(p.ViewDistance)))
		case *protocol.C2SPlayerPosition:
			_, _, _, yaw, pitch := conn.Pose()
			conn.SetPose(p.X, p.FeetY, p.Z, yaw, pitch)
		case *protocol.C2SPlayerPositionAndLook:
			conn.SetPose(p.X, p.FeetY, p.Z, p.Yaw, p.Pitch)
		case *protocol.C2SPlayerLook:
			x, y, z, _, _ := conn.Pose()
			conn.SetPose(x, y, z, p.Yaw, p.Pitch)
		case *protocol.C2SKeepAlive:
			if !tracker.ack(p.KeepAliveID) {
				return &KeepaliveMismatchError{Got: p.KeepAliveID}
			}
		}
	}
}

// clampViewDistance restricts a reported client view distance to [2, 32]
// per §4.6's ClientSettings handling.
func clampViewDistance(d int) int {
	switch {
	case d < 2:
		return 2
	case d > 32:
		return 32
	default:
		return d
	}
}

// runKeepalive owns the keepalive clock: every keepaliveInterval it either
// discovers the connection has timed out (more than one unanswered ID
// outstanding for at least keepaliveTimeout) and closes it, or sends a
// fresh keepalive and records it as outstanding. It exits cleanly when ctx
// is cancelled by Serve's read loop returning.
func runKeepalive(ctx context.Context, conn Conn, tracker *keepaliveTracker) error {
	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if tracker.staleCount(keepaliveTimeout) > 1 {
				_ = conn.Close()
				return &KeepaliveTimeoutError{}
			}
			id := rand.Int64N(1<<31-1) + 1 // [1, 2^31)
			tracker.add(id)
			if err := conn.WritePacket(&protocol.S2CKeepAlive{KeepAliveID: id}); err != nil {
				return nil // write failure means the connection is already closing; readLoop reports the real cause
			}
		}
	}
}

// keepaliveTracker records outstanding keepalive IDs and the time each was
// sent. It is shared between the read loop (acking) and the keepalive
// goroutine (adding, checking staleness), so every method takes its own lock.
type keepaliveTracker struct {
	mu          sync.Mutex
	outstanding map[int64]time.Time
}

func newKeepaliveTracker() *keepaliveTracker {
	return &keepaliveTracker{outstanding: make(map[int64]time.Time)}
}

func (t *keepaliveTracker) add(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outstanding[id] = time.Now()
}

// ack clears id if it is outstanding and reports whether it was found.
func (t *keepaliveTracker) ack(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.outstanding[id]; !ok {
		return false
	}
	delete(t.outstanding, id)
	return true
}

// staleCount returns how many outstanding IDs have been unanswered for at
// least age.
func (t *keepaliveTracker) staleCount(age time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	n := 0
	for _, sentAt := range t.outstanding {
		if now.Sub(sentAt) >= age {
			n++
		}
	}
	return n
}
