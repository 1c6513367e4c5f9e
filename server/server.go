// Package server implements the accept loop and per-connection state
// machine described in SPEC_FULL.md §4.5: Handshaking/Status/Login phase
// handling, then handoff into the play package's session driver for Play.
//
// Grounded on dmitrymodder-minewire/main.go's accept-loop-spawns-goroutine
// shape (net.Listen, an infinite Accept loop, `go handleConnection(conn)`)
// and on java_protocol/conn.go's net.Conn wrapper for the write-serialization
// idea, generalized to a server rather than a client.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"syscall"

	"github.com/go-mclib/mcserver/config"
	"github.com/go-mclib/mcserver/identity"
	"github.com/go-mclib/mcserver/mclog"
	"github.com/go-mclib/mcserver/play"
	"github.com/go-mclib/mcserver/protocol"
	"github.com/go-mclib/mcserver/wire"
	"golang.org/x/sys/unix"
)

// Server owns the listening socket and the server-wide state the connection
// state machine reads: configuration and the online-player counter. Per
// §5, these are the only two pieces of state shared across connections.
type Server struct {
	Config *config.Config
	Logger mclog.Logger

	online atomic.Int64
}

// New builds a Server from a loaded configuration and logger.
func New(cfg *config.Config, logger mclog.Logger) *Server {
	return &Server{Config: cfg, Logger: logger}
}

// ListenAndServe binds the configured host:port and accepts connections
// until ctx is cancelled or the listening socket fails. A per-connection
// error never stops the loop; only a failure to accept does.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	lc := net.ListenConfig{Control: reuseAddrControl}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	defer func() { _ = ln.Close() }()

	mclog.Infof(s.Logger, "main", "listening on %s", addr)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		go s.handleConnection(nc)
	}
}

// reuseAddrControl sets SO_REUSEADDR on the listening socket before bind, so
// a restarted server doesn't fail to rebind a port still draining TIME_WAIT
// connections from the previous run.
func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

func (s *Server) handleConnection(nc net.Conn) {
	thread := nc.RemoteAddr().String()
	c := newConn(nc, s.Logger)
	defer func() { _ = c.Close() }()

	if err := s.runHandshakingAndStatus(c, thread); err != nil {
		s.logConnError(thread, err)
		return
	}
	if c.Phase() != protocol.PhasePlay {
		return // status-only connection: closed after the ping/pong exchange
	}

	s.online.Add(1)
	defer s.online.Add(-1)

	if err := play.Serve(c, s.Config, s.Logger); err != nil {
		s.logConnError(thread, err)
	}
}

// runHandshakingAndStatus drives the connection through Handshaking, then
// either Status (to completion, closing the connection itself) or Login (to
// completion, leaving the connection in PhasePlay for the caller to hand off
// to the play package).
func (s *Server) runHandshakingAndStatus(c *Conn, thread string) error {
	pkt, err := c.ReadPacket()
	if err != nil {
		return err
	}
	hs, ok := pkt.(*protocol.C2SHandshake)
	if !ok {
		return &UnexpectedPacketError{Phase: c.Phase().String(), ID: int32(pkt.ID())}
	}

	switch hs.NextState {
	case protocol.NextStateStatus:
		c.SetPhase(protocol.PhaseStatus)
		return s.runStatus(c)
	case protocol.NextStateLogin:
		c.SetPhase(protocol.PhaseLogin)
		return s.runLogin(c, thread)
	default:
		return fmt.Errorf("server: handshake: invalid next_state %d", hs.NextState)
	}
}

func (s *Server) runStatus(c *Conn) error {
	pkt, err := c.ReadPacket()
	if err != nil {
		return err
	}
	if _, ok := pkt.(*protocol.C2SStatusRequest); !ok {
		return &UnexpectedPacketError{Phase: c.Phase().String(), ID: int32(pkt.ID())}
	}

	body, err := json.Marshal(s.Config.Status(int(s.online.Load())))
	if err != nil {
		return fmt.Errorf("server: marshal status: %w", err)
	}
	if err := c.WritePacket(&protocol.S2CStatusResponse{JSON: string(body)}); err != nil {
		return err
	}

	pkt, err = c.ReadPacket()
	if err != nil {
		return err
	}
	ping, ok := pkt.(*protocol.C2SStatusPing)
	if !ok {
		return &UnexpectedPacketError{Phase: c.Phase().String(), ID: int32(pkt.ID())}
	}
	return c.WritePacket(&protocol.S2CStatusPong{Payload: ping.Payload})
}

func (s *Server) runLogin(c *Conn, thread string) error {
	pkt, err := c.ReadPacket()
	if err != nil {
		return err
	}
	start, ok := pkt.(*protocol.C2SLoginStart)
	if !ok {
		return &UnexpectedPacketError{Phase: c.Phase().String(), ID: int32(pkt.ID())}
	}

	c.SetUsername(start.Username)
	c.SetUUID(identity.OfflineUUID(start.Username))

	// SetCompression must precede LoginSuccess, sent uncompressed, and the
	// framing layer's threshold must flip between the two writes (§4.5
	// tie-break).
	if s.Config.CompressionEnabled() {
		threshold := s.Config.CompressionThreshold
		if err := c.WritePacket(&protocol.S2CSetCompression{Threshold: wire.VarInt(threshold)}); err != nil {
			return err
		}
		c.SetCompressionThreshold(threshold)
	}

	if err := c.WritePacket(&protocol.S2CLoginSuccess{UUID: c.UUID(), Username: c.Username()}); err != nil {
		return err
	}

	mclog.Infof(s.Logger, thread, "%s logged in as %s (%s)", thread, c.Username(), c.UUID())
	c.SetPhase(protocol.PhasePlay)
	return nil
}

func (s *Server) logConnError(thread string, err error) {
	if isIOClosed(err) {
		mclog.Infof(s.Logger, thread, "%v", err)
		return
	}
	mclog.Warningf(s.Logger, thread, "%v", err)
}
