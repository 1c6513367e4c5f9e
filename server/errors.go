package server

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// UnexpectedPacketError is the state machine's own error kind: a correctly
// framed and decoded packet whose ID is not legal for the connection's
// current phase.
type UnexpectedPacketError struct {
	Phase string
	ID    int32
}

func (e *UnexpectedPacketError) Error() string {
	return fmt.Sprintf("server: unexpected packet id=0x%02X in phase %s", e.ID, e.Phase)
}

// ioClosedError marks a connection-closed error as the IoClosed kind, logged
// at INFO rather than WARNING per the propagation policy.
type ioClosedError struct {
	cause error
}

func (e *ioClosedError) Error() string { return "server: connection closed: " + e.cause.Error() }
func (e *ioClosedError) Unwrap() error { return e.cause }

// wrapIOClosed marks any non-nil err as an IoClosed-kind error. It does not
// inspect err itself; classifyReadError decides which errors are hangups.
func wrapIOClosed(err error) error {
	if err == nil {
		return nil
	}
	return &ioClosedError{cause: err}
}

// isIOClosed reports whether err (or anything it wraps) is the IoClosed kind.
func isIOClosed(err error) bool {
	var ioErr *ioClosedError
	return errors.As(err, &ioErr)
}

// classifyReadError reclassifies a frame-read failure as IoClosed when the
// underlying cause is a clean EOF or a closed-connection error — the peer
// simply hung up rather than sending malformed data.
func classifyReadError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return wrapIOClosed(err)
	}
	return err
}
