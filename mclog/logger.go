// Package mclog defines the logging interface the rest of the server
// consumes and a stdlib-backed default implementation.
//
// Grounded on java_protocol/base_tcp.go's logf/debugf wrapper around a
// *log.Logger, generalized from one hardcoded "info or nothing" level into
// the full info/warning/error/debug split the connection and play layers
// need to implement SPEC_FULL.md's error-kind-to-log-level propagation
// policy.
package mclog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is the interface every other package logs through. Each method
// takes the already-formatted message and the name of the thread (goroutine
// role) producing it, e.g. "accept", "conn-127.0.0.1:51234", "keepalive".
type Logger interface {
	Info(msg, threadName string)
	Warning(msg, threadName string)
	Error(msg, threadName string)
	Debug(msg, threadName string)
	Log(msg, threadName string)
}

// StdLogger is the default Logger, backed by a standard library *log.Logger.
// Debug lines are dropped unless Verbose is set.
type StdLogger struct {
	out     *log.Logger
	Verbose bool
}

// NewStdLogger returns a StdLogger writing to os.Stderr with standard
// date/time flags, matching base_tcp.go's own log.New(os.Stdout, ...) default.
func NewStdLogger(verbose bool) *StdLogger {
	return NewStdLoggerWriter(os.Stderr, verbose)
}

// NewStdLoggerWriter is NewStdLogger with an injectable destination, used by
// callers (and tests) that need to capture output instead of writing to
// the process's stderr.
func NewStdLoggerWriter(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{
		out:     log.New(w, "", log.LstdFlags),
		Verbose: verbose,
	}
}

func (l *StdLogger) line(level, msg, threadName string) {
	l.out.Printf("[%s] [%s] %s", level, threadName, msg)
}

func (l *StdLogger) Info(msg, threadName string)    { l.line("INFO", msg, threadName) }
func (l *StdLogger) Warning(msg, threadName string) { l.line("WARN", msg, threadName) }
func (l *StdLogger) Error(msg, threadName string)   { l.line("ERROR", msg, threadName) }
func (l *StdLogger) Log(msg, threadName string)     { l.line("LOG", msg, threadName) }

func (l *StdLogger) Debug(msg, threadName string) {
	if l.Verbose {
		l.line("DEBUG", msg, threadName)
	}
}

// Infof, Warningf, Errorf, and Debugf are fmt.Sprintf-driven convenience
// wrappers over the Logger interface, since nearly every call site builds
// its message from a format string the way base_tcp.go's logf/debugf do.
func Infof(l Logger, thread, format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...), thread)
}

func Warningf(l Logger, thread, format string, args ...any) {
	l.Warning(fmt.Sprintf(format, args...), thread)
}

func Errorf(l Logger, thread, format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...), thread)
}

func Debugf(l Logger, thread, format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...), thread)
}
