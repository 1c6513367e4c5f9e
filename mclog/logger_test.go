package mclog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-mclib/mcserver/mclog"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Info(msg, thread string)    { r.lines = append(r.lines, "INFO:"+thread+":"+msg) }
func (r *recordingLogger) Warning(msg, thread string) { r.lines = append(r.lines, "WARN:"+thread+":"+msg) }
func (r *recordingLogger) Error(msg, thread string)   { r.lines = append(r.lines, "ERROR:"+thread+":"+msg) }
func (r *recordingLogger) Debug(msg, thread string)   { r.lines = append(r.lines, "DEBUG:"+thread+":"+msg) }
func (r *recordingLogger) Log(msg, thread string)     { r.lines = append(r.lines, "LOG:"+thread+":"+msg) }

func TestFormattingHelpers(t *testing.T) {
	r := &recordingLogger{}
	mclog.Infof(r, "accept", "listening on %s", "127.0.0.1:25565")
	mclog.Warningf(r, "conn-1", "unexpected packet id=0x%02X", 0x7f)
	mclog.Errorf(r, "conn-1", "truncated frame")
	mclog.Debugf(r, "keepalive", "sent id=%d", 42)

	want := []string{
		"INFO:accept:listening on 127.0.0.1:25565",
		"WARN:conn-1:unexpected packet id=0x7F",
		"ERROR:conn-1:truncated frame",
		"DEBUG:keepalive:sent id=42",
	}
	if len(r.lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(r.lines), len(want), r.lines)
	}
	for i, line := range want {
		if r.lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, r.lines[i], line)
		}
	}
}

func TestStdLoggerDebugSuppressedUnlessVerbose(t *testing.T) {
	var quietBuf, loudBuf bytes.Buffer
	quiet := mclog.NewStdLoggerWriter(&quietBuf, false)
	loud := mclog.NewStdLoggerWriter(&loudBuf, true)

	quiet.Debug("suppressed", "test")
	loud.Debug("emitted", "test")

	if quietBuf.Len() != 0 {
		t.Errorf("quiet logger wrote %q, want nothing", quietBuf.String())
	}
	if !strings.Contains(loudBuf.String(), "emitted") {
		t.Errorf("loud logger output %q missing debug message", loudBuf.String())
	}
}

func TestStdLoggerLevelsWriteDistinctTags(t *testing.T) {
	var buf bytes.Buffer
	l := mclog.NewStdLoggerWriter(&buf, false)

	l.Info("hello", "main")
	l.Warning("careful", "main")
	l.Error("broke", "main")
	l.Log("plain", "main")

	out := buf.String()
	for _, want := range []string{"[INFO]", "[WARN]", "[ERROR]", "[LOG]", "[main]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
