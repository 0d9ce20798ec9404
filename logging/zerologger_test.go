package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGetZeroLoggerWritesName(t *testing.T) {
	os.Setenv("COLORIZE_LOG", "false")
	defer os.Unsetenv("COLORIZE_LOG")

	var buf bytes.Buffer
	logger := GetZeroLogger("main::test", &buf)
	logger.Info().Int(SeatNumKey, 2).Msg("seat assigned")

	out := buf.String()
	if !strings.Contains(out, "main::test") {
		t.Errorf("logger name missing from output: %s", out)
	}
	if !strings.Contains(out, "seat assigned") {
		t.Errorf("message missing from output: %s", out)
	}
	if !strings.Contains(out, "seatNo=2") {
		t.Errorf("seat field missing from output: %s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("colour codes written with COLORIZE_LOG=false: %q", out)
	}
}

func TestScopedLoggers(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	session := SessionLogger(base, "s-1", "127.0.0.1:4000")
	session.Info().Msg("Opponent joined")
	match := MatchLogger(base, "m-1", "READY")
	match.Info().Msg("Match is ready")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	for _, field := range []string{`"sessionID":"s-1"`, `"remote":"127.0.0.1:4000"`} {
		if !strings.Contains(lines[0], field) {
			t.Errorf("session line missing %s: %s", field, lines[0])
		}
	}
	for _, field := range []string{`"matchID":"m-1"`, `"status":"READY"`} {
		if !strings.Contains(lines[1], field) {
			t.Errorf("match line missing %s: %s", field, lines[1])
		}
	}
}
