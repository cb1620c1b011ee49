package loghandler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleRendersTag(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("match started", "tag", "game", "duration", 60)

	out := buf.String()
	if !strings.Contains(out, "[game] match started duration=60") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "tag=") {
		t.Errorf("tag should not be repeated as key=value: %q", out)
	}
}

func TestHandleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record should be dropped at info level, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "WARN: shown") {
		t.Errorf("expected WARN prefix, got %q", buf.String())
	}
}

func TestWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo)).With("tag", "ws", "match", "m-1")

	logger.WithGroup("player").Info("picked", "seat", 2)

	out := buf.String()
	if !strings.Contains(out, "[ws] picked match=m-1 player.seat=2") {
		t.Errorf("unexpected output: %q", out)
	}
}
