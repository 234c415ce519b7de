package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	t.Run("Fans out to every enabled handler", func(t *testing.T) {
		var text, js bytes.Buffer
		log := slog.New(NewMultiHandler(
			NewConsoleHandler(&text, "info", "text"),
			NewConsoleHandler(&js, "debug", "json"),
		))

		log.Debug("only json", "room.id", "r1")
		log.With("player.id", "p1").Info("both")

		assert.NotContains(t, text.String(), "only json")
		assert.Contains(t, text.String(), "player.id=p1")

		lines := bytes.Split(bytes.TrimSpace(js.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)
		var entry map[string]any
		require.NoError(t, json.Unmarshal(lines[1], &entry))
		assert.Equal(t, "both", entry["msg"])
		assert.Equal(t, "p1", entry["player.id"])
	})

	t.Run("Disabled when no handler accepts the level", func(t *testing.T) {
		h := NewMultiHandler(NewConsoleHandler(&bytes.Buffer{}, "error", "text"))
		assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("Keeps writing after a handler fails", func(t *testing.T) {
		var buf bytes.Buffer
		h := NewMultiHandler(failingHandler{}, NewConsoleHandler(&buf, "info", "text"))

		err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still logged", 0))

		assert.Error(t, err)
		assert.Contains(t, buf.String(), "still logged")
	})

	t.Run("Groups apply to every handler", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewMultiHandler(NewConsoleHandler(&buf, "info", "json")))

		log.WithGroup("game").Info("move", "row", 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, map[string]any{"row": float64(1)}, entry["game"])
	})
}
