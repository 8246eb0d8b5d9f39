package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typeprofile-mcp/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "path", "a.0")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=a.0")
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFile: "/tmp/x.log", LogMaxSizeMB: 1, LogMaxBackups: 2, LogMaxAgeDays: 3}

	got := FromConfig(cfg)
	assert.Equal(t, Config{Level: "debug", FilePath: "/tmp/x.log", MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3}, got)
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "server.log")
	cfg := DefaultConfig()
	cfg.FilePath = path
	cfg.Compress = false

	cleanup, err := Setup(cfg)
	require.NoError(t, err)

	slog.Info("profile computed", "records", 3)
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "records=3")
}
