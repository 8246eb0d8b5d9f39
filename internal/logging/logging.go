// Package logging provides structured logging with file rotation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/usestring/typeprofile-mcp/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Level      string // Log level: debug, info, warn, error
	FilePath   string // Path to log file (empty = stderr only)
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to retain
	MaxAgeDays int    // Max age in days to retain old log files
	Compress   bool   // Whether to compress rotated files
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// FromConfig extracts the logging settings of a server configuration.
func FromConfig(cfg *config.Config) Config {
	return Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}
}

// Setup initializes the global slog logger with the given configuration.
// Stdout is reserved for the MCP stdio transport, so logs go to stderr or a
// rotated file. Returns a cleanup function that should be called on shutdown.
func Setup(cfg Config) (func() error, error) {
	writer, cleanup, err := openWriter(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(New(writer, cfg.Level))
	return cleanup, nil
}

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func openWriter(cfg Config) (io.Writer, func() error, error) {
	if cfg.FilePath == "" {
		return os.Stderr, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return lj, lj.Close, nil
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
