package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/usestring/typeprofile-mcp/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Optional .env next to the working directory; real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Create MCP server with all builtin tools
	// Configuration is loaded from environment variables:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - PROFILE_MAX_DEPTH, PROFILE_WORKERS, MAX_RECORDS, MAX_INPUT_BYTES
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	// Run the server with stdio transport
	slog.Info("starting typeprofile MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
