package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/internal/config"
	"github.com/usestring/typeprofile-mcp/internal/logging"
	"github.com/usestring/typeprofile-mcp/internal/mcp"
	"github.com/usestring/typeprofile-mcp/internal/mcp/tools"
	"github.com/usestring/typeprofile-mcp/internal/profiler"
)

// Server is the typeprofile MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin profiling tools.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.maxDepth != nil {
		cfg.config.MaxDepth = *cfg.maxDepth
	}

	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	profileCache, err := cache.NewProfileCache(cfg.config.SchemaCacheMaxItems)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}
	runner := profiler.New(profileCache, cfg.config.Workers)

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Config:   cfg.config,
		Cache:    profileCache,
		Profiler: runner,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Config:   cfg.config,
		Cache:    profileCache,
		Profiler: runner,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	slog.Debug("server configured",
		slog.Int("max_depth", cfg.config.MaxDepth),
		slog.Int("workers", cfg.config.Workers),
		slog.Int("max_records", cfg.config.MaxRecords),
	)

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
