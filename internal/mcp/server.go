package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/internal/mcp/prompts"
	"github.com/usestring/typeprofile-mcp/internal/mcp/tools"
)

// Version is reported to clients in the initialize handshake.
const Version = "0.1.0"

// Server wraps the MCP server with typeprofile-specific components.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps

	// Extension toggles
	enableBuiltinTools   bool
	enableBuiltinPrompts bool

	// Custom extension registration callbacks
	customRegistrations []func(*sdkmcp.Server)
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithBuiltinTools enables the builtin profiling tools and resources.
func WithBuiltinTools() ServerOption {
	return func(s *Server) {
		s.enableBuiltinTools = true
	}
}

// WithBuiltinPrompts enables the builtin workflow prompts.
func WithBuiltinPrompts() ServerOption {
	return func(s *Server) {
		s.enableBuiltinPrompts = true
	}
}

// WithCustomRegistration adds a custom registration callback.
// The callback receives the underlying MCP server and can register
// tools, prompts, or resources directly.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(s *Server) {
		s.customRegistrations = append(s.customRegistrations, fn)
	}
}

// NewServer creates a new MCP server with the provided dependencies and options.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if deps == nil {
		return nil, fmt.Errorf("deps is required")
	}

	s := &Server{deps: deps}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{
			Name:    "typeprofile-mcp",
			Version: Version,
		},
		nil,
	)

	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	promptCfg := &prompts.Config{
		MaxDepth:   deps.Config.MaxDepth,
		MaxRecords: deps.Config.MaxRecords,
	}

	if s.enableBuiltinTools {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if s.enableBuiltinPrompts {
		prompts.Register(s.mcpServer, promptCfg)
	}

	for _, fn := range s.customRegistrations {
		fn(s.mcpServer)
	}

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
