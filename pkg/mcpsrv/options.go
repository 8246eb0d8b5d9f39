package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/internal/config"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config *config.Config

	// Logging overrides
	logLevel string
	logFile  string

	// Profiling overrides
	maxDepth *int

	// Extension toggles
	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Custom extensions - registration callbacks that preserve generic type info
	toolRegistrations     []func(*mcp.Server)
	promptRegistrations   []func(*mcp.Server)
	resourceRegistrations []func(*mcp.Server)

	// Deferred tool registrations that need access to Deps
	deferredToolRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithMaxDepth overrides PROFILE_MAX_DEPTH. Values <= 0 disable the limit.
func WithMaxDepth(depth int) Option {
	return func(cfg *serverConfig) {
		cfg.maxDepth = &depth
	}
}

// WithoutBuiltinTools disables all builtin profiling tools.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin workflow prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool with the server.
//
// The handler signature must match the MCP SDK pattern:
//
//	func(ctx context.Context, req *mcp.CallToolRequest, input T) (*mcp.CallToolResult, Out, error)
//
// Where T is the input type (will be unmarshaled from JSON) and Out is the
// output type (will be marshaled to JSON).
//
// Example:
//
//	type MyInput struct {
//	    Query string `json:"query"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    return nil, MyOutput{Count: 42}, nil
//	}
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myHandler)
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		// Store a callback that calls AddTool with output zero-value check
		cfg.toolRegistrations = append(cfg.toolRegistrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool that has access to Deps.
// Use this when your tool needs access to the profiler, cache, or configuration.
//
// The builder receives Deps and returns a handler function.
//
// Example:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "cache_size", Description: "Number of cached document profiles"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return nil, MyOutput{Count: d.Cache.Len()}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.deferredToolRegistrations = append(cfg.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			handler := builder(deps)
			AddTool(srv, tool, handler)
		})
	}
}

// WithPrompt registers a custom prompt with the server.
//
// The handler signature matches the MCP SDK pattern:
//
//	func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)
//
// Example:
//
//	mcpsrv.WithPrompt(
//	    &mcp.Prompt{Name: "my_prompt", Description: "My prompt"},
//	    func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
//	        return &mcp.GetPromptResult{
//	            Description: "My prompt result",
//	            Messages: []*mcp.PromptMessage{
//	                {Role: "user", Content: &mcp.TextContent{Text: "Hello"}},
//	            },
//	        }, nil
//	    },
//	)
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.promptRegistrations = append(cfg.promptRegistrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template with the server.
//
// The handler signature matches the MCP SDK pattern:
//
//	func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)
//
// Example:
//
//	mcpsrv.WithResourceTemplate(
//	    &mcp.ResourceTemplate{URITemplate: "custom://{id}", Name: "Custom Resource"},
//	    func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
//	        return &mcp.ReadResourceResult{
//	            Contents: []*mcp.ResourceContents{
//	                {URI: req.Params.URI, MIMEType: "application/json", Text: `{"data": "value"}`},
//	            },
//	        }, nil
//	    },
//	)
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.resourceRegistrations = append(cfg.resourceRegistrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
