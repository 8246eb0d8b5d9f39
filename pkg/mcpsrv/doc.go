// Package mcpsrv provides an extensible MCP server for record type profiling.
//
// The server exposes profile_types, classify_value and validate_records as
// tools, plus workflow prompts and a few resources. Users can extend it with
// custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Path string `json:"path"`
//	}
//
//	type MyOutput struct {
//	    Paths int `json:"paths"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "count_paths", Description: "Count profile paths"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	                data, err := os.ReadFile(in.Path)
//	                if err != nil {
//	                    return nil, MyOutput{}, err
//	                }
//	                res, err := d.Profiler.Run(ctx, &profiler.Request{Documents: []profiler.Document{{Data: data, Path: in.Path}}})
//	                if err != nil {
//	                    return nil, MyOutput{}, err
//	                }
//	                return nil, MyOutput{Paths: res.Schema.Len()}, nil
//	            }
//	        }),
//	)
//
// # Configuration
//
// Limits are read from the environment (see internal/config). Logging can be
// overridden with options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/typeprofile-mcp.log"),
//	)
package mcpsrv
