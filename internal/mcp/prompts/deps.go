// Package prompts contains MCP prompt implementations for typeprofile.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	MaxDepth   int
	MaxRecords int
}
