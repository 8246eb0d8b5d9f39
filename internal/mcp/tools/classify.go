package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
	"github.com/usestring/typeprofile-mcp/pkg/types"
)

// ToolClassifyValue returns the type tag of a single JSON value.
func ToolClassifyValue(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ClassifyValueInput) (*sdkmcp.CallToolResult, types.ClassifyValueOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ClassifyValueInput) (*sdkmcp.CallToolResult, types.ClassifyValueOutput, error) {
		kind := typeprofile.Classify(input.Value)

		output := types.ClassifyValueOutput{Type: string(kind)}
		for i, k := range typeprofile.Kinds() {
			if k == kind {
				output.Priority = i
				break
			}
		}
		return nil, output, nil
	}
}
