package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/internal/profiler"
	"github.com/usestring/typeprofile-mcp/pkg/jsonschema"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
	"github.com/usestring/typeprofile-mcp/pkg/types"
)

// ToolProfileTypes computes the merged type profile of one or more documents.
// Documents are decoded and analyzed concurrently, reusing cached profiles of
// documents seen before, and merged in input order.
func ToolProfileTypes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ProfileTypesInput) (*sdkmcp.CallToolResult, types.ProfileTypesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ProfileTypesInput) (*sdkmcp.CallToolResult, types.ProfileTypesOutput, error) {
		docs, err := d.LoadDocuments(input.Documents)
		if err != nil {
			return nil, types.ProfileTypesOutput{}, err
		}

		maxDepth := input.MaxDepth
		switch {
		case maxDepth == 0:
			maxDepth = d.Config.MaxDepth
		case maxDepth < 0:
			maxDepth = 0
		}

		res, err := d.Profiler.Run(ctx, &profiler.Request{
			Documents:  docs,
			Selector:   input.Selector,
			MaxDepth:   maxDepth,
			MaxRecords: d.Config.MaxRecords,
		})
		if err != nil {
			return nil, types.ProfileTypesOutput{}, WrapProfileError(err)
		}

		s := res.Schema
		output := types.ProfileTypesOutput{
			Fields:      FieldSummaries(s),
			Schema:      s.Map(),
			RecordTypes: s.RecordTypes().Map(),
			Documents:   res.Documents,
			Summary: types.ProfileSummary{
				Documents: len(res.Documents),
				Records:   s.Records(),
				Paths:     s.Len(),
			},
			Text: RenderSummary(s),
		}
		for _, doc := range res.Documents {
			if doc.Cached {
				output.Summary.CacheHits++
			}
			if doc.Truncated {
				output.Summary.Truncated = true
			}
		}

		if input.IncludeStats {
			output.Stats = typeprofile.Stats(s)
		}
		if input.IncludeJSONSchema {
			js, err := types.ToAny(jsonschema.Export(s, nil))
			if err != nil {
				return nil, types.ProfileTypesOutput{}, fmt.Errorf("rendering JSON Schema: %w", err)
			}
			output.JSONSchema = js
		}

		return nil, output, nil
	}
}
