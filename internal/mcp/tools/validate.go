package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/internal/profiler"
	"github.com/usestring/typeprofile-mcp/internal/schema"
	"github.com/usestring/typeprofile-mcp/pkg/types"
)

const defaultMaxErrors = 20

// ToolValidateRecords checks the records of one or more documents against a
// JSON Schema, usually one exported by profile_types from an earlier sample.
func ToolValidateRecords(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ValidateRecordsInput) (*sdkmcp.CallToolResult, types.ValidateRecordsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ValidateRecordsInput) (*sdkmcp.CallToolResult, types.ValidateRecordsOutput, error) {
		if strings.TrimSpace(input.Schema) == "" {
			return nil, types.ValidateRecordsOutput{}, ErrInvalidInput("schema is required")
		}
		validator, err := schema.NewValidator(input.Schema)
		if err != nil {
			return nil, types.ValidateRecordsOutput{}, ErrInvalidInput(fmt.Sprintf("invalid schema: %v", err))
		}

		docs, err := d.LoadDocuments(input.Documents)
		if err != nil {
			return nil, types.ValidateRecordsOutput{}, err
		}

		collected, err := d.Profiler.Collect(ctx, &profiler.Request{
			Documents:  docs,
			Selector:   input.Selector,
			MaxRecords: d.Config.MaxRecords,
		})
		if err != nil {
			return nil, types.ValidateRecordsOutput{}, WrapProfileError(err)
		}

		result := validator.ValidateRecords(collected.Records)

		maxErrors := input.MaxErrors
		if maxErrors <= 0 {
			maxErrors = defaultMaxErrors
		}

		output := types.ValidateRecordsOutput{
			Valid:     result.Valid,
			Records:   len(collected.Records),
			Invalid:   result.Invalid,
			Documents: collected.Documents,
		}
		for _, re := range result.Records {
			if len(output.Failures) == maxErrors {
				output.Truncated = true
				break
			}
			output.Failures = append(output.Failures, types.RecordFailure{Record: re.Record, Errors: re.Errors})
		}

		return nil, output, nil
	}
}
