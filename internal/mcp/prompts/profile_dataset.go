package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleProfileDataset implements the dataset profiling workflow.
func HandleProfileDataset(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		path := argument(req, "path")
		selector := argument(req, "selector")

		var sb strings.Builder

		sb.WriteString("# Profile a Dataset\n\n")
		sb.WriteString("You are a data engineer reviewing an unfamiliar dataset before writing code against it. ")
		sb.WriteString("Your goal is to describe the shape of its records and point out every field whose type is not stable.\n\n")

		sb.WriteString("## Reading the Profile\n\n")
		sb.WriteString("- Paths join object keys with `.`; every array element is counted at index `0` of its array (`items.0.id`)\n")
		sb.WriteString("- Each path maps type tags (null, undefined, boolean, number, string, object, array) to the number of values seen\n")
		sb.WriteString("- Top-level records are not paths; their tags are in `record_types`\n")
		sb.WriteString("- The counts at a path add up to the number of values observed there, not the number of records\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Profile** - Run profile_types with `include_stats: true`\n")
		sb.WriteString("2. **Unstable fields** - List stats with `mixed: true` (several non-null types) first\n")
		sb.WriteString("3. **Optional and nullable fields** - Note `optional` and `nullable` paths with their `frequency`\n")
		sb.WriteString("4. **Summarize** - Propose a typed record definition, marking unions and optional fields\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		args := []string{"include_stats: true"}
		if path != "" {
			args = append([]string{fmt.Sprintf("documents: [{path: %q}]", path)}, args...)
		} else {
			args = append([]string{"documents: [{data: \"...\"}]"}, args...)
		}
		if selector != "" {
			args = append(args, fmt.Sprintf("selector: %q", selector))
		}
		sb.WriteString(fmt.Sprintf("profile_types(%s)\n", strings.Join(args, ", ")))
		sb.WriteString("```\n\n")

		sb.WriteString("## Limits\n\n")
		sb.WriteString(fmt.Sprintf("- At most %d records are read per document; `summary.truncated` tells when this was hit\n", cfg.MaxRecords))
		if cfg.MaxDepth > 0 {
			sb.WriteString(fmt.Sprintf("- Values nested deeper than %d levels fail with DEPTH_EXCEEDED; pass `max_depth: -1` to lift the limit\n", cfg.MaxDepth))
		}

		return &sdkmcp.GetPromptResult{
			Description: "Dataset profiling workflow",
			Messages: []*sdkmcp.PromptMessage{
				{Role: "user", Content: &sdkmcp.TextContent{Text: sb.String()}},
			},
		}, nil
	}
}

// HandleDetectDrift implements the baseline comparison workflow.
func HandleDetectDrift(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		baseline := argument(req, "baseline_path")
		batch := argument(req, "batch_path")
		if baseline == "" {
			baseline = "<baseline file>"
		}
		if batch == "" {
			batch = "<batch file>"
		}

		var sb strings.Builder

		sb.WriteString("# Detect Drift Against a Baseline\n\n")
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Profile the baseline** with `include_json_schema: true`\n")
		sb.WriteString("2. **Validate the batch** by passing the returned `json_schema`, serialized as text, to validate_records\n")
		sb.WriteString("3. **Profile the batch** and compare its `schema` map with the baseline one path by path\n")
		sb.WriteString("4. **Report** new paths, vanished paths, and new type tags on existing paths\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("profile_types(documents: [{path: %q}], include_json_schema: true)\n", baseline))
		sb.WriteString(fmt.Sprintf("validate_records(documents: [{path: %q}], schema: \"<json_schema>\")\n", batch))
		sb.WriteString(fmt.Sprintf("profile_types(documents: [{path: %q}])\n", batch))
		sb.WriteString("```\n\n")
		sb.WriteString(fmt.Sprintf("At most %d records are read per document.\n", cfg.MaxRecords))

		return &sdkmcp.GetPromptResult{
			Description: "Drift detection workflow",
			Messages: []*sdkmcp.PromptMessage{
				{Role: "user", Content: &sdkmcp.TextContent{Text: sb.String()}},
			},
		}, nil
	}
}

func argument(req *sdkmcp.GetPromptRequest, name string) string {
	if req == nil || req.Params == nil || req.Params.Arguments == nil {
		return ""
	}
	return req.Params.Arguments[name]
}
