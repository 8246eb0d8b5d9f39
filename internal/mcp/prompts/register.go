package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Profile a dataset
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "profile_dataset",
		Description: "RECOMMENDED: Profile the field types of a dataset and report inconsistencies. Provides the workflow and how to read profile_types output.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "path",
				Description: "Local file holding the records (JSON array, NDJSON, YAML, CSV)",
				Required:    false,
			},
			{
				Name:        "selector",
				Description: "jq expression selecting the records inside each document (e.g. .data.items[])",
				Required:    false,
			},
		},
	}, HandleProfileDataset(cfg))

	// Prompt 2: Detect drift against a baseline
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "detect_drift",
		Description: "Compare a new batch of records with a baseline sample: export the baseline profile as JSON Schema, validate the batch, and explain the differences.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "baseline_path",
				Description: "Local file with the baseline records",
				Required:    false,
			},
			{
				Name:        "batch_path",
				Description: "Local file with the records to check",
				Required:    false,
			},
		},
	}, HandleDetectDrift(cfg))
}
