package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: profile_types
	AddTool(srv, &sdkmcp.Tool{
		Name:        "profile_types",
		Description: "Compute a type profile of a sequence of records: for every field path (dot-joined keys, array elements collapsed to index 0) count how often each type tag (null, undefined, boolean, number, string, object, array) was observed. Accepts JSON arrays, NDJSON, YAML and CSV/TSV, inline or by local path, with an optional jq selector choosing the records. Returns ordered fields, a {path: {tag: count}} schema map, a text summary, and optionally per-path stats and a JSON Schema.",
	}, ToolProfileTypes(d))

	// Tool 2: classify_value
	AddTool(srv, &sdkmcp.Tool{
		Name:        "classify_value",
		Description: "Return the type tag of one JSON value and its position in the tag priority order.",
	}, ToolClassifyValue(d))

	// Tool 3: validate_records
	AddTool(srv, &sdkmcp.Tool{
		Name:        "validate_records",
		Description: "Check the records of one or more documents against a JSON Schema describing the record sequence, such as json_schema from profile_types. Returns failing records with their errors. Use it to detect drift between a profiled sample and new data.",
	}, ToolValidateRecords(d))
}
