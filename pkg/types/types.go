// Package types holds the input and output types of the typeprofile MCP tools.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DocumentInput is one document passed to a tool, inline or by local path.
type DocumentInput struct {
	Data        string `json:"data,omitempty" jsonschema:"Document content. JSON array, NDJSON, YAML, CSV or TSV. Either data or path is required."`
	Path        string `json:"path,omitempty" jsonschema:"Local file to read when data is empty. Its extension also guides format detection."`
	ContentType string `json:"content_type,omitempty" jsonschema:"Media type such as application/json, application/x-ndjson, application/yaml, text/csv. Sniffed when empty."`
	Label       string `json:"label,omitempty" jsonschema:"Name used for this document in the output (default: path or document[i])"`
}

// DocumentSummary reports what one document contributed to a run.
type DocumentSummary struct {
	Label     string   `json:"label"`
	Category  string   `json:"category"`
	Records   int      `json:"records"`
	Paths     int      `json:"paths,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`
	Cached    bool     `json:"cached,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
