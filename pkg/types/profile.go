package types

import "github.com/usestring/typeprofile-mcp/pkg/typeprofile"

// ProfileTypesInput is the input for profile_types.
type ProfileTypesInput struct {
	Documents         []DocumentInput `json:"documents" jsonschema:"Documents to profile. Their records are combined in the given order."`
	Selector          string          `json:"selector,omitempty" jsonschema:"jq expression run on each document; every value it emits is one record. Example: .data.items[]"`
	MaxDepth          int             `json:"max_depth,omitempty" jsonschema:"Nesting limit (default: server PROFILE_MAX_DEPTH; negative disables the limit)"`
	IncludeStats      bool            `json:"include_stats,omitempty" jsonschema:"Add per-path statistics: frequency, nullable, optional, mixed"`
	IncludeJSONSchema bool            `json:"include_json_schema,omitempty" jsonschema:"Add a JSON Schema (Draft 2020-12) rendering of the profile"`
}

// FieldSummary is one path of a profile with its tag counts, most frequent first.
type FieldSummary struct {
	Path    string                  `json:"path"`
	Types   []typeprofile.TypeCount `json:"types"`
	Total   int                     `json:"total"`
	Records int                     `json:"records"`
}

// ProfileSummary holds the totals of a profiling run.
type ProfileSummary struct {
	Documents int  `json:"documents"`
	Records   int  `json:"records"`
	Paths     int  `json:"paths"`
	CacheHits int  `json:"cache_hits,omitempty"`
	Truncated bool `json:"truncated,omitempty"`
}

// ProfileTypesOutput is the output of profile_types.
type ProfileTypesOutput struct {
	// Fields lists every path in first-seen order.
	Fields []FieldSummary `json:"fields,omitzero"`

	// Schema is the plain {path: {tag: count}} mapping.
	Schema map[string]map[string]int `json:"schema,omitempty"`

	// RecordTypes counts the tags of the top-level records.
	RecordTypes map[string]int `json:"record_types,omitempty"`

	Stats      []typeprofile.FieldStat `json:"stats,omitzero"`
	JSONSchema any                     `json:"json_schema,omitempty"`
	Documents  []DocumentSummary       `json:"documents,omitzero"`
	Summary    ProfileSummary          `json:"summary"`

	// Text is a short human-readable rendering of the profile.
	Text string `json:"text"`
}
