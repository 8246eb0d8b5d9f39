// Package contenttype maps media types and file names onto the input formats
// the profiler can decode.
package contenttype

import (
	"bytes"
	"encoding/json"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON   Category = "json"
	NDJSON Category = "ndjson"
	YAML   Category = "yaml"
	CSV    Category = "csv"
	TSV    Category = "tsv"
	Text   Category = "text"
	Binary Category = "binary"
)

// Decodable reports whether records can be decoded from content of this category.
func (c Category) Decodable() bool {
	switch c {
	case JSON, NDJSON, YAML, CSV, TSV:
		return true
	}
	return false
}

// Classify returns the broad content category for a content-type header value.
// Uses mime.ParseMediaType to strip parameters (charset, boundary, etc.)
// before matching. Falls back to strings.ToLower for malformed values.
// Returns Binary for empty content-type strings.
func Classify(contentType string) Category {
	if contentType == "" {
		return Binary
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// Line-delimited JSON must be checked before the generic "json" match.
	switch mediaType {
	case "application/x-ndjson", "application/ndjson", "application/jsonl",
		"application/x-jsonlines", "application/jsonlines", "application/json-seq":
		return NDJSON
	}

	if strings.Contains(mediaType, "json") {
		return JSON
	}

	if strings.Contains(mediaType, "yaml") {
		return YAML
	}

	if mediaType == "text/csv" || mediaType == "application/csv" {
		return CSV
	}
	if mediaType == "text/tab-separated-values" {
		return TSV
	}

	if strings.HasPrefix(mediaType, "text/") {
		return Text
	}

	return Binary
}

// extensions covers the formats mime.TypeByExtension does not know reliably.
var extensions = map[string]Category{
	".json":   JSON,
	".ndjson": NDJSON,
	".jsonl":  NDJSON,
	".yaml":   YAML,
	".yml":    YAML,
	".csv":    CSV,
	".tsv":    TSV,
}

// FromPath classifies a file by its extension.
func FromPath(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := extensions[ext]; ok {
		return c
	}
	if ext == "" {
		return Binary
	}
	return Classify(mime.TypeByExtension(ext))
}

// Sniff guesses the category of untyped content. A single JSON value is
// JSON; several newline-separated JSON values are NDJSON; other UTF-8 text
// is Text.
func Sniff(data []byte) Category {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Text
	}
	if !utf8.Valid(trimmed) {
		return Binary
	}

	if json.Valid(trimmed) {
		return JSON
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		lines := bytes.Split(trimmed, []byte("\n"))
		for _, line := range lines {
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			if !json.Valid(line) {
				return Text
			}
		}
		return NDJSON
	}

	return Text
}

// Resolve picks the category from an explicit content type, then the file
// name, then the content itself.
func Resolve(contentType, path string, data []byte) Category {
	if contentType != "" {
		if c := Classify(contentType); c.Decodable() {
			return c
		}
	}
	if path != "" {
		if c := FromPath(path); c.Decodable() {
			return c
		}
	}
	if c := Sniff(data); c.Decodable() || contentType == "" {
		return c
	}
	return Classify(contentType)
}
