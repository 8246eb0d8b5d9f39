// Package decode turns raw documents (JSON, NDJSON, YAML, CSV/TSV) into the
// record sequences the type profiler walks.
package decode

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/usestring/typeprofile-mcp/internal/query"
	"github.com/usestring/typeprofile-mcp/pkg/contenttype"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

var (
	// ErrNotSequence is returned when a document without a selector is not a sequence of records.
	ErrNotSequence = errors.New("top-level value is not an array of records")
	// ErrUnsupportedContent is returned for content types that carry no records.
	ErrUnsupportedContent = errors.New("unsupported content type")
	// ErrMalformed is returned when a document does not parse in its declared format.
	ErrMalformed = errors.New("malformed document")
)

const maxLineBytes = 16 * 1024 * 1024

// Options controls decoding.
type Options struct {
	// Selector is a jq expression run against each decoded document; every value
	// it emits becomes a record. Empty means the document is the record sequence.
	Selector string
	// MaxRecords caps the number of records kept. <= 0 means no cap.
	MaxRecords int
	// Path is used to infer the format when ContentType is empty.
	Path string
}

// Result is the decoded record sequence.
type Result struct {
	Category  contenttype.Category `json:"category"`
	Records   []any                `json:"-"`
	Truncated bool                 `json:"truncated,omitempty"` // MaxRecords was reached
	Warnings  []string             `json:"warnings,omitempty"`  // Selector runtime errors
}

// Engine dispatches decoding by content category.
type Engine struct{}

// NewEngine creates a new decoding engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Decode parses data according to contentType (or opts.Path, or sniffing)
// and returns the records it holds.
func (e *Engine) Decode(ctx context.Context, data []byte, contentType string, opts Options) (*Result, error) {
	var sel *query.Selector
	if opts.Selector != "" {
		var err error
		sel, err = query.Compile(opts.Selector)
		if err != nil {
			return nil, err
		}
	}

	category := contenttype.Resolve(contentType, opts.Path, data)

	var docs []any
	var err error
	switch category {
	case contenttype.JSON:
		docs, err = decodeJSON(data)
	case contenttype.NDJSON:
		docs, err = decodeNDJSON(data)
	case contenttype.YAML:
		docs, err = decodeYAML(data)
	case contenttype.CSV, contenttype.TSV:
		if sel != nil {
			return nil, fmt.Errorf("%w: selectors are not supported for %s input", ErrUnsupportedContent, category)
		}
		var records []any
		records, err = decodeCSV(data, category == contenttype.TSV)
		if err != nil {
			return nil, err
		}
		return finish(&Result{Category: category, Records: records}, opts.MaxRecords), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, category)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Category: category}
	if sel == nil {
		result.Records, err = recordsFromDocs(category, docs)
		if err != nil {
			return nil, err
		}
		return finish(result, opts.MaxRecords), nil
	}

	for i, doc := range docs {
		// One extra value lets finish tell a full result from a truncated one.
		remaining := 0
		if opts.MaxRecords > 0 {
			if len(result.Records) > opts.MaxRecords {
				break
			}
			remaining = opts.MaxRecords - len(result.Records) + 1
		}
		res := sel.Select(ctx, doc, fmt.Sprintf("document[%d]", i), remaining)
		result.Records = append(result.Records, res.Values...)
		result.Warnings = append(result.Warnings, res.Errors...)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return finish(result, opts.MaxRecords), nil
}

// recordsFromDocs applies the no-selector contract: a single document must be
// an array whose elements are the records; line- or document-delimited
// formats with several documents treat each document as one record.
func recordsFromDocs(category contenttype.Category, docs []any) ([]any, error) {
	if category == contenttype.NDJSON {
		return docs, nil
	}
	if len(docs) == 1 {
		if arr, ok := docs[0].([]any); ok {
			return arr, nil
		}
		return nil, fmt.Errorf("%w: got %s", ErrNotSequence, typeprofile.Classify(docs[0]))
	}
	return docs, nil
}

func finish(r *Result, maxRecords int) *Result {
	if maxRecords > 0 && len(r.Records) > maxRecords {
		r.Records = r.Records[:maxRecords]
		r.Truncated = true
	}
	if r.Records == nil {
		r.Records = []any{}
	}
	return r
}

func decodeJSON(data []byte) ([]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformed, err)
	}
	return []any{doc}, nil
}

func decodeNDJSON(data []byte) ([]any, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	docs := make([]any, 0)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var doc any
		if err := json.Unmarshal(text, &doc); err != nil {
			return nil, fmt.Errorf("%w: ndjson line %d: %v", ErrMalformed, line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: ndjson: %v", ErrMalformed, err)
	}
	return docs, nil
}

func decodeYAML(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	docs := make([]any, 0)
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: yaml document %d: %v", ErrMalformed, len(docs)+1, err)
		}
		docs = append(docs, normalizeYAML(doc))
	}
	return docs, nil
}

// normalizeYAML rewrites yaml.v3 values into the JSON data model: string map
// keys, timestamps as strings, and numbers jq can handle.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = normalizeYAML(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeYAML(child)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case uint64:
		if val <= math.MaxInt64 {
			return int(val)
		}
		return float64(val)
	case int64:
		return int(val)
	default:
		return v
	}
}

// decodeCSV reads a header row and turns every following row into a record
// whose keys keep the column order. Cells missing from short rows are
// recorded as typeprofile.Undefined; extra cells get positional names.
func decodeCSV(data []byte, tabs bool) ([]any, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.ReuseRecord = false
	if tabs {
		r.Comma = '\t'
		r.LazyQuotes = true
	}

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv header: %v", ErrMalformed, err)
	}

	records := make([]any, 0)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv row %d: %v", ErrMalformed, len(records)+2, err)
		}

		rec := orderedmap.New[string, any](len(header))
		for i, name := range header {
			if i < len(row) {
				rec.Set(name, row[i])
			} else {
				rec.Set(name, typeprofile.Undefined)
			}
		}
		for i := len(header); i < len(row); i++ {
			rec.Set(fmt.Sprintf("column%d", i+1), row[i])
		}
		records = append(records, rec)
	}
	return records, nil
}
