// Package schema checks decoded records against a JSON Schema document,
// typically one exported from an earlier type profile.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WholeInput is the record index reported for errors that concern the record
// sequence itself rather than one record.
const WholeInput = -1

// RecordErrors lists the failures of one record.
type RecordErrors struct {
	Record int      `json:"record"`
	Errors []string `json:"errors"`
}

// Result is the outcome of validating a record sequence.
type Result struct {
	Valid   bool           `json:"valid"`
	Invalid int            `json:"invalid"` // Records with at least one error
	Records []RecordErrors `json:"records,omitempty"`
}

// Validator validates record sequences against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a JSON Schema given as text. The schema describes the
// whole record sequence, so its root is usually an array schema.
func NewValidator(schemaStr string) (*Validator, error) {
	var schemaValue any
	if err := json.Unmarshal([]byte(schemaStr), &schemaValue); err != nil {
		return nil, fmt.Errorf("parsing JSON Schema: %w", err)
	}
	return compileSchema(schemaValue)
}

// NewValidatorFromValue compiles a schema from any value that marshals to a
// JSON Schema document.
func NewValidatorFromValue(schema any) (*Validator, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return NewValidator(string(data))
}

func compileSchema(schemaValue any) (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	// Add the schema as a resource (doc must be valid json value, not io.Reader)
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// ValidateRecords validates records as one sequence and groups the failures
// by record index.
func (v *Validator) ValidateRecords(records []any) *Result {
	if records == nil {
		records = []any{}
	}

	err := v.schema.Validate(records)
	if err == nil {
		return &Result{Valid: true}
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return &Result{
			Records: []RecordErrors{{Record: WholeInput, Errors: []string{err.Error()}}},
		}
	}

	byRecord := make(map[int][]string)
	collectErrors(validationErr, byRecord)
	if len(byRecord) == 0 {
		// Only wrapper errors were reported; surface the summary.
		byRecord[WholeInput] = []string{validationErr.Error()}
	}

	result := &Result{Records: make([]RecordErrors, 0, len(byRecord))}
	for record, msgs := range byRecord {
		sort.Strings(msgs)
		result.Records = append(result.Records, RecordErrors{Record: record, Errors: dedupe(msgs)})
		if record != WholeInput {
			result.Invalid++
		}
	}
	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Record < result.Records[j].Record
	})
	return result
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// collectErrors recursively collects leaf errors (those without causes),
// keyed by the index of the record they were found in.
func collectErrors(err *jsonschema.ValidationError, byRecord map[int][]string) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		// Skip $ref and schema reference messages - they're not useful errors
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			record, path := splitLocation(err.InstanceLocation)
			if path != "" {
				errMsg = path + ": " + errMsg
			}
			byRecord[record] = append(byRecord[record], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, byRecord)
	}
}

// splitLocation separates the record index from the rest of an instance
// location. The remainder is rendered as a dotted path.
func splitLocation(loc []string) (int, string) {
	if len(loc) == 0 {
		return WholeInput, ""
	}
	record, err := strconv.Atoi(loc[0])
	if err != nil {
		return WholeInput, strings.Join(loc, ".")
	}
	return record, strings.Join(loc[1:], ".")
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
