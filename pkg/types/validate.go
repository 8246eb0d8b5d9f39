package types

// ValidateRecordsInput is the input for validate_records.
type ValidateRecordsInput struct {
	Documents []DocumentInput `json:"documents" jsonschema:"Documents whose records are checked, combined in the given order"`
	Selector  string          `json:"selector,omitempty" jsonschema:"jq expression run on each document; every value it emits is one record"`
	Schema    string          `json:"schema" jsonschema:"JSON Schema text describing the record sequence, e.g. json_schema from profile_types"`
	MaxErrors int             `json:"max_errors,omitempty" jsonschema:"Max failing records to report (default: 20)"`
}

// RecordFailure lists the errors of one record. Record is -1 for errors about
// the sequence as a whole.
type RecordFailure struct {
	Record int      `json:"record"`
	Errors []string `json:"errors"`
}

// ValidateRecordsOutput is the output of validate_records.
type ValidateRecordsOutput struct {
	Valid     bool              `json:"valid"`
	Records   int               `json:"records"`
	Invalid   int               `json:"invalid"`
	Failures  []RecordFailure   `json:"failures,omitzero"`
	Truncated bool              `json:"truncated,omitempty"` // More failures than max_errors
	Documents []DocumentSummary `json:"documents,omitzero"`
}
