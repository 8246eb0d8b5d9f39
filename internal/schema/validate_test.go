package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func records(t *testing.T, data string) []any {
	t.Helper()
	var out []any
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("decoding records: %v", err)
	}
	return out
}

const userSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {"name": {"type": "string"}, "age": {"type": "number"}},
		"required": ["name"]
	}
}`

func TestValidator_ValidRecords(t *testing.T) {
	validator, err := NewValidator(userSchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := validator.ValidateRecords(records(t, `[{"name": "Alice", "age": 30}, {"name": "Bob"}]`))
	if !result.Valid {
		t.Errorf("expected valid, got errors: %v", result.Records)
	}
	if result.Invalid != 0 {
		t.Errorf("expected 0 invalid records, got %d", result.Invalid)
	}
}

func TestValidator_GroupsByRecord(t *testing.T) {
	validator, err := NewValidator(userSchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := validator.ValidateRecords(records(t, `[{"name": "Alice"}, {"age": 30}, {"name": 1, "age": "x"}]`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if result.Invalid != 2 {
		t.Fatalf("expected 2 invalid records, got %d: %v", result.Invalid, result.Records)
	}
	if result.Records[0].Record != 1 || result.Records[1].Record != 2 {
		t.Errorf("unexpected record order: %v", result.Records)
	}

	third := strings.Join(result.Records[1].Errors, "\n")
	if !strings.Contains(third, "name") || !strings.Contains(third, "age") {
		t.Errorf("expected errors to name both fields, got: %s", third)
	}
}

func TestValidator_WholeInput(t *testing.T) {
	validator, err := NewValidator(`{"type": "array", "maxItems": 1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := validator.ValidateRecords(records(t, `[1, 2]`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if result.Invalid != 0 {
		t.Errorf("sequence-level errors should not count as invalid records, got %d", result.Invalid)
	}
	if result.Records[0].Record != WholeInput {
		t.Errorf("expected whole-input error, got record %d", result.Records[0].Record)
	}
}

func TestNewValidator_Invalid(t *testing.T) {
	if _, err := NewValidator(`{not json`); err == nil {
		t.Error("expected parse error")
	}
	if _, err := NewValidator(`{"type": 12}`); err == nil {
		t.Error("expected compile error")
	}
}

func TestNewValidatorFromValue(t *testing.T) {
	validator, err := NewValidatorFromValue(map[string]any{"type": "array", "items": map[string]any{"type": "string"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result := validator.ValidateRecords(nil); !result.Valid {
		t.Errorf("empty input should be valid, got %v", result.Records)
	}
	if result := validator.ValidateRecords([]any{"a", 1.0}); result.Valid {
		t.Error("expected invalid for number item")
	}
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		loc    []string
		record int
		path   string
	}{
		{nil, WholeInput, ""},
		{[]string{"3"}, 3, ""},
		{[]string{"0", "user", "roles", "1"}, 0, "user.roles.1"},
	}
	for _, tt := range tests {
		record, path := splitLocation(tt.loc)
		if record != tt.record || path != tt.path {
			t.Errorf("splitLocation(%v) = %d, %q; want %d, %q", tt.loc, record, path, tt.record, tt.path)
		}
	}
}
