package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/internal/config"
	"github.com/usestring/typeprofile-mcp/internal/profiler"
	"github.com/usestring/typeprofile-mcp/internal/query"
	"github.com/usestring/typeprofile-mcp/pkg/decode"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
	"github.com/usestring/typeprofile-mcp/pkg/types"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	c, err := cache.NewProfileCache(8)
	require.NoError(t, err)
	return &Deps{
		Config: &config.Config{
			MaxDepth:      typeprofile.DefaultMaxDepth,
			Workers:       2,
			MaxInputBytes: 1 << 20,
			MaxRecords:    1000,
		},
		Cache:    c,
		Profiler: profiler.New(c, 2),
	}
}

func TestProfileTypes_Basic(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{
		Documents: []types.DocumentInput{{Data: `[{"a": 1}, {"a": 2}, {"a": "x"}]`}},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]int{"a": {"number": 2, "string": 1}}, out.Schema)
	assert.Equal(t, map[string]int{"object": 3}, out.RecordTypes)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "a", out.Fields[0].Path)
	assert.Equal(t, typeprofile.KindNumber, out.Fields[0].Types[0].Type)
	assert.Equal(t, 3, out.Fields[0].Total)
	assert.Equal(t, types.ProfileSummary{Documents: 1, Records: 3, Paths: 1}, out.Summary)
	assert.Nil(t, out.Stats)
	assert.Nil(t, out.JSONSchema)
	assert.True(t, strings.HasPrefix(out.Text, "3 records, 1 paths"))
}

func TestProfileTypes_StatsAndJSONSchema(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{
		Documents:         []types.DocumentInput{{Data: `[{"a": [1, "x"]}, {"b": null}]`}},
		IncludeStats:      true,
		IncludeJSONSchema: true,
	})
	require.NoError(t, err)

	require.Len(t, out.Stats, 3)
	assert.Equal(t, "a.0", out.Stats[1].Path)
	assert.True(t, out.Stats[1].Mixed)

	js, ok := out.JSONSchema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", js["type"])
}

func TestProfileTypes_EmptyKeyJSONSchema(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{
		Documents:         []types.DocumentInput{{Data: `[{"": {"x": 1}}]`}},
		IncludeJSONSchema: true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"object": 1}, out.Schema[""])
	assert.Equal(t, map[string]int{"number": 1}, out.Schema["x"])

	js, ok := out.JSONSchema.(map[string]any)
	require.True(t, ok)
	items, ok := js["items"].(map[string]any)
	require.True(t, ok)
	props, ok := items["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "")
	assert.NotContains(t, props, "x")
}

func TestProfileTypes_MultipleDocumentsAndCache(t *testing.T) {
	d := newTestDeps(t)
	input := types.ProfileTypesInput{
		Documents: []types.DocumentInput{
			{Data: `[{"id": 1}]`, Label: "json"},
			{Data: "id,name\n2,Bob\n", ContentType: "text/csv", Label: "csv"},
		},
	}

	_, out, err := ToolProfileTypes(d)(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"number": 1, "string": 1}, out.Schema["id"])
	assert.Equal(t, 0, out.Summary.CacheHits)
	assert.Equal(t, []string{"json", "csv"}, []string{out.Documents[0].Label, out.Documents[1].Label})

	_, out, err = ToolProfileTypes(d)(context.Background(), nil, input)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Summary.CacheHits)
	assert.Equal(t, 2, out.Summary.Records)
}

func TestProfileTypes_FromPath(t *testing.T) {
	d := newTestDeps(t)
	path := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Alice\n- name: Bob\n  age: 40\n"), 0o644))

	_, out, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{
		Documents: []types.DocumentInput{{Path: path}},
	})
	require.NoError(t, err)
	assert.Equal(t, "yaml", out.Documents[0].Category)
	assert.Equal(t, path, out.Documents[0].Label)
	assert.Equal(t, map[string]int{"number": 1}, out.Schema["age"])
}

func TestProfileTypes_MaxDepth(t *testing.T) {
	d := newTestDeps(t)
	doc := []types.DocumentInput{{Data: `[{"a": {"b": {"c": 1}}}]`}}

	_, _, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{Documents: doc, MaxDepth: 2})
	require.Error(t, err)
	var coded *CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, ErrCodeDepthExceeded, coded.Code)

	_, out, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{Documents: doc, MaxDepth: -1})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Summary.Paths)
}

func TestProfileTypes_InputErrors(t *testing.T) {
	d := newTestDeps(t)
	d.Config.MaxInputBytes = 8

	tests := []struct {
		name  string
		input types.ProfileTypesInput
		code  string
	}{
		{"no documents", types.ProfileTypesInput{}, ErrCodeInvalidInput},
		{"empty document", types.ProfileTypesInput{Documents: []types.DocumentInput{{}}}, ErrCodeInvalidInput},
		{"too large", types.ProfileTypesInput{Documents: []types.DocumentInput{{Data: `[1,2,3,4,5]`}}}, ErrCodeInvalidInput},
		{"missing file", types.ProfileTypesInput{Documents: []types.DocumentInput{{Path: "/nonexistent/file.json"}}}, ErrCodeNotFound},
		{"not a sequence", types.ProfileTypesInput{Documents: []types.DocumentInput{{Data: `{"a":1}`}}}, ErrCodeDecodeError},
		{"bad selector", types.ProfileTypesInput{Documents: []types.DocumentInput{{Data: `[]`}}, Selector: ".["}, ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ToolProfileTypes(d)(context.Background(), nil, tt.input)
			require.Error(t, err)
			var coded *CodedError
			require.True(t, errors.As(err, &coded), "expected coded error, got %v", err)
			assert.Equal(t, tt.code, coded.Code)
		})
	}
}

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		value    any
		want     string
		priority int
	}{
		{nil, "null", 0},
		{true, "boolean", 2},
		{float64(3), "number", 3},
		{"x", "string", 4},
		{map[string]any{}, "object", 5},
		{[]any{}, "array", 6},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			_, out, err := ToolClassifyValue(nil)(context.Background(), nil, types.ClassifyValueInput{Value: tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Type)
			assert.Equal(t, tt.priority, out.Priority)
		})
	}
}

func TestValidateRecords(t *testing.T) {
	d := newTestDeps(t)

	_, profiled, err := ToolProfileTypes(d)(context.Background(), nil, types.ProfileTypesInput{
		Documents:         []types.DocumentInput{{Data: `[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`}},
		IncludeJSONSchema: true,
	})
	require.NoError(t, err)
	schemaText, err := jsonText(profiled.JSONSchema)
	require.NoError(t, err)

	_, out, err := ToolValidateRecords(d)(context.Background(), nil, types.ValidateRecordsInput{
		Documents: []types.DocumentInput{{Data: `[{"id": 3, "name": "c"}]`}, {Data: `[{"id": "4"}]`}},
		Schema:    schemaText,
	})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, 2, out.Records)
	assert.Equal(t, 1, out.Invalid)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, 1, out.Failures[0].Record)
	assert.Len(t, out.Documents, 2)
}

func TestValidateRecords_MaxErrors(t *testing.T) {
	d := newTestDeps(t)

	_, out, err := ToolValidateRecords(d)(context.Background(), nil, types.ValidateRecordsInput{
		Documents: []types.DocumentInput{{Data: `["a", "b", "c"]`}},
		Schema:    `{"type": "array", "items": {"type": "number"}}`,
		MaxErrors: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Invalid)
	assert.Len(t, out.Failures, 2)
	assert.True(t, out.Truncated)
}

func TestValidateRecords_BadSchema(t *testing.T) {
	d := newTestDeps(t)

	for _, s := range []string{"", "{oops"} {
		_, _, err := ToolValidateRecords(d)(context.Background(), nil, types.ValidateRecordsInput{
			Documents: []types.DocumentInput{{Data: `[]`}},
			Schema:    s,
		})
		var coded *CodedError
		require.True(t, errors.As(err, &coded))
		assert.Equal(t, ErrCodeInvalidInput, coded.Code)
	}
}

func TestWrapProfileError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{typeprofile.ErrDepthExceeded, ErrCodeDepthExceeded},
		{query.ErrInvalidExpression, ErrCodeInvalidInput},
		{typeprofile.ErrTooManyRecords, ErrCodeInvalidInput},
		{decode.ErrMalformed, ErrCodeDecodeError},
		{decode.ErrUnsupportedContent, ErrCodeDecodeError},
		{context.DeadlineExceeded, ErrCodeTimeout},
		{errors.New("boom"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := WrapProfileError(fmt.Errorf("document 0: %w", tt.err))
			var coded *CodedError
			require.True(t, errors.As(err, &coded))
			assert.Equal(t, tt.code, coded.Code)
			assert.True(t, errors.Is(err, tt.err))
		})
	}

	assert.Nil(t, WrapProfileError(nil))
	already := ErrInvalidInput("x")
	assert.Same(t, already, WrapProfileError(already))
}

func TestRenderSummary(t *testing.T) {
	records := make([]any, 0, 1500)
	for i := 0; i < 1500; i++ {
		records = append(records, map[string]any{"id": i, "tags": []any{"x"}})
	}
	s, err := typeprofile.New(records).Schema()
	require.NoError(t, err)

	text := RenderSummary(s)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1,500 records, 3 paths (records: object 1,500)", lines[0])
	assert.Equal(t, "id      number 1,500", lines[1])
	assert.Equal(t, "tags    array 1,500", lines[2])
	assert.Equal(t, "tags.0  string 1,500", lines[3])
}

func TestRenderSummary_CapsFields(t *testing.T) {
	rec := make(map[string]any)
	for i := 0; i < maxTextFields+5; i++ {
		rec[fmt.Sprintf("k%03d", i)] = i
	}
	s, err := typeprofile.New([]any{rec}).Schema()
	require.NoError(t, err)

	assert.Contains(t, RenderSummary(s), "... 5 more paths")
}
