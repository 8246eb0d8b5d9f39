package typeprofile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestClassify(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *int
	n := 3

	tests := []struct {
		name     string
		value    any
		expected Kind
	}{
		{"nil", nil, KindNull},
		{"undefined", Undefined, KindUndefined},
		{"bool", true, KindBoolean},
		{"float64", 1.5, KindNumber},
		{"int", 42, KindNumber},
		{"uint8", uint8(7), KindNumber},
		{"json number", json.Number("12"), KindNumber},
		{"string", "hello", KindString},
		{"empty string", "", KindString},
		{"any slice", []any{1}, KindArray},
		{"empty slice", []any{}, KindArray},
		{"typed slice", []string{"a"}, KindArray},
		{"fixed array", [2]int{1, 2}, KindArray},
		{"map", map[string]any{"a": 1}, KindObject},
		{"nil map", nilMap, KindObject},
		{"yaml map", map[any]any{1: "a"}, KindObject},
		{"ordered map", orderedmap.New[string, any](), KindObject},
		{"struct", struct{ A int }{1}, KindObject},
		{"nil pointer", nilPtr, KindNull},
		{"pointer to number", &n, KindNumber},
		{"named string", Kind("x"), KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.value))
		})
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 7)
	for _, k := range kinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("integer").Valid())
}

func TestUndefinedString(t *testing.T) {
	assert.Equal(t, "undefined", Undefined.(interface{ String() string }).String())
}
