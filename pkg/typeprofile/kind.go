package typeprofile

import (
	"encoding/json"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the type tag recorded for a value.
type Kind string

const (
	KindNull      Kind = "null"
	KindUndefined Kind = "undefined"
	KindBoolean   Kind = "boolean"
	KindNumber    Kind = "number"
	KindString    Kind = "string"
	KindObject    Kind = "object"
	KindArray     Kind = "array"
)

// Kinds returns the closed set of type tags in classification priority order.
func Kinds() []Kind {
	return []Kind{KindNull, KindUndefined, KindBoolean, KindNumber, KindString, KindObject, KindArray}
}

// Valid reports whether k is one of the known type tags.
func (k Kind) Valid() bool {
	switch k {
	case KindNull, KindUndefined, KindBoolean, KindNumber, KindString, KindObject, KindArray:
		return true
	}
	return false
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that is present in a record but carries no value.
// JSON cannot express it; decoders use it for cells missing from short CSV rows,
// and Go callers may place it in records directly.
var Undefined any = undefined{}

// Classify returns the type tag for v. It never fails: values of unknown Go
// types that are neither slices nor maps are reported as objects.
func Classify(v any) Kind {
	if v == nil {
		return KindNull
	}

	switch v.(type) {
	case undefined:
		return KindUndefined
	case []any:
		return KindArray
	case map[string]any, map[any]any, *orderedmap.OrderedMap[string, any]:
		return KindObject
	case bool:
		return KindBoolean
	case string:
		return KindString
	case json.Number:
		return KindNumber
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return Classify(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		return KindObject
	case reflect.Bool:
		return KindBoolean
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	default:
		return KindObject
	}
}
