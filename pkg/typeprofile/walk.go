package typeprofile

import (
	"fmt"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// member is one child of an object or array.
type member struct {
	key   string
	value any
}

// objectMembers lists the own keys of an object value. Plain Go maps are
// visited in sorted key order so that repeated runs agree; ordered maps keep
// their insertion order.
func objectMembers(v any) []member {
	switch obj := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]member, 0, len(keys))
		for _, k := range keys {
			out = append(out, member{key: k, value: obj[k]})
		}
		return out

	case *orderedmap.OrderedMap[string, any]:
		if obj == nil {
			return nil
		}
		out := make([]member, 0, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, member{key: pair.Key, value: pair.Value})
		}
		return out

	case map[any]any:
		out := make([]member, 0, len(obj))
		for k, val := range obj {
			out = append(out, member{key: fmt.Sprintf("%v", k), value: val})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
		return out
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Map {
		return nil
	}
	out := make([]member, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, member{key: fmt.Sprintf("%v", iter.Key().Interface()), value: iter.Value().Interface()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// arrayElements lists the elements of an array value in index order.
func arrayElements(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
