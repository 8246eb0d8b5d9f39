// Package jsonschema renders a type profile as a JSON Schema (Draft 2020-12)
// document. Every observed type of a path is kept as an anyOf branch; nothing
// is narrowed to a single best-guess type.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

// ExportOptions controls schema rendering.
type ExportOptions struct {
	// Title is set on the root schema when non-empty.
	Title string
	// AdditionalProperties sets additionalProperties in object schemas.
	// Default: nil (not set)
	AdditionalProperties *bool
	// Describe adds a description with the observed counts to every property.
	// Default: true
	Describe bool
}

// DefaultExportOptions returns the default export options.
func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{Describe: true}
}

// scope identifies the value that encloses a field. The record itself and a
// record-level empty key share the parent path "", so top tells them apart.
type scope struct {
	parent string
	top    bool
}

// children indexes the fields of a schema by enclosing value.
type children struct {
	props map[scope][]*typeprofile.Field
	items map[scope]*typeprofile.Field
}

func indexChildren(s *typeprofile.Schema) *children {
	c := &children{
		props: make(map[scope][]*typeprofile.Field),
		items: make(map[scope]*typeprofile.Field),
	}
	for _, f := range s.Fields() {
		at := scope{parent: f.Parent, top: f.Top}
		if f.Item {
			c.items[at] = f
		} else {
			c.props[at] = append(c.props[at], f)
		}
	}
	return c
}

type exporter struct {
	schema *typeprofile.Schema
	opts   *ExportOptions
	index  *children
}

// Export renders s as a schema for the whole input: an array whose items
// describe the records.
//
// Dotted paths cannot always tell a key containing "." from a nested key.
// A collided path is rendered under the first position it was seen at and is
// never required, so the exported schema still accepts the profiled records
// unless AdditionalProperties is false.
func Export(s *typeprofile.Schema, opts *ExportOptions) *jsonschema.Schema {
	if opts == nil {
		opts = DefaultExportOptions()
	}
	if s == nil {
		s = typeprofile.NewSchema()
	}

	e := &exporter{schema: s, opts: opts, index: indexChildren(s)}

	root := &jsonschema.Schema{
		Version: jsonschema.Version,
		Type:    "array",
		Title:   opts.Title,
	}
	if s.Records() > 0 {
		root.Items = e.node(scope{top: true}, s.RecordTypes())
	}

	if opts.AdditionalProperties != nil {
		applyAdditionalProperties(root, *opts.AdditionalProperties)
	}
	return root
}

// ExportJSON renders s and marshals it with indentation.
func ExportJSON(s *typeprofile.Schema, opts *ExportOptions) ([]byte, error) {
	data, err := json.MarshalIndent(Export(s, opts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling exported schema: %w", err)
	}
	return data, nil
}

// node builds the schema for the values held by at, with the given histogram.
func (e *exporter) node(at scope, hist *typeprofile.Histogram) *jsonschema.Schema {
	kinds := orderedKinds(hist)

	branches := make([]*jsonschema.Schema, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case typeprofile.KindUndefined:
			// No JSON counterpart; absence is expressed through required.
		case typeprofile.KindObject:
			branches = append(branches, e.object(at))
		case typeprofile.KindArray:
			branches = append(branches, e.array(at))
		default:
			branches = append(branches, &jsonschema.Schema{Type: string(k)})
		}
	}

	switch len(branches) {
	case 0:
		return &jsonschema.Schema{}
	case 1:
		return branches[0]
	default:
		return &jsonschema.Schema{AnyOf: branches}
	}
}

// inner is the scope of values nested below f.
func inner(f *typeprofile.Field) scope {
	return scope{parent: f.Path}
}

func (e *exporter) object(at scope) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "object"}

	props := e.index.props[at]
	if len(props) == 0 {
		return schema
	}

	schema.Properties = jsonschema.NewProperties()
	required := make([]string, 0)
	for _, f := range props {
		if inner(f) == at {
			// An empty key collided with its own parent; stop here.
			continue
		}
		prop := e.node(inner(f), f.Types)
		if e.opts.Describe {
			prop.Description = describe(f)
		}
		schema.Properties.Set(f.Key, prop)
		if e.schema.Required(f) {
			required = append(required, f.Key)
		}
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

func (e *exporter) array(at scope) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "array"}
	if item, ok := e.index.items[at]; ok {
		schema.Items = e.node(inner(item), item.Types)
	}
	return schema
}

// orderedKinds returns the tags of hist in classification priority order.
func orderedKinds(hist *typeprofile.Histogram) []typeprofile.Kind {
	rank := make(map[typeprofile.Kind]int)
	for i, k := range typeprofile.Kinds() {
		rank[k] = i
	}
	kinds := hist.Kinds()
	sort.Slice(kinds, func(i, j int) bool { return rank[kinds[i]] < rank[kinds[j]] })
	return kinds
}

func describe(f *typeprofile.Field) string {
	desc := fmt.Sprintf("%s: seen %d times in %d records", f.Path, f.Total(), f.RecordCount())
	for _, tc := range typeprofile.SortedTypes(f.Types) {
		desc += fmt.Sprintf(", %s %d", tc.Type, tc.Count)
	}
	return desc
}

// applyAdditionalProperties recursively sets additionalProperties on all object schemas.
func applyAdditionalProperties(schema *jsonschema.Schema, allowed bool) {
	if schema == nil {
		return
	}

	if schema.Type == "object" {
		if allowed {
			schema.AdditionalProperties = jsonschema.TrueSchema
		} else {
			schema.AdditionalProperties = jsonschema.FalseSchema
		}

		if schema.Properties != nil {
			for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
				applyAdditionalProperties(pair.Value, allowed)
			}
		}
	}

	if schema.Type == "array" && schema.Items != nil {
		applyAdditionalProperties(schema.Items, allowed)
	}

	for _, s := range schema.AnyOf {
		applyAdditionalProperties(s, allowed)
	}
}
