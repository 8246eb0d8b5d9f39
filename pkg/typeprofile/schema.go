package typeprofile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Histogram counts how often each type tag was observed. Tags iterate in the
// order they were first seen.
type Histogram struct {
	counts *orderedmap.OrderedMap[Kind, int]
}

func newHistogram() *Histogram {
	return &Histogram{counts: orderedmap.New[Kind, int]()}
}

func (h *Histogram) add(k Kind, n int) {
	cur, _ := h.counts.Get(k)
	h.counts.Set(k, cur+n)
}

// Count returns the number of observations of k.
func (h *Histogram) Count(k Kind) int {
	n, _ := h.counts.Get(k)
	return n
}

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	total := 0
	for pair := h.counts.Oldest(); pair != nil; pair = pair.Next() {
		total += pair.Value
	}
	return total
}

// Len returns the number of distinct tags.
func (h *Histogram) Len() int {
	return h.counts.Len()
}

// Kinds returns the observed tags in first-seen order.
func (h *Histogram) Kinds() []Kind {
	kinds := make([]Kind, 0, h.counts.Len())
	for pair := h.counts.Oldest(); pair != nil; pair = pair.Next() {
		kinds = append(kinds, pair.Key)
	}
	return kinds
}

// Map returns the histogram as a plain map.
func (h *Histogram) Map() map[string]int {
	out := make(map[string]int, h.counts.Len())
	for pair := h.counts.Oldest(); pair != nil; pair = pair.Next() {
		out[string(pair.Key)] = pair.Value
	}
	return out
}

// MarshalJSON encodes the histogram as an object in first-seen order.
func (h *Histogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := h.counts.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(string(pair.Key))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(pair.Value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Field is the histogram for one field path together with where the path
// sits in the record tree.
type Field struct {
	Path   string     // dotted path, e.g. "items.0.id"
	Parent string     // path of the enclosing object or array ("" for record level)
	Key    string     // last object key, or "0" for an array step
	Item   bool       // true when the path was reached by descending into an array
	Top    bool       // true when the enclosing value is the record itself
	Types  *Histogram // observed type tags

	records  *roaring.Bitmap
	collided bool
}

func newField(path, parent, key string, item, top bool) *Field {
	return &Field{
		Path:    path,
		Parent:  parent,
		Key:     key,
		Item:    item,
		Top:     top,
		Types:   newHistogram(),
		records: roaring.New(),
	}
}

// Collided reports whether values reached this path from more than one
// position in the record tree. Keys containing dots can do this, and so can
// empty keys or an object key "0" next to array elements. Parent, Key, Item
// and Top describe the first position seen.
func (f *Field) Collided() bool {
	return f.collided
}

func (f *Field) sameOrigin(parent, key string, item, top bool) bool {
	return f.Parent == parent && f.Key == key && f.Item == item && f.Top == top
}

// Count returns how many values of kind k were seen at this path.
func (f *Field) Count(k Kind) int {
	return f.Types.Count(k)
}

// Total returns how many values were seen at this path.
func (f *Field) Total() int {
	return f.Types.Total()
}

// RecordCount returns the number of distinct records that reached this path.
func (f *Field) RecordCount() int {
	return int(f.records.GetCardinality())
}

// RecordIndexes returns the zero-based indexes of the records that reached this path.
func (f *Field) RecordIndexes() []uint32 {
	return f.records.ToArray()
}

// Schema maps field paths to their type histograms.
type Schema struct {
	fields      *orderedmap.OrderedMap[string, *Field]
	recordTypes *Histogram
	records     int
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{
		fields:      orderedmap.New[string, *Field](),
		recordTypes: newHistogram(),
	}
}

func (s *Schema) observe(path, parent, key string, item, top bool, kind Kind, record uint32) {
	f, ok := s.fields.Get(path)
	if !ok {
		f = newField(path, parent, key, item, top)
		s.fields.Set(path, f)
	} else if !f.sameOrigin(parent, key, item, top) {
		f.collided = true
	}
	f.Types.add(kind, 1)
	f.records.Add(record)
}

// Len returns the number of distinct paths.
func (s *Schema) Len() int {
	return s.fields.Len()
}

// Records returns the number of top-level records that were analyzed.
func (s *Schema) Records() int {
	return s.records
}

// RecordTypes returns the type histogram of the top-level records themselves.
func (s *Schema) RecordTypes() *Histogram {
	return s.recordTypes
}

// Get returns the field at path.
func (s *Schema) Get(path string) (*Field, bool) {
	return s.fields.Get(path)
}

// Paths returns all paths in first-seen order.
func (s *Schema) Paths() []string {
	paths := make([]string, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// Fields returns all fields in first-seen order.
func (s *Schema) Fields() []*Field {
	fields := make([]*Field, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, pair.Value)
	}
	return fields
}

// Map returns the schema as plain nested maps: path -> tag -> count.
func (s *Schema) Map() map[string]map[string]int {
	out := make(map[string]map[string]int, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.Types.Map()
	}
	return out
}

// MarshalJSON encodes the schema as {path: {tag: count}} in first-seen order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		hist, err := pair.Value.Types.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(hist)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Merge adds the counts of other into s. Record indexes in other are shifted
// past the records already in s, so coverage stays distinct per record.
// Merging fails with ErrTooManyRecords, leaving s unchanged, when the combined
// record count would not fit the coverage index.
// other is not modified.
func (s *Schema) Merge(other *Schema) error {
	if other == nil {
		return nil
	}
	if int64(s.records)+int64(other.records) > MaxRecords {
		return fmt.Errorf("merging %d records into %d: %w", other.records, s.records, ErrTooManyRecords)
	}

	offset := uint32(s.records)
	for pair := other.fields.Oldest(); pair != nil; pair = pair.Next() {
		src := pair.Value
		dst, ok := s.fields.Get(pair.Key)
		if !ok {
			dst = newField(src.Path, src.Parent, src.Key, src.Item, src.Top)
			s.fields.Set(pair.Key, dst)
		} else if !dst.sameOrigin(src.Parent, src.Key, src.Item, src.Top) {
			dst.collided = true
		}
		if src.collided {
			dst.collided = true
		}
		for tp := src.Types.counts.Oldest(); tp != nil; tp = tp.Next() {
			dst.Types.add(tp.Key, tp.Value)
		}
		dst.records.Or(roaring.AddOffset(src.records, offset))
	}

	for tp := other.recordTypes.counts.Oldest(); tp != nil; tp = tp.Next() {
		s.recordTypes.add(tp.Key, tp.Value)
	}
	s.records += other.records
	return nil
}
