package typeprofile

import (
	"sort"
	"strings"
)

// TypeCount is one histogram bucket.
type TypeCount struct {
	Type  Kind `json:"type"`
	Count int  `json:"count"`
}

// FieldStat summarizes one path of a schema.
type FieldStat struct {
	Path        string      `json:"path"`
	Types       []TypeCount `json:"types"`       // Most frequent first
	Occurrences int         `json:"occurrences"` // Values seen at this path
	Records     int         `json:"records"`     // Distinct records reaching this path
	Frequency   float64     `json:"frequency"`   // Records / total records (0.0-1.0)
	Depth       int         `json:"depth"`       // Number of path segments
	Nullable    bool        `json:"nullable"`    // Null observed at least once
	Optional    bool        `json:"optional"`    // Missing or undefined in some enclosing object
	Mixed       bool        `json:"mixed"`       // More than one non-null, defined type
}

// ParentObjects returns how many objects enclosed the path of f, which is the
// number of chances the key had to appear. Array item fields return 0.
func (s *Schema) ParentObjects(f *Field) int {
	if f.Item {
		return 0
	}
	if f.Top {
		return s.recordTypes.Count(KindObject)
	}
	parent, ok := s.fields.Get(f.Parent)
	if !ok {
		return 0
	}
	return parent.Count(KindObject)
}

// Required reports whether the object key of f was present and defined in
// every enclosing object. Array item fields and collided paths are never
// required.
func (s *Schema) Required(f *Field) bool {
	if f.Item || f.collided || f.Count(KindUndefined) > 0 {
		return false
	}
	parents := s.ParentObjects(f)
	return parents > 0 && f.Total() >= parents
}

// Stats returns one FieldStat per path, in schema order.
func Stats(s *Schema) []FieldStat {
	if s == nil {
		return nil
	}

	stats := make([]FieldStat, 0, s.Len())
	for _, f := range s.Fields() {
		stat := FieldStat{
			Path:        f.Path,
			Types:       SortedTypes(f.Types),
			Occurrences: f.Total(),
			Records:     f.RecordCount(),
			Depth:       strings.Count(f.Path, ".") + 1,
			Nullable:    f.Count(KindNull) > 0,
			Optional:    !f.Item && !s.Required(f),
		}
		if s.Records() > 0 {
			stat.Frequency = float64(stat.Records) / float64(s.Records())
		}

		defined := 0
		for _, k := range f.Types.Kinds() {
			if k != KindNull && k != KindUndefined {
				defined++
			}
		}
		stat.Mixed = defined > 1

		stats = append(stats, stat)
	}
	return stats
}

// SortedTypes returns the buckets of h by count, breaking ties by tag priority.
func SortedTypes(h *Histogram) []TypeCount {
	rank := make(map[Kind]int)
	for i, k := range Kinds() {
		rank[k] = i
	}

	out := make([]TypeCount, 0, h.Len())
	for _, k := range h.Kinds() {
		out = append(out, TypeCount{Type: k, Count: h.Count(k)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return rank[out[i].Type] < rank[out[j].Type]
	})
	return out
}
