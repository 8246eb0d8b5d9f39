// Package typeprofile profiles loosely structured records by counting, for
// every dotted field path, how often each value type occurs.
//
// Paths join object keys with "."; descending into an array appends a "0"
// segment whatever the element index, so all elements of an array share one
// path:
//
//	[{"a": [1, "x", 2]}]  ->  {"a": {"array": 1}, "a.0": {"number": 2, "string": 1}}
//
// The result keeps the full histogram per path. It does not pick a single
// best type and it does not validate anything.
package typeprofile

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// DefaultMaxDepth bounds how deeply nested a value may be below its record.
const DefaultMaxDepth = 512

// MaxRecords is the largest number of records one schema can cover; record
// coverage is indexed by uint32.
const MaxRecords = math.MaxUint32

var (
	// ErrDepthExceeded is returned when a value nests deeper than the configured limit.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")
	// ErrTooManyRecords is returned when a schema would cover more than MaxRecords records.
	ErrTooManyRecords = errors.New("too many records")
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxDepth sets the maximum nesting depth. Values <= 0 disable the limit;
// the walk uses an explicit stack, so an unlimited depth costs heap, not goroutine stack.
func WithMaxDepth(depth int) Option {
	return func(a *Analyzer) {
		a.maxDepth = depth
	}
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// Analyzer computes a Schema from a captured sequence of records.
// The records are only read. An Analyzer holds no state between calls.
type Analyzer struct {
	records  []any
	maxDepth int
	logger   *slog.Logger
}

// New creates an analyzer over records. No validation happens here: records
// that are neither objects nor arrays simply contribute no paths.
func New(records []any, opts ...Option) *Analyzer {
	a := &Analyzer{
		records:  records,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// frame is one pending value on the work stack.
type frame struct {
	value  any
	path   string
	parent string
	key    string
	item   bool
	top    bool
	depth  int
	record uint32
	count  bool // false for the top-level record itself
}

// Schema walks every record and returns a fresh path -> type histogram mapping.
// Calling it again on the same analyzer yields an identical result.
func (a *Analyzer) Schema() (*Schema, error) {
	if int64(len(a.records)) > MaxRecords {
		return nil, fmt.Errorf("analyzing %d records: %w", len(a.records), ErrTooManyRecords)
	}

	schema := NewSchema()
	schema.records = len(a.records)

	stack := make([]frame, 0, 64)
	for i := len(a.records) - 1; i >= 0; i-- {
		stack = append(stack, frame{value: a.records[i], record: uint32(i)})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kind := Classify(f.value)
		if f.count {
			schema.observe(f.path, f.parent, f.key, f.item, f.top, kind, f.record)
		} else {
			schema.recordTypes.add(kind, 1)
		}

		switch kind {
		case KindObject:
			members := objectMembers(f.value)
			if len(members) == 0 {
				continue
			}
			if err := a.checkDepth(f); err != nil {
				return nil, err
			}
			// Pushed in reverse so that children pop in key order.
			for i := len(members) - 1; i >= 0; i-- {
				m := members[i]
				stack = append(stack, frame{
					value:  m.value,
					path:   joinPath(f.path, m.key),
					parent: f.path,
					key:    m.key,
					top:    !f.count,
					depth:  f.depth + 1,
					record: f.record,
					count:  true,
				})
			}

		case KindArray:
			elems := arrayElements(f.value)
			if len(elems) == 0 {
				continue
			}
			if err := a.checkDepth(f); err != nil {
				return nil, err
			}
			itemPath := joinPath(f.path, "0")
			for i := len(elems) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					value:  elems[i],
					path:   itemPath,
					parent: f.path,
					key:    "0",
					item:   true,
					top:    !f.count,
					depth:  f.depth + 1,
					record: f.record,
					count:  true,
				})
			}
		}
	}

	a.logger.Debug("computed type profile",
		slog.Int("records", schema.Records()),
		slog.Int("paths", schema.Len()),
	)

	return schema, nil
}

func (a *Analyzer) checkDepth(f frame) error {
	if a.maxDepth > 0 && f.depth >= a.maxDepth {
		path := f.path
		if path == "" {
			path = "<record>"
		}
		return fmt.Errorf("record %d at %q: %w (limit %d)", f.record, path, ErrDepthExceeded, a.maxDepth)
	}
	return nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
