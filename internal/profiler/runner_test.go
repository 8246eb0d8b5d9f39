package profiler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/pkg/decode"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

func newRunner(t *testing.T) (*Runner, *cache.ProfileCache) {
	t.Helper()
	c, err := cache.NewProfileCache(16)
	require.NoError(t, err)
	return New(c, 2), c
}

func TestRun_MergesInInputOrder(t *testing.T) {
	r, _ := newRunner(t)

	res, err := r.Run(context.Background(), &Request{
		Documents: []Document{
			{Label: "first", Data: []byte(`[{"a": 1}, {"a": "x"}]`), ContentType: "application/json"},
			{Data: []byte("{\"b\": true}\n{\"a\": null}\n"), ContentType: "application/x-ndjson"},
			{Data: []byte("a,c\n1,2\n"), Path: "rows.csv"},
		},
		MaxDepth: typeprofile.DefaultMaxDepth,
	})
	require.NoError(t, err)

	s := res.Schema
	assert.Equal(t, 5, s.Records())
	assert.Equal(t, []string{"a", "b", "c"}, s.Paths())
	assert.Equal(t, map[string]int{"number": 1, "string": 2, "null": 1}, s.Map()["a"])

	a, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 1, 3, 4}, a.RecordIndexes())

	require.Len(t, res.Documents, 3)
	assert.Equal(t, "first", res.Documents[0].Label)
	assert.Equal(t, "json", res.Documents[0].Category)
	assert.Equal(t, "document[1]", res.Documents[1].Label)
	assert.Equal(t, "ndjson", res.Documents[1].Category)
	assert.Equal(t, "rows.csv", res.Documents[2].Label)
	assert.Equal(t, 2, res.Documents[2].Paths)
}

func TestRun_UsesCache(t *testing.T) {
	r, c := newRunner(t)
	req := &Request{Documents: []Document{{Data: []byte(`[{"a": 1}]`)}}}

	first, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Documents[0].Cached)
	assert.Equal(t, 1, c.Len())

	second, err := r.Run(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Documents[0].Cached)
	assert.Equal(t, first.Schema.Map(), second.Schema.Map())

	// Merging into a fresh schema leaves the cached one untouched.
	third, err := r.Run(context.Background(), &Request{Documents: []Document{req.Documents[0], req.Documents[0]}})
	require.NoError(t, err)
	assert.Equal(t, 2, third.Schema.Records())
	assert.Equal(t, 1, second.Schema.Records())
}

func TestRun_NoCache(t *testing.T) {
	r := New(nil, 0)

	res, err := r.Run(context.Background(), &Request{Documents: []Document{{Data: []byte(`[1, "x"]`)}}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Schema.Len())
	assert.Equal(t, map[string]int{"number": 1, "string": 1}, res.Schema.RecordTypes().Map())
}

func TestRun_ReportsFailingDocument(t *testing.T) {
	r, _ := newRunner(t)

	_, err := r.Run(context.Background(), &Request{Documents: []Document{
		{Data: []byte(`[1]`)},
		{Label: "broken", Data: []byte(`{"a": 1}`), ContentType: "application/json"},
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, decode.ErrNotSequence))
	assert.Contains(t, err.Error(), "document 1 (broken)")
}

func TestRun_DepthExceeded(t *testing.T) {
	r, _ := newRunner(t)

	_, err := r.Run(context.Background(), &Request{
		Documents: []Document{{Data: []byte(`[{"a": {"b": {"c": 1}}}]`)}},
		MaxDepth:  2,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, typeprofile.ErrDepthExceeded))
}

func TestRun_Selector(t *testing.T) {
	r, _ := newRunner(t)

	res, err := r.Run(context.Background(), &Request{
		Documents:  []Document{{Data: []byte(`{"items": [{"id": 1}, {"id": 2}, {"id": 3}]}`)}},
		Selector:   ".items[]",
		MaxRecords: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Schema.Records())
	assert.True(t, res.Documents[0].Truncated)
}

func TestCollect_ConcatenatesInOrder(t *testing.T) {
	r, c := newRunner(t)

	out, err := r.Collect(context.Background(), &Request{Documents: []Document{
		{Data: []byte(`[1, 2]`)},
		{Data: []byte("- x\n- y\n"), ContentType: "application/yaml"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2), "x", "y"}, out.Records)
	require.Len(t, out.Documents, 2)
	assert.Equal(t, "yaml", out.Documents[1].Category)
	assert.Equal(t, 2, out.Documents[1].Records)
	assert.Equal(t, 0, c.Len(), "collecting does not populate the profile cache")
}
