// Package profiler runs decode and type profiling over batches of documents,
// concurrently and cache-first, and merges the per-document schemas in input
// order.
package profiler

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/pkg/decode"
	"github.com/usestring/typeprofile-mcp/pkg/types"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

// Document is one input to profile.
type Document struct {
	Label       string
	Data        []byte
	ContentType string
	Path        string // Used for format detection only
}

// Request describes a profiling run.
type Request struct {
	Documents  []Document
	Selector   string
	MaxDepth   int // <= 0 means unlimited
	MaxRecords int // Per document; <= 0 means no cap
}

// Result is the merged outcome of a run. Schema is owned by the caller.
type Result struct {
	Schema    *typeprofile.Schema
	Documents []types.DocumentSummary
}

// Runner profiles documents with a bounded worker pool.
type Runner struct {
	decoder *decode.Engine
	cache   *cache.ProfileCache
	workers int
	logger  *slog.Logger
}

// New creates a runner. A nil cache disables caching.
func New(c *cache.ProfileCache, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		decoder: decode.NewEngine(),
		cache:   c,
		workers: workers,
		logger:  slog.Default(),
	}
}

// Run profiles every document and merges the results. The first failing
// document aborts the run.
func (r *Runner) Run(ctx context.Context, req *Request) (*Result, error) {
	profiles := make([]*cache.Profile, len(req.Documents))
	cached := make([]bool, len(req.Documents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, doc := range req.Documents {
		g.Go(func() error {
			p, hit, err := r.profile(ctx, doc, req)
			if err != nil {
				return fmt.Errorf("document %d (%s): %w", i, labelOf(doc, i), err)
			}
			profiles[i] = p
			cached[i] = hit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := typeprofile.NewSchema()
	results := make([]types.DocumentSummary, len(profiles))
	for i, p := range profiles {
		if err := merged.Merge(p.Schema); err != nil {
			return nil, fmt.Errorf("document %d (%s): %w", i, labelOf(req.Documents[i], i), err)
		}
		results[i] = types.DocumentSummary{
			Label:     labelOf(req.Documents[i], i),
			Category:  p.Category,
			Records:   p.Schema.Records(),
			Paths:     p.Schema.Len(),
			Truncated: p.Truncated,
			Cached:    cached[i],
			Warnings:  p.Warnings,
		}
	}

	r.logger.Debug("profiled documents",
		slog.Int("documents", len(profiles)),
		slog.Int("records", merged.Records()),
		slog.Int("paths", merged.Len()),
	)

	return &Result{Schema: merged, Documents: results}, nil
}

// Collected is the concatenated record sequence of a batch.
type Collected struct {
	Records   []any
	Documents []types.DocumentSummary
}

// Collect decodes every document without profiling and concatenates the
// records in input order.
func (r *Runner) Collect(ctx context.Context, req *Request) (*Collected, error) {
	decoded := make([]*decode.Result, len(req.Documents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, doc := range req.Documents {
		g.Go(func() error {
			res, err := r.decoder.Decode(ctx, doc.Data, doc.ContentType, decode.Options{
				Selector:   req.Selector,
				MaxRecords: req.MaxRecords,
				Path:       doc.Path,
			})
			if err != nil {
				return fmt.Errorf("document %d (%s): %w", i, labelOf(doc, i), err)
			}
			decoded[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Collected{
		Records:   make([]any, 0),
		Documents: make([]types.DocumentSummary, len(decoded)),
	}
	for i, res := range decoded {
		out.Records = append(out.Records, res.Records...)
		out.Documents[i] = types.DocumentSummary{
			Label:     labelOf(req.Documents[i], i),
			Category:  string(res.Category),
			Records:   len(res.Records),
			Truncated: res.Truncated,
			Warnings:  res.Warnings,
		}
	}
	return out, nil
}

// profile returns the profile of one document, checking the cache first.
func (r *Runner) profile(ctx context.Context, doc Document, req *Request) (*cache.Profile, bool, error) {
	key := cache.Key{
		Data:        doc.Data,
		ContentType: doc.ContentType,
		Path:        doc.Path,
		Selector:    req.Selector,
		MaxDepth:    req.MaxDepth,
		MaxRecords:  req.MaxRecords,
	}
	var digest string
	if r.cache != nil {
		digest = key.Digest()
		if p, ok := r.cache.Get(digest); ok {
			return p, true, nil
		}
	}

	decoded, err := r.decoder.Decode(ctx, doc.Data, doc.ContentType, decode.Options{
		Selector:   req.Selector,
		MaxRecords: req.MaxRecords,
		Path:       doc.Path,
	})
	if err != nil {
		return nil, false, err
	}

	s, err := typeprofile.New(decoded.Records,
		typeprofile.WithMaxDepth(req.MaxDepth),
		typeprofile.WithLogger(r.logger),
	).Schema()
	if err != nil {
		return nil, false, err
	}

	p := cache.FromResult(decoded, s)
	if r.cache != nil {
		r.cache.Put(digest, p)
	}
	return p, false, nil
}

func labelOf(doc Document, i int) string {
	if doc.Label != "" {
		return doc.Label
	}
	if doc.Path != "" {
		return doc.Path
	}
	return fmt.Sprintf("document[%d]", i)
}
