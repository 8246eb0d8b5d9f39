// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/typeprofile-mcp/pkg/decode"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

// Profile is a cached per-document result. Schema must be treated as
// read-only by callers; merge it into a fresh schema instead.
type Profile struct {
	Schema    *typeprofile.Schema
	Category  string
	Truncated bool
	Warnings  []string
}

// Key identifies one profiling run over a document.
type Key struct {
	Data        []byte
	ContentType string
	Path        string
	Selector    string
	MaxDepth    int
	MaxRecords  int
}

// Digest returns a stable hex digest of k.
func (k Key) Digest() string {
	h := sha256.New()
	h.Write(k.Data)
	for _, part := range []string{
		k.ContentType,
		k.Path,
		k.Selector,
		strconv.Itoa(k.MaxDepth),
		strconv.Itoa(k.MaxRecords),
	} {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ProfileCache provides thread-safe LRU caching for per-document profiles.
type ProfileCache struct {
	cache *lru.Cache[string, *Profile]
}

// NewProfileCache creates a new LRU cache with the specified maximum number of items.
func NewProfileCache(maxItems int) (*ProfileCache, error) {
	c, err := lru.New[string, *Profile](maxItems)
	if err != nil {
		return nil, err
	}
	return &ProfileCache{cache: c}, nil
}

// Get retrieves a profile by key digest.
// Returns the profile and true if found, nil and false otherwise.
func (c *ProfileCache) Get(digest string) (*Profile, bool) {
	return c.cache.Get(digest)
}

// Put adds or updates a profile in the cache.
func (c *ProfileCache) Put(digest string, p *Profile) {
	c.cache.Add(digest, p)
}

// Len returns the current number of items in the cache.
func (c *ProfileCache) Len() int {
	return c.cache.Len()
}

// FromResult builds a cache entry from a decode result and its schema.
func FromResult(res *decode.Result, s *typeprofile.Schema) *Profile {
	return &Profile{
		Schema:    s,
		Category:  string(res.Category),
		Truncated: res.Truncated,
		Warnings:  res.Warnings,
	}
}
