package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/internal/config"
	"github.com/usestring/typeprofile-mcp/internal/mcp/tools"
	"github.com/usestring/typeprofile-mcp/internal/profiler"
)

func testDeps(t *testing.T) *tools.Deps {
	t.Helper()
	c, err := cache.NewProfileCache(4)
	require.NoError(t, err)
	return &tools.Deps{
		Config:   &config.Config{MaxDepth: 512, Workers: 1, MaxRecords: 100, MaxInputBytes: 1024},
		Cache:    c,
		Profiler: profiler.New(c, 1),
	}
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestNewServer_RegistersBuiltins(t *testing.T) {
	var custom bool
	assert.NotPanics(t, func() {
		s, err := NewServer(testDeps(t),
			WithBuiltinTools(),
			WithBuiltinPrompts(),
			WithCustomRegistration(func(*sdkmcp.Server) { custom = true }),
		)
		require.NoError(t, err)
		assert.NotNil(t, s.MCPServer())
	})
	assert.True(t, custom)
}

func TestHandleResourceKinds(t *testing.T) {
	s, err := NewServer(testDeps(t))
	require.NoError(t, err)

	res, err := s.handleResourceKinds(context.Background(), &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: KindsURI},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var kinds []kindInfo
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &kinds))
	require.Len(t, kinds, 7)
	assert.Equal(t, "null", kinds[0].Tag)
	assert.Equal(t, "array", kinds[6].Tag)
	for _, k := range kinds {
		assert.NotEmpty(t, k.Description, k.Tag)
	}
}

func TestHandleResourceConfig(t *testing.T) {
	s, err := NewServer(testDeps(t))
	require.NoError(t, err)

	res, err := s.handleResourceConfig(context.Background(), &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: ConfigURI},
	})
	require.NoError(t, err)

	var content map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &content))
	assert.Equal(t, float64(512), content["max_depth"])
	assert.Equal(t, float64(0), content["cache_items"])
}
