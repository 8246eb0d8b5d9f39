package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typeprofile-mcp/internal/mcp/tools"
	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

// Resource URIs.
const (
	KindsURI  = "typeprofile://kinds"
	ConfigURI = "typeprofile://config"
)

// kindInfo describes one type tag.
type kindInfo struct {
	Tag         string `json:"tag"`
	Priority    int    `json:"priority"`
	Description string `json:"description"`
}

var kindDescriptions = map[typeprofile.Kind]string{
	typeprofile.KindNull:      "JSON null, or a nil Go value",
	typeprofile.KindUndefined: "An absent value; CSV cells missing from short rows",
	typeprofile.KindBoolean:   "true or false",
	typeprofile.KindNumber:    "Any number, integer or floating point",
	typeprofile.KindString:    "A string",
	typeprofile.KindObject:    "A key/value mapping; its keys become child paths",
	typeprofile.KindArray:     "An ordered sequence; its elements are counted at index 0",
}

// registerResources registers static resources and their handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         KindsURI,
		Name:        "Type Tags",
		Description: "The closed set of type tags a profile can report, in classification priority order.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceKinds)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         ConfigURI,
		Name:        "Profiling Limits",
		Description: "Server limits that shape profile_types results: max depth, records per document, input size.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceConfig)
}

func (s *Server) handleResourceKinds(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	kinds := make([]kindInfo, 0, len(typeprofile.Kinds()))
	for i, k := range typeprofile.Kinds() {
		kinds = append(kinds, kindInfo{Tag: string(k), Priority: i, Description: kindDescriptions[k]})
	}
	return toResourceResult(req.Params.URI, kinds)
}

func (s *Server) handleResourceConfig(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	cfg := s.deps.Config
	content := map[string]any{
		"max_depth":       cfg.MaxDepth,
		"max_records":     cfg.MaxRecords,
		"max_input_bytes": cfg.MaxInputBytes,
		"workers":         cfg.Workers,
		"cache_items":     s.deps.Cache.Len(),
	}
	return toResourceResult(req.Params.URI, content)
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
