package tools

import (
	"fmt"
	"os"

	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/internal/config"
	"github.com/usestring/typeprofile-mcp/internal/profiler"
	"github.com/usestring/typeprofile-mcp/pkg/types"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config   *config.Config
	Cache    *cache.ProfileCache
	Profiler *profiler.Runner
}

// LoadDocuments resolves tool document inputs into profiler documents,
// reading local files for inputs that name a path instead of inline data.
// Every document is checked against MaxInputBytes.
func (d *Deps) LoadDocuments(inputs []types.DocumentInput) ([]profiler.Document, error) {
	if len(inputs) == 0 {
		return nil, ErrInvalidInput("at least one document is required")
	}

	docs := make([]profiler.Document, len(inputs))
	for i, in := range inputs {
		doc := profiler.Document{
			Label:       in.Label,
			ContentType: in.ContentType,
			Path:        in.Path,
		}

		switch {
		case in.Data != "":
			doc.Data = []byte(in.Data)
		case in.Path != "":
			data, err := d.readFile(in.Path)
			if err != nil {
				return nil, err
			}
			doc.Data = data
		default:
			return nil, ErrInvalidInput(fmt.Sprintf("document %d: either data or path is required", i))
		}

		if limit := d.Config.MaxInputBytes; limit > 0 && len(doc.Data) > limit {
			return nil, ErrInvalidInput(fmt.Sprintf("document %d is %d bytes, limit is %d (MAX_INPUT_BYTES)", i, len(doc.Data), limit))
		}
		docs[i] = doc
	}
	return docs, nil
}

func (d *Deps) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound("file", path)
		}
		return nil, ErrInvalidInput(err.Error())
	}
	if info.IsDir() {
		return nil, ErrInvalidInput(fmt.Sprintf("%s is a directory", path))
	}
	if limit := d.Config.MaxInputBytes; limit > 0 && info.Size() > int64(limit) {
		return nil, ErrInvalidInput(fmt.Sprintf("%s is %d bytes, limit is %d (MAX_INPUT_BYTES)", path, info.Size(), limit))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrInvalidInput(err.Error())
	}
	return data, nil
}
