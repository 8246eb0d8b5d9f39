package mcpsrv

import (
	"github.com/usestring/typeprofile-mcp/internal/cache"
	"github.com/usestring/typeprofile-mcp/internal/config"
	"github.com/usestring/typeprofile-mcp/internal/profiler"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config   *config.Config
	Cache    *cache.ProfileCache
	Profiler *profiler.Runner
}
