package plugin

import (
	"context"
	"io/fs"
	"log/slog"
)

// PluginContext gives extensions access to the build without coupling them
// to the host's configuration types.
type PluginContext struct {
	// Context is the standard Go context for cancellation and deadlines.
	Context context.Context

	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// Root is the site root directory.
	Root string

	// SourceDir is the site source directory on disk and SourceFS the same
	// tree as a filesystem.
	SourceDir string
	SourceFS  fs.FS

	// BuildID uniquely identifies this build. Empty during Configure.
	BuildID string
}

// NewPluginContext creates a new plugin context. A nil logger falls back to slog.Default.
func NewPluginContext(ctx context.Context, logger *slog.Logger, root, sourceDir string, sourceFS fs.FS) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginContext{
		Context:   ctx,
		Logger:    logger,
		Root:      root,
		SourceDir: sourceDir,
		SourceFS:  sourceFS,
	}
}

// WithBuildID returns a copy of the context tagged with a build ID.
func (pc *PluginContext) WithBuildID(id string) *PluginContext {
	cp := *pc
	cp.BuildID = id
	cp.Logger = pc.Logger.With(slog.String("build_id", id))
	return &cp
}
