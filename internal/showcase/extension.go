package showcase

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/showcase/internal/logfields"
	"git.home.luguber.info/inful/showcase/internal/plugin"
	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

// Version is reported in the extension metadata.
const Version = "v1.0.0"

// Extension registers one showcase page per discovered template plus an index.
// It holds only its validated options; every build starts from scratch.
type Extension struct {
	opts Options
}

var _ plugin.Extension = (*Extension)(nil)

// NewExtension validates opts and returns the extension.
func NewExtension(opts Options) (*Extension, error) {
	opts = opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Extension{opts: opts}, nil
}

// Options returns a copy of the validated options.
func (e *Extension) Options() Options {
	return e.opts.normalize()
}

func (e *Extension) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        "showcase",
		Version:     Version,
		Type:        plugin.PluginTypeExtension,
		Description: "Renders every matched template as a standalone page with an index",
	}
}

func (e *Extension) Configure(pctx *plugin.PluginContext) ([]plugin.WatchRequest, error) {
	return OnConfigure(pctx, e.opts)
}

func (e *Extension) ManipulateResourceList(pctx *plugin.PluginContext, resources []*sitemap.Resource) ([]*sitemap.Resource, error) {
	return OnResourceList(pctx, e.opts, resources)
}

// OnConfigure asks the host to watch the built-in templates directory when
// it exists on disk. The path is relative to the site root. The embedded set
// needs no watch.
func OnConfigure(pctx *plugin.PluginContext, opts Options) ([]plugin.WatchRequest, error) {
	if opts.TemplatesDir == "" {
		return nil, nil
	}

	dir := opts.TemplatesDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(pctx.Root, dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		pctx.Logger.Debug("Built-in templates directory not found, not watching", logfields.Path(dir))
		return nil, nil
	}

	rel, err := filepath.Rel(pctx.Root, dir)
	if err != nil {
		rel = dir
	}
	return []plugin.WatchRequest{{Type: plugin.WatchSource, Path: filepath.ToSlash(rel)}}, nil
}

// OnResourceList returns existing followed by one resource per discovered
// template and then the index. Every returned resource carries the generated
// pages in its template_resources local. Neither the input slice nor the
// resources in it are modified.
func OnResourceList(pctx *plugin.PluginContext, opts Options, existing []*sitemap.Resource) ([]*sitemap.Resource, error) {
	paths, err := Discover(pctx.SourceFS, opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		for _, p := range opts.TemplatePath {
			pctx.Logger.Debug("Pattern matched no templates", logfields.Pattern(p))
		}
	}

	prefix := opts.Prefix()
	generated := make([]*sitemap.Resource, 0, len(paths))
	for _, p := range paths {
		r := BuildResource(p, prefix, opts.TemplateLocals)
		pctx.Logger.Debug("Showcase page",
			logfields.Template(r.TemplateName()),
			logfields.URL(r.URL()),
			logfields.Target(r.Target))
		generated = append(generated, r)
	}

	index, err := BuildIndex(resolveBuiltin(pctx.Root, opts.TemplatesDir), prefix, generated, GitRef(pctx.Root))
	if err != nil {
		return nil, err
	}

	// Generated pages are fresh and take the list in place; pages from the
	// host or earlier extensions are copied.
	listed := slices.Clone(generated)
	for _, r := range generated {
		r.Locals[LocalTemplateResources] = listed
	}

	out := make([]*sitemap.Resource, 0, len(existing)+len(generated)+1)
	out = append(out, ExposeResources(existing, listed)...)
	out = append(out, generated...)
	out = append(out, index)

	pctx.Logger.Info("Showcase resources generated",
		logfields.Count(len(generated)),
		slog.String("index", index.URL()))
	return out, nil
}
