package render

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	foundationerrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/logfields"
	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

// Keys added to the template data next to the resource locals.
const (
	DataCurrentURL = "current_url"
	DataContent    = "content"
)

type engine int

const (
	engineCopy engine = iota
	engineHTML
	engineMarkdown
)

func engineFor(name string) engine {
	switch strings.ToLower(path.Ext(name)) {
	case ".tmpl", ".gotmpl":
		return engineHTML
	case ".md", ".markdown":
		return engineMarkdown
	default:
		return engineCopy
	}
}

// Renderer executes resources against a sitemap and writes the results.
type Renderer struct {
	site      *sitemap.Sitemap
	outputDir string
	layout    string
	markdown  goldmark.Markdown
	logger    *slog.Logger
}

// New returns a renderer writing under outputDir. layout names a template in
// the sitemap source; it is ignored when empty or missing.
func New(site *sitemap.Sitemap, outputDir, layout string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		site:      site,
		outputDir: outputDir,
		layout:    layout,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger:    logger,
	}
}

// Render executes res and writes it under the output directory. It returns
// the path of the written file.
func (r *Renderer) Render(res *sitemap.Resource) (string, error) {
	out, err := r.Execute(res)
	if err != nil {
		return "", err
	}
	full, err := WriteFile(r.outputDir, res.OutputPath(), out)
	if err != nil {
		return "", foundationerrors.FileSystemError("cannot write rendered page").WithCause(err).
			Retryable().
			WithContext("path", res.OutputPath()).
			Build()
	}
	return full, nil
}

// Execute renders res in memory.
func (r *Renderer) Execute(res *sitemap.Resource) ([]byte, error) {
	fsys, name, err := r.site.Resolve(res)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryNotFound, "cannot resolve template for page").
			Fatal().
			WithContext("path", res.OutputPath()).
			WithContext("target", res.Target).
			Build()
	}

	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, foundationerrors.FileSystemError("cannot read template").WithCause(err).
			Retryable().
			WithContext("path", name).
			Build()
	}

	data := r.data(res)
	var body []byte
	switch engineFor(name) {
	case engineHTML:
		body, err = executeHTML(name, src, data)
	case engineMarkdown:
		body, err = r.executeMarkdown(name, src, data)
	default:
		body = src
	}
	if err != nil {
		return nil, err
	}

	if !r.useLayout(res) {
		return body, nil
	}
	r.logger.Debug("Applying layout", logfields.Path(res.OutputPath()), logfields.Template(r.layout))
	return r.applyLayout(body, data)
}

func (r *Renderer) data(res *sitemap.Resource) map[string]any {
	data := make(map[string]any, len(res.Locals)+2)
	maps.Copy(data, res.Locals)
	data[DataCurrentURL] = res.URL()
	return data
}

func (r *Renderer) useLayout(res *sitemap.Resource) bool {
	if r.layout == "" || res.Options.NoLayout || !strings.HasSuffix(res.OutputPath(), ".html") {
		return false
	}
	info, err := fs.Stat(r.site.Source(), r.layout)
	return err == nil && !info.IsDir()
}

func (r *Renderer) applyLayout(body []byte, data map[string]any) ([]byte, error) {
	src, err := fs.ReadFile(r.site.Source(), r.layout)
	if err != nil {
		return nil, foundationerrors.FileSystemError("cannot read layout").WithCause(err).
			Retryable().
			WithContext("path", r.layout).
			Build()
	}
	wrapped := maps.Clone(data)
	// #nosec G203 -- body is the output of a template render, not user input.
	wrapped[DataContent] = template.HTML(body)
	return executeHTML(r.layout, src, wrapped)
}

func executeHTML(name string, src []byte, data map[string]any) ([]byte, error) {
	tpl, err := template.New(path.Base(name)).Funcs(FuncMap()).Parse(string(src))
	if err != nil {
		return nil, templateError(err, "parse template", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, templateError(err, "execute template", name)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) executeMarkdown(name string, src []byte, data map[string]any) ([]byte, error) {
	tpl, err := texttemplate.New(path.Base(name)).Funcs(texttemplate.FuncMap(FuncMap())).Parse(string(src))
	if err != nil {
		return nil, templateError(err, "parse template", name)
	}
	var md bytes.Buffer
	if err := tpl.Execute(&md, data); err != nil {
		return nil, templateError(err, "execute template", name)
	}
	var out bytes.Buffer
	if err := r.markdown.Convert(md.Bytes(), &out); err != nil {
		return nil, templateError(err, "convert markdown", name)
	}
	return out.Bytes(), nil
}

func templateError(err error, op, name string) error {
	return foundationerrors.TemplateError("cannot "+op).WithCause(err).
		UserAction().
		WithContext("path", name).
		Build()
}
