// Package sitemap holds the resources a build renders and resolves each one
// to the template file it is rendered from.
package sitemap

import (
	"io/fs"
	"maps"
	"strings"
)

// Kind distinguishes resources rendered from their own source file from
// proxies that render another template at a new path.
type Kind string

const (
	KindPage  Kind = "page"
	KindProxy Kind = "proxy"
)

// Options holds per-resource rendering options.
type Options struct {
	// NoLayout disables the site layout for this resource.
	NoLayout bool
}

// Resource is a single page in the sitemap.
type Resource struct {
	// Path is the destination path relative to the output root (e.g. "showcase/a/index.html").
	Path string
	Kind Kind
	// Source is the template file for KindPage resources. It is looked up in FS
	// when FS is set, otherwise relative to the sitemap source directory.
	Source string
	FS     fs.FS
	// Target is the source-relative path a KindProxy resource renders.
	Target  string
	Locals  map[string]any
	Options Options
}

// NewPage creates a resource rendered from its own template file.
func NewPage(path, source string, fsys fs.FS) *Resource {
	return &Resource{Path: path, Kind: KindPage, Source: source, FS: fsys, Locals: map[string]any{}}
}

// NewProxy creates a resource at path rendering the template found at target.
func NewProxy(path, target string) *Resource {
	return &Resource{Path: path, Kind: KindProxy, Target: target, Locals: map[string]any{}}
}

// AddLocals merges locals into the resource, overriding existing keys.
func (r *Resource) AddLocals(locals map[string]any) {
	if r.Locals == nil {
		r.Locals = make(map[string]any, len(locals))
	}
	maps.Copy(r.Locals, locals)
}

// Local returns a single local value.
func (r *Resource) Local(key string) any {
	return r.Locals[key]
}

// TemplateName returns the template_name local, if any.
func (r *Resource) TemplateName() string {
	if s, ok := r.Locals["template_name"].(string); ok {
		return s
	}
	return ""
}

// URL returns the root-relative link to the resource.
func (r *Resource) URL() string {
	return "/" + r.OutputPath()
}

// OutputPath returns Path without a leading slash, as written under the output root.
func (r *Resource) OutputPath() string {
	return strings.TrimLeft(r.Path, "/")
}
