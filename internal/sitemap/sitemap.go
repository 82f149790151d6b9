package sitemap

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// ErrUnresolved is returned when a resource's template cannot be found.
var ErrUnresolved = errors.New("template not found for resource")

// Sitemap resolves resources against a source tree.
type Sitemap struct {
	source fs.FS
}

// New returns a Sitemap backed by the given source filesystem.
func New(source fs.FS) *Sitemap {
	return &Sitemap{source: source}
}

// Source returns the source filesystem.
func (s *Sitemap) Source() fs.FS {
	return s.source
}

// Resolve returns the filesystem and file name a resource renders from.
//
// Proxy targets name a page by its destination path, so "a.html" resolves to
// "a.html" when that file exists, otherwise to the first "a.html.*" sibling
// in lexical order.
func (s *Sitemap) Resolve(r *Resource) (fs.FS, string, error) {
	switch r.Kind {
	case KindPage:
		fsys := r.FS
		if fsys == nil {
			fsys = s.source
		}
		if _, err := fs.Stat(fsys, r.Source); err != nil {
			return nil, "", fmt.Errorf("%w: %s: %w", ErrUnresolved, r.Source, err)
		}
		return fsys, r.Source, nil
	case KindProxy:
		name, err := s.resolveTarget(r.Target)
		if err != nil {
			return nil, "", err
		}
		return s.source, name, nil
	default:
		return nil, "", fmt.Errorf("unknown resource kind %q", r.Kind)
	}
}

func (s *Sitemap) resolveTarget(target string) (string, error) {
	if info, err := fs.Stat(s.source, target); err == nil && !info.IsDir() {
		return target, nil
	}

	dir := path.Dir(target)
	prefix := path.Base(target) + "."
	entries, err := fs.ReadDir(s.source, dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnresolved, target, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			return path.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnresolved, target)
}

// Collisions returns destination paths claimed by more than one resource,
// sorted. Later resources overwrite earlier ones when rendered.
func Collisions(resources []*Resource) []string {
	seen := make(map[string]int, len(resources))
	var dupes []string
	for _, r := range resources {
		p := r.OutputPath()
		seen[p]++
		if seen[p] == 2 {
			dupes = append(dupes, p)
		}
	}
	sort.Strings(dupes)
	return dupes
}
