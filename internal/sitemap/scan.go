package sitemap

import (
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// templateExts are stripped from a source file's name to get its destination.
var templateExts = map[string]bool{
	".tmpl":     true,
	".gotmpl":   true,
	".md":       true,
	".markdown": true,
}

// DestinationPath maps a source file to the path it renders to: a trailing
// template extension is removed and ".html" is added when nothing is left.
//
//	index.html.tmpl -> index.html
//	about.md        -> about.html
//	css/site.css    -> css/site.css
func DestinationPath(source string) string {
	ext := path.Ext(source)
	if !templateExts[strings.ToLower(ext)] {
		return source
	}
	dest := strings.TrimSuffix(source, ext)
	if path.Ext(path.Base(dest)) == "" {
		dest += ".html"
	}
	return dest
}

// Scan returns one page resource per file in fsys, in lexical walk order.
// Files whose base name starts with "_" or "." are partials or hidden and
// are skipped, as are files for which skip returns true.
func Scan(fsys fs.FS, skip func(p string) bool) ([]*Resource, error) {
	var pages []*Resource
	err := doublestar.GlobWalk(fsys, "**", func(p string, _ fs.DirEntry) error {
		base := path.Base(p)
		if strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") {
			return nil
		}
		if skip != nil && skip(p) {
			return nil
		}
		pages = append(pages, NewPage(DestinationPath(p), p, nil))
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// SkipLayout returns a Scan filter dropping the layout file and, when the
// layout lives in a subdirectory, everything next to it.
func SkipLayout(layout string) func(string) bool {
	layout = path.Clean(strings.TrimLeft(layout, "/"))
	dir := path.Dir(layout)
	return func(p string) bool {
		if p == layout {
			return true
		}
		return dir != "." && strings.HasPrefix(p, dir+"/")
	}
}
