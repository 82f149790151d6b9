package showcase

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	foundationerrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
)

// IndexTemplate is the built-in template the index page renders from.
const IndexTemplate = "showcase.html.tmpl"

//go:embed templates/*.tmpl
var embedded embed.FS

// Builtin is the set of templates shipped with the extension. Dir is empty
// for the embedded set and names the on-disk override directory otherwise.
type Builtin struct {
	FS  fs.FS
	Dir string
}

// EmbeddedBuiltin returns the templates compiled into the binary.
func EmbeddedBuiltin() Builtin {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return Builtin{FS: sub}
}

// DirBuiltin returns an override set read from dir on disk.
func DirBuiltin(dir string) Builtin {
	return Builtin{FS: os.DirFS(dir), Dir: dir}
}

// resolveBuiltin picks the override directory when configured, resolving a
// relative dir against root.
func resolveBuiltin(root, dir string) Builtin {
	if dir == "" {
		return EmbeddedBuiltin()
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return DirBuiltin(dir)
}

// Location returns a human-readable path for a template in this set.
func (b Builtin) Location(name string) string {
	if b.Dir == "" {
		return path.Join("templates", name) + " (embedded)"
	}
	return filepath.Join(b.Dir, name)
}

// Check reports a fatal not_found error when name is missing from the set.
func (b Builtin) Check(name string) error {
	info, err := fs.Stat(b.FS, name)
	if err == nil && !info.IsDir() {
		return nil
	}
	builder := foundationerrors.NotFoundError("built-in showcase template is missing").
		WithContext("path", b.Location(name))
	if err != nil {
		builder = builder.WithCause(err)
	}
	return builder.Build()
}
