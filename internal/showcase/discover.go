package showcase

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	foundationerrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/logfields"
)

// ErrOutsideSource is returned for patterns that climb above the source directory.
var ErrOutsideSource = errors.New("pattern leaves the source directory")

// CleanPattern roots pattern at the source directory the way a path join
// would: leading slashes are dropped and "." and ".." elements are resolved,
// so "./templates/*.html.*" and "templates/../templates/*.html.*" both become
// "templates/*.html.*". A blank pattern cleans to "".
func CleanPattern(pattern string) (string, error) {
	p := strings.TrimLeft(strings.TrimSpace(pattern), "/")
	if p == "" {
		return "", nil
	}
	p = path.Clean(p)
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("glob %q: %w", pattern, ErrOutsideSource)
	}
	if !doublestar.ValidatePattern(p) {
		return "", fmt.Errorf("glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return p, nil
}

// Discover expands each pattern against fsys and returns the matching
// source-relative file paths. Patterns are expanded in order and matches keep
// lexical walk order; a path matched by several patterns is listed once, at
// its first occurrence. A pattern with no matches contributes nothing.
func Discover(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	for _, raw := range patterns {
		pattern, err := CleanPattern(raw)
		if err != nil {
			return nil, invalidPattern(raw, err)
		}
		if pattern == "" {
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, invalidPattern(raw, err)
		}
		for _, m := range matches {
			if m == "" {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	return out, nil
}

func invalidPattern(pattern string, err error) error {
	return foundationerrors.ValidationError("invalid template_path pattern").
		WithContext("field", "template_path").
		WithContext(logfields.KeyPattern, pattern).
		WithCause(err).
		Build()
}
