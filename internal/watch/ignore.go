package watch

import (
	"path/filepath"
	"strings"
)

// ShouldIgnore reports whether a change to path should not trigger a rebuild.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Hidden files, including editor lock files like .#foo
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	// Vim's write probe and Windows thumbnail caches
	return base == "4913" || base == "Thumbs.db"
}
