package showcase

import (
	"path"
	"strings"
)

const htmlExt = ".html"

// Extname returns the final extension of p including the dot. A leading dot
// on the base name is not an extension (".env" has none) and neither is a
// trailing lone dot.
func Extname(p string) string {
	base := strings.TrimLeft(path.Base(p), ".")
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

// ExtensionStrip removes the final extension and then a literal ".html" suffix.
func ExtensionStrip(p string) string {
	return strings.TrimSuffix(strings.TrimSuffix(p, Extname(p)), htmlExt)
}

// TemplateName is the display and lookup key for a template path.
func TemplateName(p string) string {
	return ExtensionStrip(p)
}

// NormalizePrefix removes a single trailing slash from the showcase path.
func NormalizePrefix(prefix string) string {
	return strings.TrimSuffix(prefix, "/")
}

// BuildURL returns the destination path of the showcase page for p.
func BuildURL(p, prefix string) string {
	return NormalizePrefix(prefix) + "/" + ExtensionStrip(p) + "/index.html"
}

// IndexURL returns the destination path of the showcase index.
func IndexURL(prefix string) string {
	return NormalizePrefix(prefix) + "/index.html"
}

// BuildSourcePath returns the proxy target for p. Paths whose final
// extension is empty or ".html" (any case) are kept as-is; otherwise only the
// final extension is removed.
func BuildSourcePath(p string) string {
	ext := Extname(p)
	if ext == "" || strings.EqualFold(ext, htmlExt) {
		return p
	}
	return strings.TrimSuffix(p, ext)
}
