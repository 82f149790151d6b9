package render

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	foundationerrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/showcase"
	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

const layout = `<!DOCTYPE html><html><head><title>{{ .template_name }}</title></head><body><main>{{ .content }}</main></body></html>`

func siteFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/layout.html.tmpl":   {Data: []byte(layout)},
		"templates/card.html.tmpl":   {Data: []byte(`<div class="card">{{ .template_name }} for {{ .brand }}</div>`)},
		"templates/notes.html.md":    {Data: []byte("# {{ .template_name }}\n\nSome *notes*.\n")},
		"templates/plain.html":       {Data: []byte(`<p class="plain">as is</p>`)},
		"templates/broken.html.tmpl": {Data: []byte(`{{ if }}`)},
		"templates/styles.css":       {Data: []byte(`body{}`)},
	}
}

func newRenderer(t *testing.T, out string) *Renderer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(sitemap.New(siteFS()), out, "layouts/layout.html.tmpl", logger)
}

func parse(t *testing.T, data []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	return doc
}

func find(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && (class == "" || attr(n, "class") == class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, tag, class); f != nil {
			return f
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestExecuteProxyWithLayout(t *testing.T) {
	r := newRenderer(t, t.TempDir())
	res := showcase.BuildResource("templates/card.html.tmpl", "showcase", map[string]any{"brand": "acme"})

	out, err := r.Execute(res)
	require.NoError(t, err)

	doc := parse(t, out)
	main := find(doc, "main", "")
	require.NotNil(t, main, "layout applied")
	card := find(main, "div", "card")
	require.NotNil(t, card)
	require.Equal(t, "templates/card for acme", text(card))
	require.Equal(t, "templates/card", text(find(doc, "title", "")))
}

func TestExecuteMarkdown(t *testing.T) {
	r := newRenderer(t, t.TempDir())
	out, err := r.Execute(showcase.BuildResource("templates/notes.html.md", "showcase", nil))
	require.NoError(t, err)

	doc := parse(t, out)
	h1 := find(doc, "h1", "")
	require.NotNil(t, h1)
	require.Equal(t, "templates/notes", text(h1))
	require.NotNil(t, find(doc, "em", ""))
}

func TestExecuteVerbatim(t *testing.T) {
	r := newRenderer(t, t.TempDir())

	out, err := r.Execute(showcase.BuildResource("templates/plain.html", "showcase", nil))
	require.NoError(t, err)
	require.NotNil(t, find(parse(t, out), "p", "plain"))

	css := sitemap.NewPage("styles.css", "templates/styles.css", nil)
	out, err = r.Execute(css)
	require.NoError(t, err)
	require.Equal(t, "body{}", string(out), "non-html output skips the layout")
}

func TestExecuteIndexWithoutLayout(t *testing.T) {
	r := newRenderer(t, t.TempDir())
	pages := []*sitemap.Resource{
		showcase.BuildResource("templates/card.html.tmpl", "showcase", nil),
		showcase.BuildResource("templates/hero-banner.html.tmpl", "showcase", nil),
	}
	index, err := showcase.BuildIndex(showcase.EmbeddedBuiltin(), "showcase/", pages, "abc123")
	require.NoError(t, err)

	out, err := r.Execute(index)
	require.NoError(t, err)

	doc := parse(t, out)
	require.Nil(t, find(doc, "main", ""), "index skips the site layout")
	links := findAll(find(doc, "ul", "showcase-templates"), "a")
	require.Len(t, links, 2)
	require.Equal(t, "/showcase/templates/card/index.html", attr(links[0], "href"))
	require.Equal(t, "Templates / Hero Banner", text(links[1]))
	require.Contains(t, text(find(doc, "footer", "")), "abc123")
}

func TestExecuteEmptyIndex(t *testing.T) {
	r := newRenderer(t, t.TempDir())
	index, err := showcase.BuildIndex(showcase.EmbeddedBuiltin(), "showcase", nil, "")
	require.NoError(t, err)

	out, err := r.Execute(index)
	require.NoError(t, err)
	doc := parse(t, out)
	require.NotNil(t, find(doc, "p", "showcase-empty"))
	require.Nil(t, find(doc, "footer", ""))
}

func TestExecuteErrors(t *testing.T) {
	r := newRenderer(t, t.TempDir())

	_, err := r.Execute(showcase.BuildResource("templates/broken.html.tmpl", "showcase", nil))
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryTemplate))

	_, err = r.Execute(sitemap.NewProxy("showcase/missing/index.html", "templates/missing.html"))
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))
}

func TestRenderWritesOutput(t *testing.T) {
	out := t.TempDir()
	r := newRenderer(t, out)

	full, err := r.Render(showcase.BuildResource("templates/card.html.tmpl", "/showcase/", nil))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "showcase", "templates", "card", "index.html"), full)

	// #nosec G304 -- path is under the test temp dir.
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	require.Contains(t, string(data), `class="card"`)
}

func TestMissingLayoutIsSkipped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := New(sitemap.New(siteFS()), t.TempDir(), "layouts/none.html.tmpl", logger)

	out, err := r.Execute(showcase.BuildResource("templates/card.html.tmpl", "showcase", nil))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), `<div class="card">`))
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Templates / Hero Banner", Title("templates/hero-banner"))
	require.Equal(t, "Snake Case", Title("snake_case"))
	require.Equal(t, "/a/b", URL("a/b"))
	require.Equal(t, "/a/b", URL("//a/b"))
}
