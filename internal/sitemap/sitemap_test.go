package sitemap

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"templates/a.html.tmpl":     {Data: []byte("a")},
		"templates/b.html":          {Data: []byte("b")},
		"templates/page.txt":        {Data: []byte("page")},
		"templates/deep/c.html.md":  {Data: []byte("c")},
		"templates/deep/c.html.txt": {Data: []byte("c-alt")},
	}
}

func TestResolveProxy(t *testing.T) {
	sm := New(testSource())

	tests := []struct {
		target string
		want   string
	}{
		{"templates/a.html", "templates/a.html.tmpl"},
		{"templates/b.html", "templates/b.html"},
		{"templates/page", "templates/page.txt"},
		{"templates/deep/c.html", "templates/deep/c.html.md"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			_, name, err := sm.Resolve(NewProxy("showcase/x/index.html", tt.target))
			require.NoError(t, err)
			require.Equal(t, tt.want, name)
		})
	}

	_, _, err := sm.Resolve(NewProxy("showcase/x/index.html", "templates/missing.html"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnresolved))
}

func TestResolvePage(t *testing.T) {
	sm := New(testSource())
	builtin := fstest.MapFS{"showcase.html.tmpl": {Data: []byte("index")}}

	fsys, name, err := sm.Resolve(NewPage("showcase/index.html", "showcase.html.tmpl", builtin))
	require.NoError(t, err)
	require.Equal(t, "showcase.html.tmpl", name)
	require.Equal(t, builtin, fsys)

	_, name, err = sm.Resolve(NewPage("b/index.html", "templates/b.html", nil))
	require.NoError(t, err)
	require.Equal(t, "templates/b.html", name)

	_, _, err = sm.Resolve(NewPage("showcase/index.html", "nope.html.tmpl", builtin))
	require.ErrorIs(t, err, ErrUnresolved)
}

func TestResourceLocals(t *testing.T) {
	r := NewProxy("showcase/a/index.html", "templates/a.html")
	r.AddLocals(map[string]any{"template_name": "templates/a", "brand": "acme"})

	require.Equal(t, "templates/a", r.TemplateName())
	require.Equal(t, "acme", r.Local("brand"))
	require.Equal(t, "/showcase/a/index.html", r.URL())

	rooted := NewProxy("/a/index.html", "a.html")
	require.Equal(t, "/a/index.html", rooted.URL())
	require.Equal(t, "a/index.html", rooted.OutputPath())
}

func TestCollisions(t *testing.T) {
	resources := []*Resource{
		NewProxy("showcase/a/index.html", "a.html"),
		NewProxy("showcase/b/index.html", "b.html"),
		NewProxy("showcase/a/index.html", "a"),
		NewProxy("showcase/a/index.html", "a.md"),
	}
	require.Equal(t, []string{"showcase/a/index.html"}, Collisions(resources))
	require.Empty(t, Collisions(resources[:2]))

	mixed := []*Resource{NewProxy("/index.html", "x"), NewProxy("index.html", "y")}
	require.Equal(t, []string{"index.html"}, Collisions(mixed))
}
