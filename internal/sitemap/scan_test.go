package sitemap

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestDestinationPath(t *testing.T) {
	cases := map[string]string{
		"index.html.tmpl":        "index.html",
		"about.md":               "about.html",
		"blog/post.markdown":     "blog/post.html",
		"feed.xml.gotmpl":        "feed.xml",
		"css/site.css":           "css/site.css",
		"templates/a.html":       "templates/a.html",
		"templates/card.html.MD": "templates/card.html",
	}
	for in, want := range cases {
		require.Equal(t, want, DestinationPath(in), in)
	}
}

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html.tmpl":          {Data: []byte("home")},
		"about.md":                 {Data: []byte("# About")},
		"_partial.html.tmpl":       {Data: []byte("p")},
		".DS_Store":                {Data: []byte("")},
		"layouts/layout.html.tmpl": {Data: []byte("{{ .content }}")},
		"templates/card.html.tmpl": {Data: []byte("card")},
	}

	pages, err := Scan(fsys, SkipLayout("layouts/layout.html.tmpl"))
	require.NoError(t, err)

	got := map[string]string{}
	for _, p := range pages {
		require.Equal(t, KindPage, p.Kind)
		got[p.Path] = p.Source
	}
	require.Equal(t, map[string]string{
		"index.html":          "index.html.tmpl",
		"about.html":          "about.md",
		"templates/card.html": "templates/card.html.tmpl",
	}, got)
}

func TestSkipLayout(t *testing.T) {
	skip := SkipLayout("layout.html.tmpl")
	require.True(t, skip("layout.html.tmpl"))
	require.False(t, skip("index.html.tmpl"))

	skip = SkipLayout("/layouts/base.html.tmpl")
	require.True(t, skip("layouts/base.html.tmpl"))
	require.True(t, skip("layouts/other.html.tmpl"))
	require.False(t, skip("layouts.html"))
}
