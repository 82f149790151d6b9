package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/showcase/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force    bool `help:"Overwrite existing configuration file"`
	Scaffold bool `help:"Also create a source directory with a layout and an example template"`
}

// scaffoldFiles are written relative to the source directory; existing files are kept.
var scaffoldFiles = map[string]string{
	"layouts/layout.html.tmpl": `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ with .template_name }}{{ title . }} · {{ end }}{{ .site_name }}</title>
</head>
<body>
{{ .content }}
</body>
</html>
`,
	"index.html.tmpl": `<h1>{{ .site_name }}</h1>
<p><a href="{{ url "showcase/" }}">Browse the template showcase</a></p>
`,
	"templates/hello.html.tmpl": `<section class="hello">
  <h2>Hello from {{ .template_name }}</h2>
</section>
`,
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	if !i.Scaffold {
		return nil
	}

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	src := cfg.SourceDir()
	for name, content := range scaffoldFiles {
		path := filepath.Join(src, filepath.FromSlash(name))
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Created %s\n", path)
	}
	return nil
}
