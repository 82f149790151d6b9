package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/showcase/internal/build"
	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	JSON bool `help:"Print JSON instead of a table"`
	All  bool `help:"Include site pages, not just showcase pages"`
}

// listEntry is one row of list output.
type listEntry struct {
	Template string `json:"template,omitempty"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Kind     string `json:"kind"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	reg, err := build.DefaultRegistry(cfg)
	if err != nil {
		return err
	}
	resources, err := build.NewService(cfg, reg).WithLogger(g.Logger).Resources(context.Background())
	if err != nil {
		return err
	}

	site := sitemap.New(os.DirFS(cfg.SourceDir()))
	entries := make([]listEntry, 0, len(resources))
	for _, r := range resources {
		if !l.All && r.Kind != sitemap.KindProxy {
			continue
		}
		src := r.Source
		if r.Kind == sitemap.KindProxy {
			src = r.Target
			if _, resolved, err := site.Resolve(r); err == nil {
				src = resolved
			}
		}
		entries = append(entries, listEntry{Template: r.TemplateName(), URL: r.URL(), Source: src, Kind: string(r.Kind)})
	}

	out := g.out()
	if l.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TEMPLATE\tURL\tSOURCE")
	for _, e := range entries {
		name := e.Template
		if name == "" {
			name = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", name, e.URL, e.Source)
	}
	return tw.Flush()
}
