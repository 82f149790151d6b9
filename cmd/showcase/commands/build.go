package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/showcase/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides the configured output)" type:"path"`
	Clean  bool   `help:"Remove the output directory before rendering"`
	DryRun bool   `name:"dry-run" help:"Render in memory without writing files"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output = b.Output
	}

	reg, err := build.DefaultRegistry(cfg)
	if err != nil {
		return err
	}
	svc := build.NewService(cfg, reg).WithLogger(g.Logger)

	result, err := svc.Run(context.Background(), build.BuildRequest{Clean: b.Clean, DryRun: b.DryRun})
	if err != nil {
		return err
	}

	out := g.out()
	for _, p := range result.Collisions {
		_, _ = fmt.Fprintf(out, "warning: several pages render to %s\n", p)
	}
	dest := result.OutputPath
	if rel, relErr := filepath.Rel(cfg.Root, dest); relErr == nil {
		dest = rel
	}
	if b.DryRun {
		_, _ = fmt.Fprintf(out, "Checked %d pages (%s)\n", len(result.Pages), result.Status)
		return nil
	}
	_, _ = fmt.Fprintf(out, "Built %d pages into %s in %s (%s)\n", result.Rendered, dest, result.Duration.Round(1e6), result.Status)
	return nil
}
