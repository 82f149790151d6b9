// Package commands implements the showcase CLI subcommands.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/showcase/internal/config"
	"git.home.luguber.info/inful/showcase/internal/logfields"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "showcase.yaml"

// Global is shared state passed to every subcommand.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"showcase.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Render the site, including the template showcase"`
	List  ListCmd  `cmd:"" help:"List discovered templates and the pages they map to"`
	Serve ServeCmd `cmd:"" help:"Build, serve and rebuild on change"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration file and applies its logging section.
// A missing file at the default location falls back to defaults rooted at
// the working directory.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if errors.Is(err, config.ErrNotFound) && filepath.Base(root.Config) == DefaultConfigPath {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		g.logger().Debug("No configuration file; using defaults", logfields.Path(root.Config))
		cfg, err = config.Default(wd), nil
	}
	if err != nil {
		return nil, err
	}

	// A logger supplied by the caller is kept; only the process default is
	// replaced with one honoring the logging config.
	if g.Logger == nil || g.Logger == slog.Default() {
		g.Logger = newLogger(cfg.Logging, root.Verbose)
		slog.SetDefault(g.Logger)
	}
	return cfg, nil
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func newLogger(lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
