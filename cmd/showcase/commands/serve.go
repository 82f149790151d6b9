package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/showcase/internal/build"
	"git.home.luguber.info/inful/showcase/internal/config"
	"git.home.luguber.info/inful/showcase/internal/logfields"
	"git.home.luguber.info/inful/showcase/internal/metrics"
	"git.home.luguber.info/inful/showcase/internal/server"
	"git.home.luguber.info/inful/showcase/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Host      string `help:"Listen host (overrides server.host)"`
	Port      int    `short:"p" help:"Listen port (overrides server.port)"`
	NoMetrics bool   `name:"no-metrics" help:"Do not expose Prometheus metrics"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Host != "" {
		cfg.Server.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, g, cfg, !s.NoMetrics)
}

// serve runs the preview loop until ctx is done.
func serve(ctx context.Context, g *Global, cfg *config.Config, withMetrics bool) error {
	reg, err := build.DefaultRegistry(cfg)
	if err != nil {
		return err
	}

	svc := build.NewService(cfg, reg).WithLogger(g.Logger)
	var gatherer prom.Gatherer
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if withMetrics {
		promReg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(promReg)
		gatherer = promReg
		svc.WithRecorder(recorder)
	}

	watchReqs, err := svc.Configure(ctx)
	if err != nil {
		return err
	}

	state := &server.BuildState{}
	rebuild := func(ctx context.Context) error {
		result, err := svc.Run(ctx, build.BuildRequest{})
		state.Record(result, err)
		return err
	}
	if err := rebuild(ctx); err != nil {
		g.Logger.Error("Initial build failed; serving the error until the next good build", logfields.Error(err))
	}

	srv := server.New(cfg.Server, cfg.OutputDir(), state, gatherer, g.Logger)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			g.Logger.Warn("Preview server shutdown error", logfields.Error(err))
		}
	}()
	_, _ = fmt.Fprintf(g.out(), "Serving %s at %s\n", cfg.OutputDir(), srv.URL())

	roots := []string{cfg.SourceDir()}
	for _, r := range watchReqs {
		roots = append(roots, filepath.Join(cfg.Root, filepath.FromSlash(r.Path)))
	}
	w, err := watch.New(roots, rebuild, watch.Options{
		Debounce:       cfg.Watch.Debounce,
		RescanInterval: cfg.Watch.RescanInterval,
		Exclude:        []string{cfg.OutputDir()},
		Logger:         g.Logger,
		OnTrigger:      recorder.IncRebuildTrigger,
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
