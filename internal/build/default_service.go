package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"git.home.luguber.info/inful/showcase/internal/config"
	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/logfields"
	"git.home.luguber.info/inful/showcase/internal/metrics"
	"git.home.luguber.info/inful/showcase/internal/plugin"
	"git.home.luguber.info/inful/showcase/internal/render"
	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

const tracerName = "git.home.luguber.info/inful/showcase/internal/build"

// Stage names used in logs, metrics and spans.
const (
	StageResources = "resources"
	StageValidate  = "validate"
	StageRender    = "render"
)

// Service is the standard build implementation.
type Service struct {
	cfg        *config.Config
	registry   *plugin.Registry
	recorder   metrics.Recorder
	logger     *slog.Logger
	tracer     trace.Tracer
	newBuildID func() string
}

// NewService creates a build service for cfg running the extensions in registry.
func NewService(cfg *config.Config, registry *plugin.Registry) *Service {
	if registry == nil {
		registry = plugin.NewRegistry()
	}
	return &Service{
		cfg:        cfg,
		registry:   registry,
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
		newBuildID: uuid.NewString,
	}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger sets the logger.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Service) pluginContext(ctx context.Context) (*plugin.PluginContext, error) {
	if s.cfg == nil {
		return nil, derrors.ConfigError("config required").Build()
	}
	src := s.cfg.SourceDir()
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		b := derrors.NotFoundError("source directory not found").WithContext("path", src)
		if err != nil {
			b = b.WithCause(err)
		}
		return nil, b.Build()
	}
	return plugin.NewPluginContext(ctx, s.logger, s.cfg.Root, src, os.DirFS(src)), nil
}

// Configure runs every extension's Configure hook once and returns the
// combined watch requests.
func (s *Service) Configure(ctx context.Context) ([]plugin.WatchRequest, error) {
	pctx, err := s.pluginContext(ctx)
	if err != nil {
		return nil, err
	}

	var reqs []plugin.WatchRequest
	for _, ext := range s.registry.Extensions() {
		r, err := ext.Configure(pctx)
		if err != nil {
			return nil, extensionError(err, ext, plugin.HookConfigure)
		}
		reqs = append(reqs, r...)
	}
	return reqs, nil
}

// Resources returns the full resource list without rendering anything.
func (s *Service) Resources(ctx context.Context) ([]*sitemap.Resource, error) {
	pctx, err := s.pluginContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.resources(pctx)
}

func (s *Service) resources(pctx *plugin.PluginContext) ([]*sitemap.Resource, error) {
	resources, err := sitemap.Scan(pctx.SourceFS, sitemap.SkipLayout(filepath.ToSlash(s.cfg.Layout)))
	if err != nil {
		return nil, derrors.FileSystemError("failed to scan source directory").WithCause(err).
			WithContext("path", pctx.SourceDir).
			Build()
	}

	for _, ext := range s.registry.Extensions() {
		next, err := ext.ManipulateResourceList(pctx, resources)
		if err != nil {
			return nil, extensionError(err, ext, plugin.HookResourceList)
		}
		resources = next
	}
	return resources, nil
}

// Run executes the complete build pipeline.
func (s *Service) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{
		BuildID:   s.newBuildID(),
		StartTime: start,
	}
	if s.cfg != nil {
		result.OutputPath = s.cfg.OutputDir()
	}

	ctx, span := s.tracer.Start(ctx, "build", trace.WithAttributes(
		attribute.String("build.id", result.BuildID),
		attribute.Bool("build.dry_run", req.DryRun),
	))
	defer span.End()

	logger := s.logger.With(logfields.BuildID(result.BuildID))
	fail := func(stage string, status BuildStatus, err error) (*BuildResult, error) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(start)
		label, outcome := metrics.ResultFatal, metrics.BuildOutcomeFailed
		if status == BuildStatusCancelled {
			label, outcome = metrics.ResultCanceled, metrics.BuildOutcomeCanceled
		}
		if stage != "" {
			s.recorder.IncStageResult(stage, label)
		}
		s.recorder.IncBuildOutcome(outcome)
		s.recorder.ObserveBuildDuration(result.Duration)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("Build failed", logfields.Stage(stage), logfields.Error(err))
		return result, err
	}

	pctx, err := s.pluginContext(ctx)
	if err != nil {
		return fail("", BuildStatusFailed, err)
	}
	pctx = pctx.WithBuildID(result.BuildID)
	logger.Info("Build started", logfields.Path(pctx.SourceDir))

	// Stage 1: resources
	stageStart := time.Now()
	_, stageSpan := s.tracer.Start(ctx, StageResources)
	resources, err := s.resources(pctx)
	stageSpan.End()
	if err != nil {
		return fail(StageResources, BuildStatusFailed, err)
	}
	s.stageDone(logger, StageResources, stageStart, metrics.ResultSuccess, logfields.Count(len(resources)))

	// Stage 2: validate
	stageStart = time.Now()
	result.Collisions = sitemap.Collisions(resources)
	validateResult := metrics.ResultSuccess
	if len(result.Collisions) > 0 {
		validateResult = metrics.ResultWarning
		s.recorder.IncCollisions(len(result.Collisions))
		for _, p := range result.Collisions {
			logger.Warn("Multiple pages render to the same path; the last one wins", logfields.Path(p))
		}
	}
	s.stageDone(logger, StageValidate, stageStart, validateResult)

	// Stage 3: render
	stageStart = time.Now()
	renderCtx, renderSpan := s.tracer.Start(ctx, StageRender)
	err = s.render(renderCtx, logger, req, pctx, resources, result)
	renderSpan.End()
	if err != nil {
		status := BuildStatusFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = BuildStatusCancelled
		}
		return fail(StageRender, status, err)
	}
	s.stageDone(logger, StageRender, stageStart, metrics.ResultSuccess, logfields.Count(result.Rendered))

	kinds := map[sitemap.Kind]int{}
	for _, r := range resources {
		kinds[r.Kind]++
	}
	s.recorder.SetPages(string(sitemap.KindPage), kinds[sitemap.KindPage])
	s.recorder.SetPages(string(sitemap.KindProxy), kinds[sitemap.KindProxy])

	result.Status = BuildStatusSuccess
	outcome := metrics.BuildOutcomeSuccess
	if len(result.Collisions) > 0 {
		result.Status = BuildStatusWarning
		outcome = metrics.BuildOutcomeWarning
	}
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	s.recorder.IncBuildOutcome(outcome)
	s.recorder.ObserveBuildDuration(result.Duration)
	span.SetAttributes(attribute.Int("build.pages", len(resources)))

	logger.Info("Build completed",
		slog.String("status", string(result.Status)),
		logfields.Count(len(resources)),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	return result, nil
}

func (s *Service) render(ctx context.Context, logger *slog.Logger, req BuildRequest, pctx *plugin.PluginContext, resources []*sitemap.Resource, result *BuildResult) error {
	out := s.cfg.OutputDir()
	if req.Clean && !req.DryRun {
		if err := cleanOutput(out); err != nil {
			return err
		}
	}

	r := render.New(sitemap.New(pctx.SourceFS), out, s.cfg.Layout, logger)
	for _, res := range resources {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Pages = append(result.Pages, pageResult(res))

		if req.DryRun {
			if _, err := r.Execute(res); err != nil {
				return err
			}
			continue
		}
		if _, err := r.Render(res); err != nil {
			return err
		}
		result.Rendered++
		logger.Debug("Rendered page", logfields.Path(res.OutputPath()))
	}
	return nil
}

func (s *Service) stageDone(logger *slog.Logger, stage string, start time.Time, res metrics.ResultLabel, attrs ...any) {
	d := time.Since(start)
	s.recorder.ObserveStageDuration(stage, d)
	s.recorder.IncStageResult(stage, res)
	args := append([]any{logfields.Stage(stage), logfields.DurationMS(float64(d.Microseconds()) / 1000)}, attrs...)
	logger.Debug("Stage complete", args...)
}

func pageResult(r *sitemap.Resource) PageResult {
	return PageResult{
		Path:     r.OutputPath(),
		Kind:     string(r.Kind),
		Source:   r.Source,
		Target:   r.Target,
		Template: r.TemplateName(),
	}
}

// cleanOutput empties the output directory, refusing paths that would remove
// the filesystem root or the working directory.
func cleanOutput(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	wd, _ := os.Getwd()
	if abs == filepath.Dir(abs) || abs == wd {
		return derrors.ValidationError("refusing to clean output directory").
			WithContext("path", abs).
			Build()
	}
	if err := os.RemoveAll(abs); err != nil {
		return derrors.FileSystemError("failed to clean output directory").WithCause(err).
			Retryable().
			WithContext("path", abs).
			Build()
	}
	return nil
}

func extensionError(err error, ext plugin.Extension, hook string) error {
	if _, ok := derrors.AsClassified(err); ok {
		return err
	}
	name := ext.Metadata().Name
	return derrors.BuildError("extension failed").WithCause(&plugin.HookError{Plugin: name, Hook: hook, Err: err}).
		WithContext("extension", name).
		WithContext("hook", hook).
		Build()
}
