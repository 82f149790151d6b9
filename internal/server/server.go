package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/showcase/internal/config"
	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/logfields"
	"git.home.luguber.info/inful/showcase/internal/metrics"
)

// Server is the preview HTTP server.
type Server struct {
	cfg       config.ServerConfig
	outputDir string
	state     *BuildState
	gatherer  prom.Gatherer
	logger    *slog.Logger
	adapter   *derrors.HTTPErrorAdapter

	srv *http.Server
	ln  net.Listener
}

// New returns a server for the site rendered into outputDir. A nil gatherer
// disables the metrics endpoint.
func New(cfg config.ServerConfig, outputDir string, state *BuildState, gatherer prom.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if state == nil {
		state = &BuildState{}
	}
	return &Server{
		cfg:       cfg,
		outputDir: outputDir,
		state:     state,
		gatherer:  gatherer,
		logger:    logger,
		adapter:   derrors.NewHTTPErrorAdapter(logger),
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+s.cfg.HealthPath, s.handleHealth)
	if s.gatherer != nil && s.cfg.MetricsPath != "" {
		mux.Handle("GET "+s.cfg.MetricsPath, metrics.HTTPHandler(s.gatherer))
	}
	mux.Handle("/", s.siteHandler())
	return chain(s.logger, s.adapter, mux)
}

func (s *Server) siteHandler() http.Handler {
	files := http.FileServer(http.Dir(s.outputDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if snap := s.state.Snapshot(); snap.Err != nil && !snap.HasGoodBuild {
			s.adapter.WriteErrorResponse(w, snap.Err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		files.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.state.Snapshot()
	if snap.Err != nil {
		s.adapter.WriteErrorResponse(w, snap.Err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap.health()); err != nil {
		s.logger.Error("Failed to encode health response", logfields.Error(err))
	}
}

// Start binds the listen address and serves in the background. Binding
// errors are returned before any goroutine starts.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return derrors.ConfigError("preview server failed to bind").WithCause(err).
			WithContext("addr", addr).
			Build()
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Preview server error", logfields.Error(err))
		}
	}()
	s.logger.Info("Preview server listening", logfields.Addr(s.Addr()), slog.String("url", s.URL()))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s/", s.Addr())
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}
	s.logger.Info("Preview server stopped")
	return nil
}
