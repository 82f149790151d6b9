package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/showcase/internal/build"
	"git.home.luguber.info/inful/showcase/internal/config"
	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/metrics"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:        "127.0.0.1",
		Port:        0,
		MetricsPath: config.DefaultMetricsPath,
		HealthPath:  config.DefaultHealthPath,
	}
}

func newTestServer(t *testing.T, state *BuildState, reg *prom.Registry) (*httptest.Server, string) {
	t.Helper()
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, "showcase"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(out, "showcase", "index.html"), []byte("<h1>Template Showcase</h1>"), 0o600))

	var gatherer prom.Gatherer
	if reg != nil {
		gatherer = reg
	}
	s := New(testConfig(), out, state, gatherer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, out
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServesSite(t *testing.T) {
	state := &BuildState{}
	state.Record(&build.BuildResult{BuildID: "b1", Status: build.BuildStatusSuccess}, nil)
	ts, _ := newTestServer(t, state, nil)

	code, body := get(t, ts.URL+"/showcase/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Template Showcase")

	code, _ = get(t, ts.URL+"/showcase/missing/")
	require.Equal(t, http.StatusNotFound, code)
}

func TestHealth(t *testing.T) {
	state := &BuildState{}
	ts, _ := newTestServer(t, state, nil)

	code, body := get(t, ts.URL+config.DefaultHealthPath)
	require.Equal(t, http.StatusOK, code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Equal(t, "starting", resp.Status)

	state.Record(&build.BuildResult{
		BuildID: "b2",
		Status:  build.BuildStatusWarning,
		Pages:   []build.PageResult{{Path: "showcase/index.html"}},
		EndTime: time.Now(),
	}, nil)
	code, body = get(t, ts.URL+config.DefaultHealthPath)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Equal(t, "ok", resp.Status)
	require.True(t, resp.HasGoodBuild)
	require.Equal(t, "b2", resp.LastBuild.ID)
	require.Equal(t, 1, resp.LastBuild.Pages)
}

func TestHealthReportsBuildError(t *testing.T) {
	state := &BuildState{}
	ts, _ := newTestServer(t, state, nil)

	err := derrors.TemplateError("cannot parse template").WithContext("path", "templates/broken.html.tmpl").Build()
	state.Record(&build.BuildResult{Status: build.BuildStatusFailed}, err)

	code, body := get(t, ts.URL+config.DefaultHealthPath)
	require.Equal(t, http.StatusServiceUnavailable, code)
	var resp derrors.HTTPErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Equal(t, "template", resp.Code)
	require.Equal(t, "templates/broken.html.tmpl", resp.Details["path"])

	// No good build yet: the site itself shows the error.
	code, _ = get(t, ts.URL+"/showcase/")
	require.Equal(t, http.StatusServiceUnavailable, code)

	// After a good build, the last good output keeps being served.
	state.Record(&build.BuildResult{Status: build.BuildStatusSuccess}, nil)
	state.Record(&build.BuildResult{Status: build.BuildStatusFailed}, err)
	code, _ = get(t, ts.URL+"/showcase/")
	require.Equal(t, http.StatusOK, code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prom.NewRegistry()
	metrics.NewPrometheusRecorder(reg).IncRebuildTrigger("change")
	ts, _ := newTestServer(t, &BuildState{}, reg)

	code, body := get(t, ts.URL+config.DefaultMetricsPath)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `showcase_rebuild_triggers_total{reason="change"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	ts, _ := newTestServer(t, &BuildState{}, nil)
	code, _ := get(t, ts.URL+config.DefaultMetricsPath)
	require.Equal(t, http.StatusNotFound, code)
}

func TestStartStop(t *testing.T) {
	s := New(testConfig(), t.TempDir(), nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Equal(t, "", s.Addr())
	require.NoError(t, s.Start(context.Background()))

	code, _ := get(t, s.URL()+"health")
	require.Equal(t, http.StatusOK, code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestStartBindError(t *testing.T) {
	first := New(testConfig(), t.TempDir(), nil, nil, nil)
	require.NoError(t, first.Start(context.Background()))
	t.Cleanup(func() { _ = first.Stop(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)
	second := New(cfg, t.TempDir(), nil, nil, nil)
	err = second.Start(context.Background())
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	c, ok := derrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, "preview server failed to bind", c.Message())
}

func TestPanicRecovery(t *testing.T) {
	h := chain(slog.New(slog.NewTextHandler(io.Discard, nil)), derrors.NewHTTPErrorAdapter(nil), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
