package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, filepath.Dir(path), cfg.Root)
	require.Equal(t, PatternList{DefaultTemplatePath}, cfg.Showcase.TemplatePath)
	require.Equal(t, DefaultShowcasePath, cfg.Showcase.ShowcasePath)
	require.NotNil(t, cfg.Showcase.TemplateLocals)
	require.Empty(t, cfg.Showcase.TemplateLocals)
	require.Equal(t, filepath.Join(filepath.Dir(path), "source"), cfg.SourceDir())
	require.Equal(t, filepath.Join(filepath.Dir(path), "build"), cfg.OutputDir())
	require.Equal(t, DefaultPort, cfg.Server.Port)
	require.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestTemplatePathStringOrList(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		cfg, err := Parse([]byte("showcase:\n  template_path: docs/**/*.html.erb\n"), ".")
		require.NoError(t, err)
		require.Equal(t, PatternList{"docs/**/*.html.erb"}, cfg.Showcase.TemplatePath)
	})

	t.Run("list", func(t *testing.T) {
		cfg, err := Parse([]byte("showcase:\n  template_path:\n    - a/*.html.tmpl\n    - ''\n    - b/**/*.md\n"), ".")
		require.NoError(t, err)
		require.Equal(t, PatternList{"a/*.html.tmpl", "b/**/*.md"}, cfg.Showcase.TemplatePath)
	})

	t.Run("mapping is rejected", func(t *testing.T) {
		_, err := Parse([]byte("showcase:\n  template_path:\n    a: b\n"), ".")
		require.Error(t, err)
		require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := Parse([]byte("showcase:\n  template_path: \"templates/[\"\n"), ".")
		require.Error(t, err)
		require.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
	})

	t.Run("patterns are cleaned", func(t *testing.T) {
		cfg, err := Parse([]byte("showcase:\n  template_path:\n    - ./templates/**/*.html.*\n    - templates/../docs/*.md\n"), ".")
		require.NoError(t, err)
		require.Equal(t, PatternList{"templates/**/*.html.*", "docs/*.md"}, cfg.Showcase.TemplatePath)
	})

	t.Run("pattern outside source", func(t *testing.T) {
		_, err := Parse([]byte("showcase:\n  template_path: ../shared/*.html.tmpl\n"), ".")
		require.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
	})
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SHOWCASE_PREFIX", "components/")
	path := writeConfig(t, "showcase:\n  showcase_path: ${SHOWCASE_PREFIX}\n  template_locals:\n    brand: acme\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "components/", cfg.Showcase.ShowcasePath)
	require.Equal(t, "acme", cfg.Showcase.TemplateLocals["brand"])
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SHOWCASE_TEST_OUTPUT=dist\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("SHOWCASE_TEST_OUTPUT", "")
	require.NoError(t, os.Unsetenv("SHOWCASE_TEST_OUTPUT"))

	path := filepath.Join(dir, "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: ${SHOWCASE_TEST_OUTPUT}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dist", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLoggingNormalization(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: WARNING\n  format: ' JSON '\n"), ".")
	require.NoError(t, err)
	require.Equal(t, LogLevelWarn, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)

	_, err = Parse([]byte("logging:\n  level: chatty\n"), ".")
	require.Error(t, err)
}

func TestValidation(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 70000\n"), ".")
	require.Error(t, err)

	_, err = Parse([]byte("watch:\n  debounce: -1s\n"), ".")
	require.Error(t, err)

	_, err = Parse([]byte("server:\n  health_path: health\n"), ".")
	require.Error(t, err)

	_, err = Parse([]byte("server:\n  metrics_path: /health\n"), ".")
	require.Error(t, err)

	cfg, err := Parse([]byte("watch:\n  debounce: 1s\n  rescan_interval: 1m\n"), ".")
	require.NoError(t, err)
	require.Equal(t, time.Second, cfg.Watch.Debounce)
	require.Equal(t, time.Minute, cfg.Watch.RescanInterval)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "showcase.yaml")

	require.NoError(t, Init(path, false))
	err := Init(path, false)
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Dir(path), cfg.Root)
	require.Equal(t, PatternList{DefaultTemplatePath}, cfg.Showcase.TemplatePath)
	require.Equal(t, "Component Showcase", cfg.Showcase.TemplateLocals["site_name"])
}
