package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
)

// ErrNotFound is returned by Load when the configuration file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// Config is the showcase site configuration.
type Config struct {
	// Root is the site root. Watch paths and the git ref lookup are relative to it.
	// Defaults to the directory containing the configuration file.
	Root string `yaml:"root"`
	// Source holds the site's templates, relative to Root.
	Source string `yaml:"source"`
	// Output is where rendered pages are written, relative to Root.
	Output string `yaml:"output"`
	// Layout is an optional wrapping template, relative to Source. Missing layouts are ignored.
	Layout string `yaml:"layout,omitempty"`

	Showcase ShowcaseConfig `yaml:"showcase"`
	Server   ServerConfig   `yaml:"server"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ShowcaseConfig configures the template showcase extension.
type ShowcaseConfig struct {
	TemplatePath   PatternList    `yaml:"template_path"`           // Glob(s) relative to Source
	TemplateLocals map[string]any `yaml:"template_locals"`         // Defaults merged into every page
	ShowcasePath   string         `yaml:"showcase_path"`           // URL prefix, trailing slash ignored
	TemplatesDir   string         `yaml:"templates_dir,omitempty"` // Override for built-in templates, relative to Root
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MetricsPath string `yaml:"metrics_path"`
	HealthPath  string `yaml:"health_path"`
}

// WatchConfig configures rebuild-on-change behavior.
type WatchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	RescanInterval time.Duration `yaml:"rescan_interval"` // 0 disables periodic rescans
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// SourceDir returns the absolute-or-root-relative source directory.
func (c *Config) SourceDir() string {
	return c.resolve(c.Source)
}

// OutputDir returns the absolute-or-root-relative output directory.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Default returns a configuration rooted at root with all defaults applied.
func Default(root string) *Config {
	cfg := &Config{Root: root}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file, expands ${VAR} references, then
// normalizes, defaults and validates it.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	return Parse(data, filepath.Dir(configPath))
}

// Parse decodes configuration bytes. root is used when the document does not set one.
func Parse(data []byte, root string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to unmarshal config").Build()
	}
	if cfg.Root == "" {
		cfg.Root = root
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(root, cfg.Root)
	}

	if err := normalizeConfig(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads the first of .env/.env.local that exists.
// Existing process environment variables are not overwritten.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", envPath, err)
			continue
		}
		return
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default(".")
	example.Root = ""
	example.Showcase.TemplateLocals = map[string]any{"site_name": "Component Showcase"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return derrors.FileSystemError("failed to write config file").WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}
