package config

import "time"

// Default values applied when the corresponding field is empty.
const (
	DefaultTemplatePath = "templates/**/*.html.*"
	DefaultShowcasePath = "showcase/"
	DefaultSource       = "source"
	DefaultOutput       = "build"
	DefaultLayout       = "layouts/layout.html.tmpl"
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 4567
	DefaultMetricsPath  = "/metrics"
	DefaultHealthPath   = "/health"
	DefaultDebounce     = 300 * time.Millisecond
)

// applyDefaults fills unset fields. It runs after normalization so canonical
// values drive defaults.
func applyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}

	sc := &cfg.Showcase
	if len(sc.TemplatePath) == 0 {
		sc.TemplatePath = PatternList{DefaultTemplatePath}
	}
	if sc.TemplateLocals == nil {
		sc.TemplateLocals = map[string]any{}
	}
	if sc.ShowcasePath == "" {
		sc.ShowcasePath = DefaultShowcasePath
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = DefaultMetricsPath
	}
	if cfg.Server.HealthPath == "" {
		cfg.Server.HealthPath = DefaultHealthPath
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
