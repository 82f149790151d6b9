package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
)

// ValidateConfig checks a normalized, defaulted configuration.
func ValidateConfig(cfg *Config) error {
	if len(cfg.Showcase.TemplatePath) == 0 {
		return derrors.ValidationError("showcase.template_path must contain at least one pattern").Build()
	}
	for _, p := range cfg.Showcase.TemplatePath {
		if !doublestar.ValidatePattern(p) {
			return derrors.ValidationError("invalid showcase.template_path pattern").
				WithContext("pattern", p).
				Build()
		}
		if rel := strings.TrimLeft(p, "/"); rel == ".." || strings.HasPrefix(rel, "../") {
			return derrors.ValidationError("showcase.template_path must stay inside the source directory").
				WithContext("pattern", p).
				Build()
		}
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return derrors.ValidationError("server.port out of range").
			WithContext("port", cfg.Server.Port).
			Build()
	}
	for field, p := range map[string]string{"server.health_path": cfg.Server.HealthPath, "server.metrics_path": cfg.Server.MetricsPath} {
		if !strings.HasPrefix(p, "/") || p == "/" {
			return derrors.ValidationError(field+" must be an absolute path below /").
				WithContext("path", p).
				Build()
		}
	}
	if cfg.Server.HealthPath == cfg.Server.MetricsPath {
		return derrors.ValidationError("server.health_path and server.metrics_path must differ").Build()
	}
	if cfg.Watch.Debounce < 0 {
		return derrors.ValidationError("watch.debounce must not be negative").Build()
	}
	if cfg.Watch.RescanInterval < 0 {
		return derrors.ValidationError("watch.rescan_interval must not be negative").Build()
	}
	return nil
}
