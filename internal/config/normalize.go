package config

import (
	"path"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
)

// normalizeConfig case-folds enumerations and cleans paths before defaults apply.
func normalizeConfig(cfg *Config) error {
	level, err := logLevels.Parse(string(cfg.Logging.Level))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "invalid logging.level").Build()
	}
	cfg.Logging.Level = level

	format, err := logFormats.Parse(string(cfg.Logging.Format))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "invalid logging.format").Build()
	}
	cfg.Logging.Format = format

	patterns := make(PatternList, 0, len(cfg.Showcase.TemplatePath))
	for _, p := range cfg.Showcase.TemplatePath {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// "./a/*.tmpl" and "a/../a/*.tmpl" name the same files as "a/*.tmpl".
		patterns = append(patterns, path.Clean(filepath.ToSlash(p)))
	}
	cfg.Showcase.TemplatePath = patterns

	cfg.Showcase.ShowcasePath = strings.TrimSpace(cfg.Showcase.ShowcasePath)
	return nil
}
