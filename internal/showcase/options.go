package showcase

import (
	"fmt"
	"maps"
	"strings"

	"git.home.luguber.info/inful/showcase/internal/config"
	foundationerrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
)

const (
	DefaultTemplatePath = "templates/**/*.html.*"
	DefaultShowcasePath = "showcase/"
)

// Options configures the showcase extension.
type Options struct {
	// TemplatePath lists glob patterns relative to the source directory.
	TemplatePath []string
	// TemplateLocals are copied into every generated page.
	TemplateLocals map[string]any
	// ShowcasePath is the destination prefix; one trailing slash is ignored.
	ShowcasePath string
	// TemplatesDir overrides the embedded built-in templates. Relative paths
	// are resolved against the site root.
	TemplatesDir string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TemplatePath:   []string{DefaultTemplatePath},
		TemplateLocals: map[string]any{},
		ShowcasePath:   DefaultShowcasePath,
	}
}

// OptionsFromConfig maps the showcase section of the site configuration.
func OptionsFromConfig(cfg config.ShowcaseConfig) Options {
	return Options{
		TemplatePath:   []string(cfg.TemplatePath),
		TemplateLocals: cfg.TemplateLocals,
		ShowcasePath:   cfg.ShowcasePath,
		TemplatesDir:   cfg.TemplatesDir,
	}
}

// Prefix returns the normalized destination prefix.
func (o Options) Prefix() string {
	return NormalizePrefix(o.ShowcasePath)
}

// normalize returns a copy with blank patterns dropped and defaults filled
// in. The caller's map and slice are never shared.
func (o Options) normalize() Options {
	out := Options{
		TemplateLocals: maps.Clone(o.TemplateLocals),
		ShowcasePath:   o.ShowcasePath,
		TemplatesDir:   strings.TrimSpace(o.TemplatesDir),
	}
	for _, p := range o.TemplatePath {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		// Invalid patterns are kept as written so validate can report them.
		if clean, err := CleanPattern(p); err == nil {
			p = clean
		}
		out.TemplatePath = append(out.TemplatePath, p)
	}
	if out.TemplateLocals == nil {
		out.TemplateLocals = map[string]any{}
	}
	if out.ShowcasePath == "" {
		out.ShowcasePath = DefaultShowcasePath
	}
	return out
}

func (o Options) validate() error {
	if len(o.TemplatePath) == 0 {
		return foundationerrors.ValidationError("showcase template_path needs at least one pattern").
			WithContext("field", "template_path").
			Build()
	}
	for _, p := range o.TemplatePath {
		clean, err := CleanPattern(p)
		if err != nil {
			return invalidPattern(p, err)
		}
		if clean == "." {
			return invalidPattern(p, fmt.Errorf("glob %q names the source directory itself", p))
		}
	}
	return nil
}
