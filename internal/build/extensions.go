package build

import (
	"git.home.luguber.info/inful/showcase/internal/config"
	"git.home.luguber.info/inful/showcase/internal/plugin"
	"git.home.luguber.info/inful/showcase/internal/showcase"
)

// DefaultRegistry returns a registry holding the extensions enabled by cfg.
func DefaultRegistry(cfg *config.Config) (*plugin.Registry, error) {
	ext, err := showcase.NewExtension(showcase.OptionsFromConfig(cfg.Showcase))
	if err != nil {
		return nil, err
	}
	reg := plugin.NewRegistry()
	if err := reg.Register(ext); err != nil {
		return nil, err
	}
	return reg, nil
}
