// Package plugin defines the extension contract between the site build and
// the extensions that contribute pages to it.
//
// An extension is driven through two hooks. Configure runs once at startup
// and may ask the host to watch extra paths. ManipulateResourceList runs on
// every build and returns the full resource list the build should render.
package plugin

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

// Hook names, as reported in HookError.
const (
	HookConfigure    = "configure"
	HookResourceList = "manipulate_resource_list"
)

// PluginType identifies the category of plugin.
type PluginType string

// PluginTypeExtension contributes sitemap resources.
const PluginTypeExtension PluginType = "extension"

// Plugin is anything that can be registered.
type Plugin interface {
	Metadata() PluginMetadata
}

// Extension contributes resources to the sitemap.
type Extension interface {
	Plugin

	// Configure is called once before the first build.
	Configure(pctx *PluginContext) ([]WatchRequest, error)

	// ManipulateResourceList receives the resources gathered so far and
	// returns the list the build continues with. Implementations must not
	// mutate the input slice.
	ManipulateResourceList(pctx *PluginContext, resources []*sitemap.Resource) ([]*sitemap.Resource, error)
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	Name        string
	Version     string
	Type        PluginType
	Description string
}

func (m PluginMetadata) String() string {
	return m.Name + "@" + m.Version
}

// Validate reports every missing or invalid field at once.
func (m PluginMetadata) Validate() error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if m.Version == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if m.Type != PluginTypeExtension {
		errs = append(errs, fmt.Errorf("unsupported type %q", m.Type))
	}
	return errors.Join(errs...)
}

// WatchType says how the host treats changes under a watched path.
type WatchType string

// WatchSource marks files that feed templates; changes trigger a rebuild.
const WatchSource WatchType = "source"

// WatchRequest asks the host to reload when files under Path change.
// Path is relative to the site root.
type WatchRequest struct {
	Type WatchType
	Path string
}

// HookError records which extension hook failed.
type HookError struct {
	Plugin string
	Hook   string
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Plugin, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
