package showcase

import (
	"maps"

	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

// Locals set by the extension.
const (
	LocalTemplateName      = "template_name"
	LocalTemplateResources = "template_resources"
	LocalGitRef            = "git_ref"
	LocalShowcasePath      = "showcase_path"
)

// BuildResource creates the proxy page for one template. The defaults map is
// copied, never modified.
func BuildResource(templatePath, prefix string, defaults map[string]any) *sitemap.Resource {
	r := sitemap.NewProxy(BuildURL(templatePath, prefix), BuildSourcePath(templatePath))
	r.Locals = make(map[string]any, len(defaults)+1)
	maps.Copy(r.Locals, defaults)
	r.Locals[LocalTemplateName] = TemplateName(templatePath)
	return r
}

// BuildIndex creates the listing page for the generated resources. The page
// renders the built-in index template without the site layout. It fails with
// a fatal not_found error when the built-in template is missing.
func BuildIndex(builtin Builtin, prefix string, resources []*sitemap.Resource, gitRef string) (*sitemap.Resource, error) {
	if err := builtin.Check(IndexTemplate); err != nil {
		return nil, err
	}

	listed := make([]*sitemap.Resource, len(resources))
	copy(listed, resources)

	index := sitemap.NewPage(IndexURL(prefix), IndexTemplate, builtin.FS)
	index.Options.NoLayout = true
	index.Locals[LocalTemplateResources] = listed
	index.Locals[LocalGitRef] = gitRef
	index.Locals[LocalShowcasePath] = NormalizePrefix(prefix)
	return index, nil
}

// ExposeResources returns copies of resources whose locals also carry listed
// under template_resources, so any template can list the showcase. The
// resources and their locals maps are not modified.
func ExposeResources(resources, listed []*sitemap.Resource) []*sitemap.Resource {
	out := make([]*sitemap.Resource, len(resources))
	for i, r := range resources {
		cp := *r
		cp.Locals = make(map[string]any, len(r.Locals)+1)
		maps.Copy(cp.Locals, r.Locals)
		cp.Locals[LocalTemplateResources] = listed
		out[i] = &cp
	}
	return out
}
