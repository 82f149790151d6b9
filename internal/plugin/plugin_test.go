package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/showcase/internal/sitemap"
)

type stubExtension struct {
	meta PluginMetadata
}

func (s stubExtension) Metadata() PluginMetadata { return s.meta }

func (stubExtension) Configure(*PluginContext) ([]WatchRequest, error) { return nil, nil }

func (stubExtension) ManipulateResourceList(_ *PluginContext, r []*sitemap.Resource) ([]*sitemap.Resource, error) {
	return r, nil
}

func stub(name string) Extension {
	return stubExtension{meta: PluginMetadata{Name: name, Version: "v1.0.0", Type: PluginTypeExtension}}
}

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    PluginMetadata
		wantErr []string
	}{
		{"valid", PluginMetadata{Name: "showcase", Version: "v1.0.0", Type: PluginTypeExtension}, nil},
		{"missing name", PluginMetadata{Version: "v1.0.0", Type: PluginTypeExtension}, []string{"name is required"}},
		{"everything wrong", PluginMetadata{Type: "theme"}, []string{"name is required", "version is required", `unsupported type "theme"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			for _, msg := range tt.wantErr {
				require.ErrorContains(t, err, msg)
			}
		})
	}
	require.Equal(t, "showcase@v1.0.0", stub("showcase").Metadata().String())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"zeta", "alpha", "showcase"} {
		require.NoError(t, r.Register(stub(n)))
	}

	var names []string
	for _, e := range r.Extensions() {
		names = append(names, e.Metadata().Name)
	}
	require.Equal(t, []string{"zeta", "alpha", "showcase"}, names)

	got, ok := r.Lookup("alpha")
	require.True(t, ok)
	require.Equal(t, "alpha", got.Metadata().Name)
	_, ok = r.Lookup("missing")
	require.False(t, ok)

	require.ErrorContains(t, r.Register(stub("alpha")), "already registered")
	require.Error(t, r.Register(nil))
	require.Error(t, r.Register(stubExtension{meta: PluginMetadata{Name: "bad"}}))
	require.Len(t, r.Extensions(), 3)
}

func TestHookError(t *testing.T) {
	err := &HookError{Plugin: "showcase", Hook: HookResourceList, Err: context.Canceled}
	require.Equal(t, "showcase manipulate_resource_list: context canceled", err.Error())
	require.True(t, errors.Is(err, context.Canceled))
}

func TestPluginContextWithBuildID(t *testing.T) {
	pctx := NewPluginContext(context.Background(), nil, "/site", "/site/source", nil)
	tagged := pctx.WithBuildID("b-1")

	require.Equal(t, "b-1", tagged.BuildID)
	require.Empty(t, pctx.BuildID)
	require.Equal(t, "/site", tagged.Root)
	require.Equal(t, "/site/source", tagged.SourceDir)
}
