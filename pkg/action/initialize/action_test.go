package initialize

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/viewgen/pkg/manifest"
	"github.com/cmmoran/viewgen/pkg/view"
)

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts, err := view.New(view.WithBasePackage("com.acme.view"), view.WithJoinPrefix("join"))
	require.NoError(t, err)

	written, err := Generate(fs, "config.yaml", opts, false)
	require.NoError(t, err)
	require.Equal(t, []string{"config.yaml", opts.Manifest}, written)

	data, err := afero.ReadFile(fs, "config.yaml")
	require.NoError(t, err)
	var got configFile
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Equal(t, opts, got.View)

	m, err := manifest.Load(fs, opts.Manifest)
	require.NoError(t, err)
	require.Empty(t, m.Views)
}

func TestGenerateExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	opts := view.NewOptions()
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte("view: {}\n"), 0o644))

	_, err := Generate(fs, "config.yaml", opts, false)
	require.ErrorIs(t, err, ErrExists)

	// the manifest is kept when forcing the config
	m := &manifest.Manifest{Current: "com.acme.View", Views: []manifest.View{{Name: "View", Package: "com.acme"}}}
	require.NoError(t, m.Save(fs, opts.Manifest))

	written, err := Generate(fs, "config.yaml", opts, true)
	require.NoError(t, err)
	require.Equal(t, []string{"config.yaml"}, written)

	kept, err := manifest.Load(fs, opts.Manifest)
	require.NoError(t, err)
	require.Equal(t, "com.acme.View", kept.Current)
}
