package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
geometry_collections: true
layers:
  - name: towns
    path: data/towns.geojson
  - name: roads
    url: https://example.com/roads.yaml
    format: yaml
  - name: inline
    geojson:
      type: FeatureCollection
      features: []
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.GeometryCollections)
	require.Len(t, cfg.Layers, 3)
	assert.Equal(t, "towns", cfg.Layers[0].Name)
	assert.Equal(t, FormatJSON, cfg.Layers[0].Format)
	assert.Equal(t, FormatYAML, cfg.Layers[1].Format)
	require.NotNil(t, cfg.Layers[2].Inline)
	assert.Nil(t, cfg.Layers[0].Inline)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"no name", "layers:\n  - path: a.json\n", "has no name"},
		{"duplicate", "layers:\n  - {name: a, path: a.json}\n  - {name: a, path: b.json}\n", "duplicate layer name"},
		{"no source", "layers:\n  - name: a\n", "has no source"},
		{"bad format", "layers:\n  - {name: a, path: a.json, format: xml}\n", "unsupported format"},
		{"not yaml", "layers: [", "parse config"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
