// Package config handles configuration loading for the GeoJSON layers.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported layer source formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the root configuration file structure.
type Config struct {
	Layers []Layer `yaml:"layers" json:"layers"`

	// GeometryCollections enables recursive GeometryCollection conversion
	// for every layer.
	GeometryCollections bool `yaml:"geometry_collections,omitempty" json:"geometry_collections,omitempty"`
}

// Layer is a single GeoJSON source.
type Layer struct {
	// defining GeoJSON directly in config.yaml
	Inline *yaml.Node `yaml:"geojson,omitempty" json:"-"`

	Name   string `yaml:"name" json:"name"`
	Path   string `yaml:"path,omitempty" json:"-"`
	URL    string `yaml:"url,omitempty" json:"-"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // json or yaml, json by default
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return &cfg, nil
}

// Validate checks layer names and sources and fills in default formats.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Layers))

	for i := range c.Layers {
		layer := &c.Layers[i]

		if layer.Name == "" {
			return errors.Errorf("layer #%d has no name", i)
		}
		if seen[layer.Name] {
			return errors.Errorf("duplicate layer name %q", layer.Name)
		}
		seen[layer.Name] = true

		if layer.Inline == nil && layer.Path == "" && layer.URL == "" {
			return errors.Errorf("layer %q has no source: set geojson, url or path", layer.Name)
		}

		switch layer.Format {
		case "":
			layer.Format = FormatJSON
		case FormatJSON, FormatYAML:
		default:
			return errors.Errorf("layer %q has unsupported format %q", layer.Name, layer.Format)
		}
	}

	return nil
}
