// Package processor loads configured GeoJSON layers and converts them.
package processor

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/geo"
	"github.com/woozymasta/geojson/internal/geojson"
	"github.com/woozymasta/geojson/internal/jsonvalue"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// maxBodySize caps remote layer downloads.
const maxBodySize = 64 << 20

// LoadLayer reads the layer source and converts it.
// Inline data has priority over the URL, which has priority over the path.
func LoadLayer(ctx context.Context, client *http.Client, layer config.Layer, conv *geojson.Converter) (geo.GeoJSON, error) {
	var (
		value jsonvalue.Value
		err   error
	)

	switch {
	case layer.Inline != nil:
		log.Debug().
			Str("layer", layer.Name).
			Msg("Using inline GeoJSON data from config")
		value = jsonvalue.FromYAML(layer.Inline)

	case layer.URL != "":
		log.Debug().
			Str("layer", layer.Name).
			Str("source", layer.URL).
			Msg("Downloading layer")

		var data []byte
		data, err = fetch(ctx, client, layer.URL)
		if err != nil {
			return nil, err
		}
		value, err = Parse(data, layer.Format)

	case layer.Path != "":
		log.Debug().
			Str("layer", layer.Name).
			Str("source", layer.Path).
			Msg("Reading layer file")

		var data []byte
		data, err = os.ReadFile(layer.Path)
		if err != nil {
			return nil, errors.Wrap(err, "read layer")
		}
		value, err = Parse(data, layer.Format)

	default:
		return nil, errors.Errorf("layer %q has no source", layer.Name)
	}

	if err != nil {
		return nil, err
	}

	return conv.Convert(value)
}

// Parse turns raw document bytes into a Value. Format is "json" or "yaml";
// empty means json.
func Parse(data []byte, format string) (jsonvalue.Value, error) {
	switch format {
	case "", config.FormatJSON:
		v, err := jsonvalue.ParseJSON(data)
		return v, errors.WithStack(err)
	case config.FormatYAML:
		v, err := jsonvalue.ParseYAML(data)
		return v, errors.Wrap(err, "parse yaml")
	}
	return nil, errors.Errorf("unsupported format %q", format)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download layer")
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("download layer: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read layer body")
	}

	return data, nil
}
