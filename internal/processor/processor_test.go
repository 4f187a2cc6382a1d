package processor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/geo"
	"github.com/woozymasta/geojson/internal/geojson"
	"github.com/woozymasta/geojson/internal/jsonvalue"
)

const towns = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Point","coordinates":[1,2]}},
	{"type":"Feature","properties":{"name":"b"},"geometry":{"type":"Point","coordinates":[-3,4]}}
]}`

const roadsYAML = `
type: FeatureCollection
features:
  - type: Feature
    geometry:
      type: LineString
      coordinates: [[0, 0], [3, 4], [3, 0]]
`

func inlineNode(t *testing.T, doc string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	return &n
}

func TestLoadLayerSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/roads.yaml":
			_, _ = w.Write([]byte(roadsYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "towns.geojson")
	require.NoError(t, os.WriteFile(path, []byte(towns), 0o644))

	conv := geojson.New(geojson.Options{})
	ctx := context.Background()

	v, err := LoadLayer(ctx, srv.Client(), config.Layer{Name: "towns", Path: path, Format: config.FormatJSON}, conv)
	require.NoError(t, err)
	assert.Equal(t, geo.FeatureCollection{
		{Geometry: geo.Point{X: 1, Y: 2}},
		{Geometry: geo.Point{X: -3, Y: 4}},
	}, v)

	v, err = LoadLayer(ctx, srv.Client(), config.Layer{Name: "roads", URL: srv.URL + "/roads.yaml", Format: config.FormatYAML}, conv)
	require.NoError(t, err)
	assert.Equal(t, geo.FeatureCollection{
		{Geometry: geo.LineString{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 0}}},
	}, v)

	// inline wins over the other sources
	v, err = LoadLayer(ctx, srv.Client(), config.Layer{
		Name:   "inline",
		Inline: inlineNode(t, roadsYAML),
		URL:    srv.URL + "/missing",
	}, conv)
	require.NoError(t, err)
	assert.Len(t, v, 1)

	_, err = LoadLayer(ctx, srv.Client(), config.Layer{Name: "gone", URL: srv.URL + "/missing"}, conv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	_, err = LoadLayer(ctx, srv.Client(), config.Layer{Name: "none"}, conv)
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	_, err := Parse([]byte(`{"type":`), config.FormatJSON)
	assert.ErrorIs(t, err, jsonvalue.ErrInvalidJSON)

	_, err = Parse([]byte(`{}`), "xml")
	assert.Error(t, err)

	v, err := Parse([]byte(roadsYAML), config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", v.Member("type").Str())
}

func TestSummarize(t *testing.T) {
	fc := geo.FeatureCollection{
		{Geometry: geo.Point{X: 1, Y: 2}},
		{Geometry: geo.LineString{{X: 0, Y: 0}, {X: 3, Y: 4}}},
		{Geometry: geo.GeometryCollection{geo.MultiPoint{{X: -1, Y: -1}}}},
	}

	s := Summarize("mixed", fc)
	assert.Equal(t, "mixed", s.Name)
	assert.Equal(t, "FeatureCollection", s.Kind)
	assert.Equal(t, 3, s.Features)
	assert.Equal(t, 4, s.Points)
	assert.InDelta(t, 5.0, s.Length, 1e-9)
	assert.Equal(t, map[string]int{
		"Point":              1,
		"LineString":         1,
		"GeometryCollection": 1,
		"MultiPoint":         1,
	}, s.Geometries)
	assert.Equal(t, []float64{-1, -1, 3, 4}, s.BBox)

	empty := Summarize("empty", geo.FeatureCollection{})
	assert.Zero(t, empty.Features)
	assert.Nil(t, empty.BBox)

	single := Summarize("single", geo.Point{X: 5, Y: 6})
	assert.Equal(t, "Geometry", single.Kind)
	assert.Zero(t, single.Features)
	assert.Equal(t, 1, single.Points)
}

func TestSummarizeCollectionWithEmptyMember(t *testing.T) {
	s := Summarize("sparse", geo.FeatureCollection{
		{Geometry: geo.GeometryCollection{geo.MultiPoint{}, geo.Point{X: 5, Y: 6}}},
	})
	assert.Equal(t, 1, s.Points)
	assert.Equal(t, []float64{5, 6, 5, 6}, s.BBox)
}

func TestNewErrorInfo(t *testing.T) {
	_, err := geojson.Convert(jsonvalue.FromAny(map[string]any{"type": "Topology"}))
	info := NewErrorInfo(err)
	assert.Equal(t, "not_implemented", info.Kind)
	assert.Equal(t, "$", info.Path)
	assert.Equal(t, "Topology not yet implemented", info.Message)

	info = NewErrorInfo(os.ErrNotExist)
	assert.Equal(t, "source", info.Kind)
}

func TestProcessLayers(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "towns.geojson")
	bad := filepath.Join(dir, "polygons.geojson")
	require.NoError(t, os.WriteFile(good, []byte(towns), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":[]}}
	]}`), 0o644))

	layers := []config.Layer{
		{Name: "towns", Path: good},
		{Name: "polygons", Path: bad},
		{Name: "missing", Path: filepath.Join(dir, "missing.geojson")},
		{Name: "inline", Inline: inlineNode(t, roadsYAML)},
	}

	summaries := ProcessLayers(context.Background(), http.DefaultClient, layers, geojson.New(geojson.Options{}), 3)
	require.Len(t, summaries, len(layers))

	for i, l := range layers {
		assert.Equal(t, l.Name, summaries[i].Name)
	}

	assert.Nil(t, summaries[0].Error)
	assert.Equal(t, 2, summaries[0].Features)

	require.NotNil(t, summaries[1].Error)
	assert.Equal(t, "not_implemented", summaries[1].Error.Kind)
	assert.Equal(t, "$.features[0].geometry", summaries[1].Error.Path)

	require.NotNil(t, summaries[2].Error)
	assert.Equal(t, "source", summaries[2].Error.Kind)

	assert.Nil(t, summaries[3].Error)
	assert.Equal(t, 3, summaries[3].Points)

	assert.Empty(t, ProcessLayers(context.Background(), http.DefaultClient, nil, geojson.New(geojson.Options{}), 4))
}

func TestProcessLayersCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summaries := ProcessLayers(ctx, http.DefaultClient, []config.Layer{{Name: "towns", Path: "unused"}}, geojson.New(geojson.Options{}), 1)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].Error)
	assert.Contains(t, summaries[0].Error.Message, "context canceled")
}
