package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/processor"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	var inline yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`{"type":"FeatureCollection","features":[
  {"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]}}
]}`), &inline))

	cfg := &config.Config{
		Layers: []config.Layer{
			{Name: "towns", Inline: &inline},
			{Name: "broken", Path: "does/not/exist.geojson"},
		},
	}

	return NewServerContext(context.Background(), cfg, http.DefaultClient, 2).Routes()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleConvert(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, http.MethodPost, "/api/convert",
		`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[0,0],[2,2]]}}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var s processor.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "FeatureCollection", s.Kind)
	assert.Equal(t, 1, s.Features)
	assert.Equal(t, 2, s.Points)
	assert.Equal(t, []float64{0, 0, 2, 2}, s.BBox)
}

func TestHandleConvertErrors(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name   string
		method string
		body   string
		status int
		kind   string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "request"},
		{"invalid json", http.MethodPost, `{"type":`, http.StatusBadRequest, "request"},
		{"schema", http.MethodPost, `{"features":[]}`, http.StatusUnprocessableEntity, "schema"},
		{"not implemented", http.MethodPost, `{"type":"Point","coordinates":[0,0]}`, http.StatusUnprocessableEntity, "not_implemented"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(h, tc.method, "/api/convert", tc.body)
			require.Equal(t, tc.status, rec.Code)

			var info processor.ErrorInfo
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
			assert.Equal(t, tc.kind, info.Kind)
		})
	}
}

func TestHandleConvertBodyErrors(t *testing.T) {
	srv := NewServerContext(context.Background(), &config.Config{}, http.DefaultClient, 1)
	srv.MaxBody = 16
	h := srv.Routes()

	rec := do(h, http.MethodPost, "/api/convert", `{"type":"FeatureCollection","features":[]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/convert", iotest.ErrReader(errors.New("connection reset")))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var info processor.ErrorInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "request", info.Kind)
	assert.Contains(t, info.Message, "connection reset")
}

func TestHandleLayers(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, http.MethodGet, "/api/layers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []processor.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "broken", list[0].Name)
	assert.NotNil(t, list[0].Error)
	assert.Equal(t, "towns", list[1].Name)
	assert.Equal(t, 1, list[1].Points)

	rec = do(h, http.MethodGet, "/api/layers/towns", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/layers/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
