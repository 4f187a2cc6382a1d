// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/woozymasta/geojson/internal/geojson"
	"github.com/woozymasta/geojson/internal/jsonvalue"
	"github.com/woozymasta/geojson/internal/processor"
)

const defaultMaxBody = 16 << 20

// HandleConvert converts the GeoJSON request body and answers with its summary.
// Conversion errors are reported as 422 with their kind and path.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, processor.ErrorInfo{Kind: "request", Message: "method not allowed"})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody()))
	if err != nil {
		status := http.StatusBadRequest
		if errors.As(err, new(*http.MaxBytesError)) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, processor.ErrorInfo{Kind: "request", Message: err.Error()})
		return
	}

	value, err := jsonvalue.ParseJSON(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, processor.ErrorInfo{Kind: "request", Message: err.Error()})
		return
	}

	result, err := s.Converter.Convert(value)
	if err != nil {
		var ce *geojson.ConversionError
		if errors.As(err, &ce) {
			writeJSON(w, http.StatusUnprocessableEntity, processor.NewErrorInfo(err))
			return
		}
		writeJSON(w, http.StatusInternalServerError, processor.ErrorInfo{Kind: "internal", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, processor.Summarize("", result))
}

// HandleLayersList serves the summaries of all configured layers.
func (s *ServerContext) HandleLayersList(w http.ResponseWriter, r *http.Request) {
	list := make([]processor.Summary, 0, len(s.Names))
	for _, name := range s.Names {
		list = append(list, s.Layers[name])
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleLayer serves a single layer summary at /api/layers/{name}.
func (s *ServerContext) HandleLayer(w http.ResponseWriter, r *http.Request) {
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/layers/"), "/")

	summary, ok := s.Layers[name]
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *ServerContext) maxBody() int64 {
	if s.MaxBody <= 0 {
		return defaultMaxBody
	}
	return s.MaxBody
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}
