package server

import (
	"context"
	"net/http"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/geojson"
	"github.com/woozymasta/geojson/internal/processor"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Converter *geojson.Converter
	Layers    map[string]processor.Summary
	Names     []string
	MaxBody   int64
}

// NewServerContext converts the configured layers once and keeps their
// summaries for the layers endpoints.
func NewServerContext(ctx context.Context, cfg *config.Config, client *http.Client, concurrency int) *ServerContext {
	log.Info().Int("config_layers_count", len(cfg.Layers)).Msg("Initializing server context")

	conv := geojson.New(geojson.Options{GeometryCollections: cfg.GeometryCollections})
	summaries := processor.ProcessLayers(ctx, client, cfg.Layers, conv, concurrency)

	layers := make(map[string]processor.Summary, len(summaries))
	names := make([]string, 0, len(summaries))
	failed := 0

	for _, s := range summaries {
		if s.Error != nil {
			failed++
			log.Warn().
				Str("layer", s.Name).
				Str("error", s.Error.Message).
				Msg("Layer is served with its conversion error")
		}
		layers[s.Name] = s
		names = append(names, s.Name)
	}
	sort.Strings(names)

	log.Info().
		Int("layers", len(names)).
		Int("failed", failed).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Converter: conv,
		Layers:    layers,
		Names:     names,
		MaxBody:   defaultMaxBody,
	}
}
