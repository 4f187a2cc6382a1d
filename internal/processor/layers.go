package processor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/geojson"

	"github.com/rs/zerolog/log"
)

type job struct {
	Layer config.Layer
	Index int
}

type result struct {
	Summary Summary
	Index   int
}

// ProcessLayers converts all layers using up to concurrency workers.
// Summaries are returned in layer order; a failing layer is reported in its
// summary and does not stop the others.
func ProcessLayers(ctx context.Context, client *http.Client, layers []config.Layer, conv *geojson.Converter, concurrency int) []Summary {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(layers) {
		concurrency = len(layers)
	}

	jobs := make(chan job, len(layers))
	results := make(chan result, len(layers))

	for i, l := range layers {
		jobs <- job{Layer: l, Index: i}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- result{Summary: processLayer(ctx, client, j.Layer, conv), Index: j.Index}
			}
		}()
	}
	wg.Wait()
	close(results)

	summaries := make([]Summary, len(layers))
	for res := range results {
		summaries[res.Index] = res.Summary
	}

	return summaries
}

func processLayer(ctx context.Context, client *http.Client, layer config.Layer, conv *geojson.Converter) Summary {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Summary{Name: layer.Name, Error: NewErrorInfo(err)}
	}

	value, err := LoadLayer(ctx, client, layer, conv)
	if err != nil {
		log.Error().
			Err(err).
			Str("layer", layer.Name).
			Msg("Failed to convert layer")

		return Summary{Name: layer.Name, Error: NewErrorInfo(err)}
	}

	s := Summarize(layer.Name, value)

	log.Info().
		Str("layer", layer.Name).
		Str("kind", s.Kind).
		Int("features", s.Features).
		Int("points", s.Points).
		Dur("duration", time.Since(start)).
		Msg("Layer converted")

	return s
}
