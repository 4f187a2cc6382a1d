package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/geojson"
	"github.com/woozymasta/geojson/internal/logger"
	"github.com/woozymasta/geojson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES" description:"Limit processing to specific layer names"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency" default:"4"`
	Timeout     int      `short:"t" long:"timeout"     env:"HTTP_TIMEOUT" description:"HTTP timeout in seconds for remote layers" default:"15"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	client := &http.Client{Timeout: time.Duration(opts.Timeout) * time.Second}

	// Filter layers if limit is set
	layers := cfg.Layers
	if len(opts.Limit) > 0 {
		layers = make([]config.Layer, 0)
		available := make(map[string]config.Layer)
		for _, l := range cfg.Layers {
			available[l.Name] = l
		}

		seen := make(map[string]bool)

		for _, name := range opts.Limit {
			if seen[name] {
				continue
			}
			seen[name] = true

			if l, ok := available[name]; ok {
				layers = append(layers, l)
			} else {
				log.Error().
					Str("name", name).
					Msg("Layer specified in --limit not found in configuration")
			}
		}
	}

	log.Info().
		Int("layers_total", len(cfg.Layers)).
		Int("layers_queued", len(layers)).
		Bool("geometry_collections", cfg.GeometryCollections).
		Msg("Starting loader")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conv := geojson.New(geojson.Options{GeometryCollections: cfg.GeometryCollections})
	summaries := processor.ProcessLayers(ctx, client, layers, conv, opts.Concurrency)

	failed := 0
	for _, s := range summaries {
		if s.Error != nil {
			failed++
		}
	}

	if failed > 0 {
		log.Error().
			Int("failed", failed).
			Int("converted", len(summaries)-failed).
			Msg("Loader finished with errors")
		stop()
		os.Exit(1)
	}

	log.Info().Int("converted", len(summaries)).Msg("Loader finished successfully")
}
