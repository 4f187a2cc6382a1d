package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/woozymasta/geojson/internal/geojson"
	"github.com/woozymasta/geojson/internal/logger"
	"github.com/woozymasta/geojson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input               string `short:"i" long:"in"                   description:"Input GeoJSON file path. Reads from stdin if empty"`
	Output              string `short:"o" long:"out"                  description:"Summary output file path. Writes to stdout if empty"`
	InputFormat         string `short:"I" long:"input-format"         description:"Input document format" choice:"json" choice:"yaml" default:"json"`
	Format              string `short:"f" long:"format"               description:"Summary output format" choice:"json" choice:"yaml" default:"json"`
	GeometryCollections bool   `short:"g" long:"geometry-collections" env:"GEOMETRY_COLLECTIONS" description:"Convert GeometryCollection recursively"`
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

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
	} else {
		inputData, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to read input")
	}

	value, err := processor.Parse(inputData, opts.InputFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse input")
	}

	conv := geojson.New(geojson.Options{GeometryCollections: opts.GeometryCollections})
	result, err := conv.Convert(value)
	if err != nil {
		info := processor.NewErrorInfo(err)
		log.Fatal().
			Str("kind", info.Kind).
			Str("path", info.Path).
			Msg(info.Message)
	}

	summary := processor.Summarize(opts.Input, result)

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(summary)
	} else {
		outputData, err = json.MarshalIndent(summary, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal summary")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write output")
		}
		log.Info().
			Int("features", summary.Features).
			Str("out", opts.Output).
			Str("format", opts.Format).
			Msg("Successfully converted document")
		return
	}

	if _, err := os.Stdout.Write(append(outputData, '\n')); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
}
