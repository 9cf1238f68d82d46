package cmd

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rm-hull/image-effects/effects"
	"github.com/rm-hull/image-effects/internal"
	"github.com/rm-hull/image-effects/internal/raster"
	"github.com/rs/zerolog"
)

func Process(inputPath, effectType, outputPath string, cfg *internal.Config, logger zerolog.Logger) error {
	ext := strings.ToLower(filepath.Ext(inputPath))
	if !slices.Contains(raster.SupportedExtensions, ext) {
		logger.Warn().
			Str("path", inputPath).
			Strs("supported", raster.SupportedExtensions).
			Msg("Input extension not recognised, relying on content sniffing")
	}

	processor := effects.NewProcessor(
		effects.WithLogger(logger),
		effects.WithJPEGQuality(cfg.JPEGQuality),
	)

	progress := effects.ProgressFunc(func(percent int) error {
		logger.Info().Int("percent", percent).Msg("Processing")
		return nil
	})

	logger.Info().
		Str("input", inputPath).
		Str("effect", effectType).
		Str("output", outputPath).
		Msg("Processing image")

	result, err := processor.ProcessImage(inputPath, effectType, outputPath, progress)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", inputPath, err)
	}

	logger.Info().Str("output", result).Msg("Processing complete")
	return nil
}
