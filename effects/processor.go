// Package effects applies one of a fixed set of image filters to an image file.
//
// Each call is a single, synchronous load → transform → save operation:
//
//	out, err := effects.ProcessImage("in.png", "sepia", "out.jpg",
//		effects.ProgressFunc(func(percent int) error {
//			fmt.Println(percent)
//			return nil
//		}))
//
// The output format is chosen from the extension of the output path, and the
// output is written atomically: on failure nothing is left at that path.
package effects

import (
	"fmt"
	"time"

	"github.com/rm-hull/image-effects/internal/raster"
	"github.com/rs/zerolog"
)

type Processor struct {
	logger  zerolog.Logger
	options raster.Options
}

type Option func(*Processor)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithJPEGQuality sets the quality (1-100) used when the output is a JPEG.
// Values outside that range fall back to the default of 95.
func WithJPEGQuality(quality int) Option {
	return func(p *Processor) {
		p.options.JPEGQuality = quality
	}
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logger:  zerolog.Nop(),
		options: raster.Options{JPEGQuality: raster.DefaultJPEGQuality},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessImage runs a single effect with a default Processor.
func ProcessImage(inputPath, effectType, outputPath string, progress ProgressReporter) (string, error) {
	return NewProcessor().ProcessImage(inputPath, effectType, outputPath, progress)
}

// ProcessImage loads inputPath, applies the effect named by effectType, reports
// completion to progress and writes the result to outputPath, returning outputPath.
// A nil progress is allowed. Every returned error matches ErrInvalidArgument.
func (p *Processor) ProcessImage(inputPath, effectType, outputPath string, progress ProgressReporter) (string, error) {
	img, err := raster.Load(inputPath)
	if err != nil {
		return "", &LoadError{Path: inputPath, Err: err}
	}
	p.logger.Debug().
		Str("path", inputPath).
		Int("width", img.Bounds.Dx()).
		Int("height", img.Bounds.Dy()).
		Msg("Image decoded")

	effect, err := ParseEffect(effectType)
	if err != nil {
		return "", err
	}

	stages, err := effect.stages()
	if err != nil {
		return "", err
	}

	start := time.Now()
	if err := img.Pipeline(stages...); err != nil {
		return "", fmt.Errorf("%w: failed to apply %s: %w", ErrInvalidArgument, effect, err)
	}
	p.logger.Debug().
		Stringer("effect", effect).
		Int("stages", len(stages)).
		Dur("elapsed", time.Since(start)).
		Msg("Effect applied")

	if progress != nil {
		if err := progress.Report(100); err != nil {
			return "", &CallbackError{Err: err}
		}
	}

	if err := img.Save(outputPath, &p.options); err != nil {
		return "", &SaveError{Path: outputPath, Err: err}
	}
	p.logger.Debug().Str("path", outputPath).Msg("Image saved")

	return outputPath, nil
}
