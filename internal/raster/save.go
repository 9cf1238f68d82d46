package raster

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/tiff"
)

const DefaultJPEGQuality = 95

var ErrUnsupportedFormat = errors.New("unsupported output format")

type Options struct {
	JPEGQuality int
}

func (o *Options) jpegQuality() int {
	if o == nil || o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return DefaultJPEGQuality
	}
	return o.JPEGQuality
}

// EncoderFor selects an encoder from the extension of path, ignoring case.
func EncoderFor(path string, opts *Options) (imgio.Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(opts.jpegQuality()), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Save encodes the raster to a temporary file alongside path and renames it
// into place, so a failure never leaves a truncated file at path.
func (r *Raster) Save(path string, opts *Options) error {
	encoder, err := EncoderFor(path, opts)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".image-effects-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := encoder(tmpFile, r.Img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := tmpFile.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}
