package raster

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the file extensions offered when picking input images.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Load decodes the image at path, sniffing the format from its content
// rather than trusting the extension.
func Load(path string) (*Raster, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, err
	}
	return New(img), nil
}
