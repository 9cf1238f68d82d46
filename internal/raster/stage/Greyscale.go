package stage

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/rm-hull/image-effects/internal/raster"
)

// Rec. 709 luma coefficients
// Reference: https://en.wikipedia.org/wiki/Rec._709#Luma_coefficients
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

type GreyscaleStage struct{}

// Process converts the image to a single-channel luma image
// Any alpha channel is dropped, so the result is always opaque
func (s *GreyscaleStage) Process(p *raster.Raster) error {
	p.Img = luma(p.Img)
	return nil
}

func luma(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gs := image.NewGray(bounds)
	if bounds.Empty() {
		return gs
	}

	weighted := effect.GrayscaleWithWeights(toRGB(img), lumaR, lumaG, lumaB)
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gs.Pix[y*gs.Stride+x] = weighted.Pix[y*weighted.Stride+x*4]
		}
	}
	return gs
}

// asGray returns img unchanged when it already holds luma samples
func asGray(img image.Image) *image.Gray {
	if gs, ok := img.(*image.Gray); ok {
		return gs
	}
	return luma(img)
}
