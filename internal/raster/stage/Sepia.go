package stage

import (
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/math/f64"
	"github.com/rm-hull/image-effects/internal/raster"
)

type SepiaStage struct{}

// Process converts the image to RGB and applies the classic sepia tone matrix
// Each output channel is clamped to 255 and truncated, not rounded
func (s *SepiaStage) Process(p *raster.Raster) error {
	p.Img = adjust.Apply(toRGB(p.Img), sepia)
	return nil
}

func sepia(c color.RGBA) color.RGBA {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return color.RGBA{
		R: uint8(f64.Clamp(0.393*r+0.769*g+0.189*b, 0, 255)),
		G: uint8(f64.Clamp(0.349*r+0.686*g+0.168*b, 0, 255)),
		B: uint8(f64.Clamp(0.272*r+0.534*g+0.131*b, 0, 255)),
		A: c.A,
	}
}
