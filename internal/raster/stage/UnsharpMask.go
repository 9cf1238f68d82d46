package stage

import (
	"image"

	"github.com/anthonynsimon/bild/math/f64"
	"github.com/rm-hull/image-effects/internal/raster"
)

type UnsharpMaskStage struct {
	Sigma     float64
	Amount    float64
	Threshold int
}

// Process sharpens the image by amplifying its difference from a Gaussian-blurred copy
// Channels whose difference from the blurred copy is at most Threshold are left as they are
// The alpha channel of the source is preserved
func (s *UnsharpMaskStage) Process(p *raster.Raster) error {
	src := toNRGBA(p.Img)
	blurred := gaussian(toRGB(p.Img), s.Sigma)

	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	threshold := float64(s.Threshold)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := y*src.Stride + x*4
			bpos := y*blurred.Stride + x*4

			for c := 0; c < 3; c++ {
				orig := float64(src.Pix[pos+c])
				diff := orig - float64(blurred.Pix[bpos+c])
				if diff > threshold || -diff > threshold {
					dst.Pix[pos+c] = uint8(f64.Clamp(orig+s.Amount*diff, 0, 255))
				} else {
					dst.Pix[pos+c] = src.Pix[pos+c]
				}
			}
			dst.Pix[pos+3] = src.Pix[pos+3]
		}
	}

	p.Img = dst
	return nil
}
