package stage

import (
	"image"

	"github.com/rm-hull/image-effects/internal/raster"
	"golang.org/x/image/draw"
)

type RGBStage struct{}

// Process converts the image to opaque 8-bit RGB
// Any alpha channel is discarded rather than composited against a background
func (s *RGBStage) Process(p *raster.Raster) error {
	p.Img = toRGB(p.Img)
	return nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}

// toRGB keeps the un-premultiplied colour of every pixel and forces alpha to 255.
// With alpha fixed at 255 the NRGBA and RGBA byte layouts coincide.
func toRGB(img image.Image) *image.RGBA {
	nrgba := toNRGBA(img)
	for i := 3; i < len(nrgba.Pix); i += 4 {
		nrgba.Pix[i] = 0xff
	}
	return &image.RGBA{
		Pix:    nrgba.Pix,
		Stride: nrgba.Stride,
		Rect:   nrgba.Rect,
	}
}
