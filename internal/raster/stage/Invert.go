package stage

import (
	"github.com/anthonynsimon/bild/effect"
	"github.com/rm-hull/image-effects/internal/raster"
)

type InvertStage struct{}

// Process converts the image to RGB and negates every channel (255 - value)
// Single-channel input is replicated across R, G and B
func (s *InvertStage) Process(p *raster.Raster) error {
	p.Img = effect.Invert(toRGB(p.Img))
	return nil
}
