package raster

import (
	"image"
)

type Raster struct {
	Img    image.Image
	Bounds image.Rectangle
}

type Stage interface {
	Process(r *Raster) error
}

func New(img image.Image) *Raster {
	return &Raster{
		Img:    img,
		Bounds: img.Bounds(),
	}
}

// Pipeline runs each stage in order, stopping at the first failure.
// Stages replace r.Img rather than mutate the image they were given.
func (r *Raster) Pipeline(stages ...Stage) error {
	for _, stage := range stages {
		if err := stage.Process(r); err != nil {
			return err
		}
	}
	return nil
}
