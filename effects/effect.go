package effects

import (
	"github.com/rm-hull/image-effects/internal/raster"
	"github.com/rm-hull/image-effects/internal/raster/stage"
)

type Effect int

const (
	EdgeDetect Effect = iota + 1
	Blur
	Sharpen
	Grayscale
	Sepia
	Invert
)

// All lists every effect in the order they are offered to users.
var All = []Effect{EdgeDetect, Blur, Sharpen, Grayscale, Sepia, Invert}

// ParseEffect resolves an effect from its exact, case-sensitive name.
func ParseEffect(name string) (Effect, error) {
	switch name {
	case "edge_detect":
		return EdgeDetect, nil
	case "blur":
		return Blur, nil
	case "sharpen":
		return Sharpen, nil
	case "grayscale":
		return Grayscale, nil
	case "sepia":
		return Sepia, nil
	case "invert":
		return Invert, nil
	}
	return 0, &UnknownEffectError{Name: name}
}

func (e Effect) String() string {
	switch e {
	case EdgeDetect:
		return "edge_detect"
	case Blur:
		return "blur"
	case Sharpen:
		return "sharpen"
	case Grayscale:
		return "grayscale"
	case Sepia:
		return "sepia"
	case Invert:
		return "invert"
	}
	return "unknown"
}

// Label is the human readable name of the effect.
func (e Effect) Label() string {
	switch e {
	case EdgeDetect:
		return "Edge Detect"
	case Blur:
		return "Blur"
	case Sharpen:
		return "Sharpen"
	case Grayscale:
		return "Grayscale"
	case Sepia:
		return "Sepia"
	case Invert:
		return "Invert"
	}
	return "Unknown"
}

// stages returns the fixed pipeline behind each effect. None of the
// parameters are exposed to callers.
func (e Effect) stages() ([]raster.Stage, error) {
	switch e {
	case EdgeDetect:
		return []raster.Stage{
			&stage.GreyscaleStage{},
			&stage.CannyStage{Low: 25.0, High: 75.0, Sigma: 1.4},
			&stage.InvertStage{},
		}, nil
	case Blur:
		return []raster.Stage{
			&stage.RGBStage{},
			&stage.GaussianBlurStage{Sigma: 2.0},
		}, nil
	case Sharpen:
		return []raster.Stage{
			&stage.UnsharpMaskStage{Sigma: 1.0, Amount: 1.0, Threshold: 5},
		}, nil
	case Grayscale:
		return []raster.Stage{
			&stage.GreyscaleStage{},
		}, nil
	case Sepia:
		return []raster.Stage{
			&stage.SepiaStage{},
		}, nil
	case Invert:
		return []raster.Stage{
			&stage.InvertStage{},
		}, nil
	}
	return nil, &UnknownEffectError{Name: e.String()}
}
