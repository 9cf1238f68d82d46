package stage

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/rm-hull/image-effects/internal/raster"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a separable Gaussian blur with standard deviation Sigma to each channel
// Higher Sigma values result in a more pronounced blur effect
func (s *GaussianBlurStage) Process(p *raster.Raster) error {
	p.Img = gaussian(p.Img, s.Sigma)
	return nil
}

// gaussianKernel builds a 1-d kernel truncated at three standard deviations.
// Unlike blur.Gaussian from bild, sigma here is the true standard deviation.
func gaussianKernel(sigma float64) *convolution.Kernel {
	radius := int(math.Ceil(3 * sigma))
	length := 2*radius + 1
	k := convolution.NewKernel(length, 1)
	for i := 0; i < length; i++ {
		x := float64(i - radius)
		k.Matrix[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
	}
	return k
}

func gaussian(img image.Image, sigma float64) *image.RGBA {
	if sigma <= 0 {
		return clone.AsRGBA(img)
	}

	normK := gaussianKernel(sigma).Normalized()

	// Alpha is carried over untouched: every caller hands in opaque pixels
	options := convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true}
	result := convolution.Convolve(img, normK, &options)
	result = convolution.Convolve(result, normK.Transposed(), &options)

	return result
}
