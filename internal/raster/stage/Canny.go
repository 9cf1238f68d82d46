package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/rm-hull/image-effects/internal/raster"
)

type CannyStage struct {
	Low   float64
	High  float64
	Sigma float64
}

// Process replaces the image with a binary Canny edge map
// Edge pixels are 255 and everything else is 0
// Gradient magnitudes of at least High seed an edge, which then grows through
// neighbouring pixels whose magnitude is at least Low
func (s *CannyStage) Process(p *raster.Raster) error {
	if s.Low > s.High {
		return fmt.Errorf("canny low threshold %.1f exceeds high threshold %.1f", s.Low, s.High)
	}
	p.Img = canny(asGray(p.Img), s.Sigma, s.Low, s.High)
	return nil
}

func canny(src *image.Gray, sigma, low, high float64) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(bounds)
	if w < 3 || h < 3 {
		return out
	}

	smoothed := gaussian(src, sigma)
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = float64(smoothed.Pix[y*smoothed.Stride+x*4])
		}
	}

	gx, gy, mag := sobel(lum, w, h)
	thinned := suppressNonMaxima(mag, gx, gy, w, h)
	hysteresis(thinned, w, h, low, high, out)
	return out
}

func sobel(lum []float64, w, h int) (gx, gy, mag []float64) {
	at := func(x, y int) float64 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return lum[y*w+x]
	}

	gx = make([]float64, w*h)
	gy = make([]float64, w*h)
	mag = make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			dy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			i := y*w + x
			gx[i] = dx
			gy[i] = dy
			mag[i] = math.Hypot(dx, dy)
		}
	}
	return gx, gy, mag
}

// suppressNonMaxima keeps a magnitude only where it is not smaller than either
// neighbour along the gradient direction, quantised to 0, 45, 90 or 135 degrees.
// The one pixel border is always zero.
func suppressNonMaxima(mag, gx, gy []float64, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			angle := math.Atan2(gy[i], gx[i]) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var cmp1, cmp2 float64
			switch {
			case angle >= 157.5 || angle < 22.5:
				cmp1, cmp2 = mag[i-1], mag[i+1]
			case angle < 67.5:
				cmp1, cmp2 = mag[i+w+1], mag[i-w-1]
			case angle < 112.5:
				cmp1, cmp2 = mag[i-w], mag[i+w]
			default:
				cmp1, cmp2 = mag[i+w-1], mag[i-w+1]
			}

			if mag[i] >= cmp1 && mag[i] >= cmp2 {
				out[i] = mag[i]
			}
		}
	}
	return out
}

func hysteresis(mag []float64, w, h int, low, high float64, out *image.Gray) {
	marked := func(x, y int) bool {
		return out.Pix[y*out.Stride+x] != 0
	}
	mark := func(x, y int) {
		out.Pix[y*out.Stride+x] = 0xff
	}

	var stack []image.Point
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if mag[y*w+x] < high || marked(x, y) {
				continue
			}
			mark(x, y)
			stack = append(stack, image.Pt(x, y))

			for len(stack) > 0 {
				pt := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for ny := pt.Y - 1; ny <= pt.Y+1; ny++ {
					for nx := pt.X - 1; nx <= pt.X+1; nx++ {
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if mag[ny*w+nx] >= low && !marked(nx, ny) {
							mark(nx, ny)
							stack = append(stack, image.Pt(nx, ny))
						}
					}
				}
			}
		}
	}
}
