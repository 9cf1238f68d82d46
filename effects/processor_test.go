package effects

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rm-hull/image-effects/internal/raster"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []int
	err   error
}

func (r *recorder) Report(percent int) error {
	r.calls = append(r.calls, percent)
	return r.err
}

func fixture(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}

func writeFixture(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img
}

func rgb(img image.Image, x, y int) [3]uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected %s not to exist", path)
}

func TestProcessImage(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "input.png", fixture(24, 16))

	for _, effect := range All {
		t.Run(effect.String(), func(t *testing.T) {
			output := filepath.Join(dir, effect.String()+".png")
			progress := &recorder{}

			result, err := ProcessImage(input, effect.String(), output, progress)
			require.NoError(t, err)
			assert.Equal(t, output, result)
			assert.Equal(t, []int{100}, progress.calls)

			img := decode(t, output)
			assert.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())
		})
	}
}

func TestProcessImageOutputFormats(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "input.png", fixture(10, 7))

	for _, name := range []string{"out.jpg", "out.jpeg", "out.bmp", "out.gif", "out.tif", "out.tiff", "out.PNG"} {
		t.Run(name, func(t *testing.T) {
			output := filepath.Join(dir, name)
			_, err := ProcessImage(input, "sepia", output, nil)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 10, 7), decode(t, output).Bounds())
		})
	}
}

func TestInvertIsAnInvolution(t *testing.T) {
	dir := t.TempDir()
	src := fixture(13, 9)
	input := writeFixture(t, dir, "input.png", src)
	once := filepath.Join(dir, "once.png")
	twice := filepath.Join(dir, "twice.png")

	_, err := ProcessImage(input, "invert", once, nil)
	require.NoError(t, err)
	_, err = ProcessImage(once, "invert", twice, nil)
	require.NoError(t, err)

	first := decode(t, once)
	second := decode(t, twice)
	for y := 0; y < 9; y++ {
		for x := 0; x < 13; x++ {
			orig := rgb(src, x, y)
			assert.Equal(t, [3]uint8{255 - orig[0], 255 - orig[1], 255 - orig[2]}, rgb(first, x, y))
			assert.Equal(t, orig, rgb(second, x, y))
		}
	}
}

func TestSepiaValues(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		in       color.NRGBA
		expected [3]uint8
	}{
		{"red", color.NRGBA{255, 0, 0, 255}, [3]uint8{100, 88, 69}},
		{"white", color.NRGBA{255, 255, 255, 255}, [3]uint8{255, 255, 238}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := writeFixture(t, dir, tc.name+"-in.png", solid(tc.in))
			output := filepath.Join(dir, tc.name+"-out.png")
			_, err := ProcessImage(input, "sepia", output, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rgb(decode(t, output), 0, 0))
		})
	}
}

func TestGrayscaleHasEqualChannels(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "input.png", fixture(20, 11))
	output := filepath.Join(dir, "gray.png")

	_, err := ProcessImage(input, "grayscale", output, nil)
	require.NoError(t, err)

	img := decode(t, output)
	for y := 0; y < 11; y++ {
		for x := 0; x < 20; x++ {
			c := rgb(img, x, y)
			assert.Equal(t, c[0], c[1])
			assert.Equal(t, c[1], c[2])
		}
	}
}

func TestEdgeDetectRendersDarkEdgesOnLight(t *testing.T) {
	dir := t.TempDir()

	t.Run("uniform image is blank", func(t *testing.T) {
		flat := image.NewNRGBA(image.Rect(0, 0, 12, 12))
		for i := range flat.Pix {
			flat.Pix[i] = 0x80
			if i%4 == 3 {
				flat.Pix[i] = 0xff
			}
		}
		input := writeFixture(t, dir, "flat.png", flat)
		output := filepath.Join(dir, "flat-edges.png")

		_, err := ProcessImage(input, "edge_detect", output, nil)
		require.NoError(t, err)

		img := decode(t, output)
		for y := 0; y < 12; y++ {
			for x := 0; x < 12; x++ {
				assert.Equal(t, [3]uint8{255, 255, 255}, rgb(img, x, y))
			}
		}
	})

	t.Run("edges are black", func(t *testing.T) {
		square := image.NewNRGBA(image.Rect(0, 0, 32, 32))
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				c := color.NRGBA{A: 255}
				if x >= 8 && x < 24 && y >= 8 && y < 24 {
					c = color.NRGBA{R: 250, G: 240, B: 230, A: 255}
				}
				square.SetNRGBA(x, y, c)
			}
		}
		input := writeFixture(t, dir, "square.png", square)
		output := filepath.Join(dir, "edges.png")

		_, err := ProcessImage(input, "edge_detect", output, nil)
		require.NoError(t, err)

		img := decode(t, output)
		dark := 0
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				c := rgb(img, x, y)
				assert.Contains(t, [][3]uint8{{0, 0, 0}, {255, 255, 255}}, c)
				if c[0] == 0 {
					dark++
				}
			}
		}
		assert.Greater(t, dark, 0)
	})
}

func TestProcessImageErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "input.png", fixture(8, 8))

	t.Run("unknown effect", func(t *testing.T) {
		output := filepath.Join(dir, "posterize.png")
		progress := &recorder{}

		result, err := ProcessImage(input, "posterize", output, progress)
		assert.Empty(t, result)
		var unknown *UnknownEffectError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "posterize", unknown.Name)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, `unknown effect type "posterize"`, err.Error())
		assert.Empty(t, progress.calls)
		assertNotExist(t, output)
	})

	t.Run("missing input", func(t *testing.T) {
		output := filepath.Join(dir, "missing-out.png")

		_, err := ProcessImage(filepath.Join(dir, "missing.png"), "blur", output, nil)
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "failed to load image")
		assertNotExist(t, output)
	})

	t.Run("undecodable input", func(t *testing.T) {
		bogus := filepath.Join(dir, "bogus.png")
		require.NoError(t, os.WriteFile(bogus, []byte("not really a png"), 0644))
		output := filepath.Join(dir, "bogus-out.png")

		_, err := ProcessImage(bogus, "blur", output, nil)
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, bogus, loadErr.Path)
		assertNotExist(t, output)
	})

	t.Run("callback failure aborts before save", func(t *testing.T) {
		output := filepath.Join(dir, "callback-out.png")
		boom := errors.New("boom")
		progress := &recorder{err: boom}

		_, err := ProcessImage(input, "invert", output, progress)
		var callbackErr *CallbackError
		require.True(t, errors.As(err, &callbackErr))
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, []int{100}, progress.calls)
		assertNotExist(t, output)
	})

	t.Run("callback failure leaves an existing output untouched", func(t *testing.T) {
		output := filepath.Join(dir, "existing.png")
		require.NoError(t, os.WriteFile(output, []byte("previous"), 0644))

		_, err := ProcessImage(input, "sepia", output, ProgressFunc(func(int) error {
			return errors.New("cancelled by user")
		}))
		assert.Error(t, err)

		contents, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(contents))
	})

	t.Run("unsupported output extension", func(t *testing.T) {
		outDir := t.TempDir()
		output := filepath.Join(outDir, "out.xyz")

		_, err := ProcessImage(input, "sharpen", output, nil)
		var saveErr *SaveError
		require.True(t, errors.As(err, &saveErr))
		assert.Equal(t, output, saveErr.Path)
		assert.ErrorIs(t, err, raster.ErrUnsupportedFormat)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing output directory", func(t *testing.T) {
		output := filepath.Join(dir, "no", "such", "dir", "out.png")

		_, err := ProcessImage(input, "grayscale", output, nil)
		var saveErr *SaveError
		require.True(t, errors.As(err, &saveErr))
		assertNotExist(t, output)
	})
}

func TestProcessorLogging(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "input.png", fixture(4, 4))

	var buf bytes.Buffer
	processor := NewProcessor(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	_, err := processor.ProcessImage(input, "blur", filepath.Join(dir, "out.png"), nil)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "Image decoded")
	assert.Contains(t, logs, `"effect":"blur"`)
	assert.Contains(t, logs, "Image saved")
}

func TestProcessorJPEGQuality(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "input.png", fixture(64, 64))
	low := filepath.Join(dir, "low.jpg")
	high := filepath.Join(dir, "high.jpg")

	_, err := NewProcessor(WithJPEGQuality(5)).ProcessImage(input, "blur", low, nil)
	require.NoError(t, err)
	_, err = NewProcessor(WithJPEGQuality(100)).ProcessImage(input, "blur", high, nil)
	require.NoError(t, err)

	lowInfo, err := os.Stat(low)
	require.NoError(t, err)
	highInfo, err := os.Stat(high)
	require.NoError(t, err)
	assert.Less(t, lowInfo.Size(), highInfo.Size())
}
