package render

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/glyphnav/model"
)

// quadrants returns a 200x400 bitmap with a red top-left quadrant
func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 200, 400))
	red := color.RGBA{R: 255, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 400; y++ {
		for x := 0; x < 200; x++ {
			if x < 100 && y < 200 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, white)
			}
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	img := quadrants()
	m := MappingFor(img, 100, 200)

	// top-left quadrant in physical space: Y grows upwards
	region := model.NewRect(0, 100, 50, 200)

	out, err := Crop(img, region, m, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())
	r, g, _, _ := out.At(50, 100).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)

	out, err = Crop(img, region, m, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())
}

func TestCropClipsToBitmap(t *testing.T) {
	img := quadrants()
	m := MappingFor(img, 100, 200)

	out, err := Crop(img, model.NewRect(50, 0, 150, 100), m, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())

	_, err = Crop(img, model.NewRect(500, 500, 600, 600), m, 0)
	assert.ErrorIs(t, err, ErrEmptyRegion)
}

func TestPopplerPageRange(t *testing.T) {
	p := NewPoppler("missing.pdf", 3)
	_, err := p.Render(context.Background(), 3)
	assert.ErrorIs(t, err, ErrPageRange)
	_, err = p.Render(context.Background(), -1)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestPopplerMissingBinary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Binary = "/nonexistent/pdftoppm"
	p := NewPopplerWithConfig("missing.pdf", 0, cfg)

	_, err := p.Render(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm failed")
}

func TestPopplerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPoppler("missing.pdf", 0).Render(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaults(t *testing.T) {
	p := NewPopplerWithConfig("a.pdf", 0, Config{})
	assert.Equal(t, 150, p.Resolution())
	assert.Equal(t, "pdftoppm", p.config.Binary)
}
