package render

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/tsawler/glyphnav/model"
)

// ErrEmptyRegion is returned when a region does not overlap the bitmap
var ErrEmptyRegion = errors.New("region outside rendered page")

// MappingFor returns the mapping from a page of the given physical size
// onto a bitmap rendered from it
func MappingFor(img image.Image, pageWidth, pageHeight float64) model.Mapping {
	b := img.Bounds()
	m := model.NewMapping(pageWidth, pageHeight, b.Dx(), b.Dy())
	m.OffsetX, m.OffsetY = float64(b.Min.X), float64(b.Min.Y)
	return m
}

// Crop cuts a physical region out of a page bitmap and scales it to width
// pixels, keeping the aspect ratio. A width of 0 or less keeps the
// cropped size.
func Crop(img image.Image, region model.Rect, m model.Mapping, width int) (image.Image, error) {
	r := m.RectToImage(region)
	px := image.Rect(
		int(math.Floor(r.X1)), int(math.Floor(r.Y1)),
		int(math.Ceil(r.X2)), int(math.Ceil(r.Y2)),
	).Intersect(img.Bounds())
	if px.Empty() {
		return nil, ErrEmptyRegion
	}

	w, h := px.Dx(), px.Dy()
	if width > 0 && width != w {
		h = int(math.Max(1, math.Round(float64(h)*float64(width)/float64(w))))
		w = width
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == px.Dx() && h == px.Dy() {
		draw.Draw(dst, dst.Bounds(), img, px.Min, draw.Src)
		return dst, nil
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, px, draw.Src, nil)
	return dst, nil
}
