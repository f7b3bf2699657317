package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"unicode/utf8"

	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/ocr"
)

// errNoRenderer is returned when OCR is enabled without a renderer
var errNoRenderer = errors.New("OCR needs a page renderer")

// recognizePage recovers a text layer for an image-only page. Each
// recognized line becomes a text line whose glyphs evenly divide the line
// box, which is precise enough for line-level highlighting.
func (r *Reader) recognizePage(i int, p *glyphPage) error {
	if r.config.Renderer == nil {
		return errNoRenderer
	}

	img, err := r.config.Renderer.Render(context.Background(), i)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}

	client, err := ocr.New()
	if err != nil {
		return err
	}
	defer client.Close()
	if r.config.OCRLanguage != "" {
		if err := client.SetLanguage(r.config.OCRLanguage); err != nil {
			return fmt.Errorf("failed to set OCR language: %w", err)
		}
	}

	lines, err := client.RecognizeLines(buf.Bytes())
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	mapping := model.NewMapping(p.width, p.height, bounds.Dx(), bounds.Dy())
	for _, l := range lines {
		box := mapping.RectToPhysical(model.Rect{
			X1: float64(l.Box.Min.X - bounds.Min.X),
			Y1: float64(l.Box.Min.Y - bounds.Min.Y),
			X2: float64(l.Box.Max.X - bounds.Min.X),
			Y2: float64(l.Box.Max.Y - bounds.Min.Y),
		})
		if line, ok := lineFromBox(l.Text, box); ok {
			p.lines = append(p.lines, line)
		}
	}
	r.logger.Debug().Int("page", i).Int("lines", len(p.lines)).Msg("page recognized")
	return nil
}

// lineFromBox spreads text evenly across a line box
func lineFromBox(text string, box model.Rect) (textLine, bool) {
	n := utf8.RuneCountInString(text)
	if n == 0 || box.IsEmpty() {
		return textLine{}, false
	}
	size := box.Height() / (ascentRatio + descentRatio)
	advance := box.Width() / float64(n)
	baseline := box.Bottom() + size*descentRatio

	glyphs := make([]Glyph, 0, n)
	x := box.Left()
	for _, r := range text {
		glyphs = append(glyphs, Glyph{Text: string(r), X: x, Y: baseline, Width: advance, FontSize: size})
		x += advance
	}
	return newTextLine(glyphs), true
}
