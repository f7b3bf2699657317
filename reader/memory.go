package reader

import (
	"strings"

	"github.com/tsawler/glyphnav/model"
)

// Default geometry for synthetic pages (US Letter, 10pt text on 12pt leading)
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
	DefaultFontSize   = 10.0
	DefaultLeading    = 12.0
	DefaultMargin     = 72.0

	// advanceRatio is the synthetic glyph advance as a fraction of font size
	advanceRatio = 0.5
)

// MemoryLine is one line of text placed at an explicit baseline position
type MemoryLine struct {
	Text     string
	X, Y     float64
	FontSize float64
}

// MemoryPage describes a synthetic page
type MemoryPage struct {
	Width, Height float64
	Lines         []MemoryLine
	Images        []model.Rect
	Links         []model.Link
}

// TextPage lays out lines top to bottom from the top-left margin of a
// default-sized page. Use it to build fixtures without computing geometry.
func TextPage(lines ...string) MemoryPage {
	page := MemoryPage{Width: DefaultPageWidth, Height: DefaultPageHeight}
	for i, text := range lines {
		page.Lines = append(page.Lines, MemoryLine{
			Text:     text,
			X:        DefaultMargin,
			Y:        DefaultPageHeight - DefaultMargin - float64(i+1)*DefaultLeading,
			FontSize: DefaultFontSize,
		})
	}
	return page
}

// LineY returns the baseline used by TextPage for the i-th line
func LineY(i int) float64 {
	return DefaultPageHeight - DefaultMargin - float64(i+1)*DefaultLeading
}

// GlyphWidth returns the synthetic advance of one rune at the given size
func GlyphWidth(fontSize float64) float64 {
	return fontSize * advanceRatio
}

// Memory is an in-memory Source built from MemoryPage descriptions. Every
// rune gets a fixed advance, which makes glyph geometry predictable.
type Memory struct {
	pages   []glyphPage
	labels  []string
	outline []model.OutlineEntry
}

// Ensure Memory implements the collaborator interfaces
var (
	_ model.Source      = (*Memory)(nil)
	_ model.LinkSource  = (*Memory)(nil)
	_ model.PageLabeler = (*Memory)(nil)
)

// NewMemory builds an in-memory source
func NewMemory(pages ...MemoryPage) *Memory {
	m := &Memory{}
	for _, p := range pages {
		m.pages = append(m.pages, buildMemoryPage(p))
	}
	return m
}

func buildMemoryPage(p MemoryPage) glyphPage {
	gp := glyphPage{width: p.Width, height: p.Height, images: p.Images, links: p.Links}
	if gp.width == 0 {
		gp.width = DefaultPageWidth
	}
	if gp.height == 0 {
		gp.height = DefaultPageHeight
	}
	for _, ml := range p.Lines {
		size := ml.FontSize
		if size == 0 {
			size = DefaultFontSize
		}
		text := strings.ReplaceAll(ml.Text, "\n", " ")
		var glyphs []Glyph
		x := ml.X
		for _, r := range text {
			glyphs = append(glyphs, Glyph{
				Text:     string(r),
				X:        x,
				Y:        ml.Y,
				Width:    GlyphWidth(size),
				FontSize: size,
			})
			x += GlyphWidth(size)
		}
		if len(glyphs) == 0 {
			continue
		}
		gp.lines = append(gp.lines, newTextLine(glyphs))
	}
	return gp
}

// SetOutline attaches an embedded outline
func (m *Memory) SetOutline(entries []model.OutlineEntry) {
	m.outline = entries
}

// SetPageLabels attaches printed page labels, one per page
func (m *Memory) SetPageLabels(labels []string) {
	m.labels = labels
}

// PageCount returns the number of pages
func (m *Memory) PageCount() int {
	return len(m.pages)
}

func (m *Memory) page(i int) *glyphPage {
	if i < 0 || i >= len(m.pages) {
		return &glyphPage{}
	}
	return &m.pages[i]
}

// PageSize returns the page dimensions
func (m *Memory) PageSize(page int) (float64, float64) {
	p := m.page(page)
	return p.width, p.height
}

// PageText returns the page text, one line per visual line
func (m *Memory) PageText(page int) string {
	return m.page(page).text()
}

// LineRects returns the line rectangles
func (m *Memory) LineRects(page int) []model.Rect {
	return m.page(page).lineRects()
}

// Search finds literal occurrences of needle
func (m *Memory) Search(page int, needle string, wholeWords bool) []model.Rect {
	return m.page(page).search(needle, wholeWords)
}

// ImageRegions returns the configured image rectangles
func (m *Memory) ImageRegions(page int) []model.Rect {
	return m.page(page).images
}

// Links returns the configured links
func (m *Memory) Links(page int) []model.Link {
	return m.page(page).links
}

// Outline returns the configured outline
func (m *Memory) Outline() []model.OutlineEntry {
	return m.outline
}

// PageLabel returns the configured label for a page
func (m *Memory) PageLabel(page int) (string, bool) {
	if m.labels == nil || page < 0 || page >= len(m.labels) {
		return "", false
	}
	return m.labels[page], true
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
