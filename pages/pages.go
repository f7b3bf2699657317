package pages

import (
	"sort"
	"strings"

	"github.com/tsawler/glyphnav/model"
)

// DefaultLineHeight is used for pages without any text line
const DefaultLineHeight = 10.0

// PageMeta is the derived state of one page
type PageMeta struct {
	// Index is the 0-based page index
	Index int

	// Label is the printed page label (e.g. "iv")
	Label string

	Text          string
	Lines         []model.Rect
	LineHeight    float64
	Width, Height float64

	Links      []model.Link
	Figures    []*model.Figure
	Referenced []*model.ReferencedFigure

	// Finds holds indices into the document's current find results that
	// start on this page
	Finds []int

	// Selected is the active find-result cursor (index into Finds), or -1
	Selected int

	// Hovered is the index into Referenced under the pointer, or -1
	Hovered int
}

// newPageMeta derives the metadata of one page from the source
func newPageMeta(src model.Source, i int) *PageMeta {
	w, h := src.PageSize(i)
	lines := src.LineRects(i)
	normalized := make([]model.Rect, len(lines))
	for k, r := range lines {
		normalized[k] = r.Normalize()
	}

	meta := &PageMeta{
		Index:      i,
		Label:      model.PageLabel(src, i),
		Text:       src.PageText(i),
		Lines:      normalized,
		LineHeight: meanHeight(normalized),
		Width:      w,
		Height:     h,
		Selected:   -1,
		Hovered:    -1,
	}
	if ls, ok := src.(model.LinkSource); ok {
		meta.Links = ls.Links(i)
	}
	return meta
}

// meanHeight returns the average rectangle height or DefaultLineHeight
func meanHeight(rects []model.Rect) float64 {
	if len(rects) == 0 {
		return DefaultLineHeight
	}
	total := 0.0
	for _, r := range rects {
		total += r.Height()
	}
	mean := total / float64(len(rects))
	if mean <= 0 {
		return DefaultLineHeight
	}
	return mean
}

// NearestLine returns the index of the line whose vertical center is
// closest to y, or -1 when the page has no lines
func (p *PageMeta) NearestLine(y float64) int {
	best := -1
	bestDist := 0.0
	for i, l := range p.Lines {
		d := absFloat64(l.Center().Y - y)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// LinesIn returns the lines that intersect r
func (p *PageMeta) LinesIn(r model.Rect) []model.Rect {
	var out []model.Rect
	for _, l := range p.Lines {
		if l.Intersects(r) {
			out = append(out, l)
		}
	}
	return out
}

// LinesBelow counts lines whose center lies strictly below y
func (p *PageMeta) LinesBelow(y float64) int {
	n := 0
	for _, l := range p.Lines {
		if l.Center().Y < y {
			n++
		}
	}
	return n
}

// LinesAbove counts lines whose center lies strictly above y
func (p *PageMeta) LinesAbove(y float64) int {
	n := 0
	for _, l := range p.Lines {
		if l.Center().Y > y {
			n++
		}
	}
	return n
}

// FigureAt returns the figure whose region contains pt, or nil
func (p *PageMeta) FigureAt(pt model.Point) *model.Figure {
	for _, f := range p.Figures {
		if f.Region.Contains(pt) {
			return f
		}
	}
	return nil
}

// Cache holds the metadata of every page of a document
type Cache struct {
	pages []*PageMeta
}

// New builds metadata for every page of src
func New(src model.Source) *Cache {
	n := src.PageCount()
	c := &Cache{pages: make([]*PageMeta, n)}
	for i := 0; i < n; i++ {
		c.pages[i] = newPageMeta(src, i)
	}
	return c
}

// Len returns the number of pages
func (c *Cache) Len() int {
	return len(c.pages)
}

// Page returns the metadata of a page, or nil when out of range
func (c *Cache) Page(i int) *PageMeta {
	if i < 0 || i >= len(c.pages) {
		return nil
	}
	return c.pages[i]
}

// Pages returns all page metadata in page order
func (c *Cache) Pages() []*PageMeta {
	return c.pages
}

// LabelIndex maps printed page labels to page indices. Lookups try the
// exact label first, then a case-insensitive match.
type LabelIndex struct {
	exact map[string]int
	fold  map[string]int
}

// Labels builds the label index. The first page carrying a label wins.
func (c *Cache) Labels() LabelIndex {
	idx := LabelIndex{exact: make(map[string]int), fold: make(map[string]int)}
	for _, p := range c.pages {
		if _, ok := idx.exact[p.Label]; !ok {
			idx.exact[p.Label] = p.Index
		}
		key := foldLabel(p.Label)
		if _, ok := idx.fold[key]; !ok {
			idx.fold[key] = p.Index
		}
	}
	return idx
}

// Resolve returns the page index for a printed label
func (l LabelIndex) Resolve(label string) (int, bool) {
	if i, ok := l.exact[label]; ok {
		return i, true
	}
	i, ok := l.fold[foldLabel(label)]
	return i, ok
}

// ClearFinds drops cached find results from every page
func (c *Cache) ClearFinds() {
	for _, p := range c.pages {
		p.Finds = nil
		p.Selected = -1
	}
}

// SetFinds distributes result indices to the pages they start on
func (c *Cache) SetFinds(results []model.FindResult) {
	c.ClearFinds()
	for i, r := range results {
		if p := c.Page(r.Page); p != nil {
			p.Finds = append(p.Finds, i)
		}
	}
	for _, p := range c.pages {
		sort.Ints(p.Finds)
	}
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func foldLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
