package reader

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/glyphnav/model"
)

// Glyph is a single positioned character as placed by the content stream
type Glyph struct {
	Text     string
	X, Y     float64 // baseline origin
	Width    float64
	FontSize float64
}

// box returns the glyph's bounding rectangle in physical space
func (g Glyph) box() model.Rect {
	size := g.FontSize
	if size <= 0 {
		size = 1
	}
	return model.Rect{
		X1: g.X,
		Y1: g.Y - size*descentRatio,
		X2: g.X + g.Width,
		Y2: g.Y + size*ascentRatio,
	}
}

const (
	descentRatio = 0.2
	ascentRatio  = 0.8
)

// textLine is one visual line of text. Each rune of text is owned by one
// glyph so search hits can be mapped back to glyph boxes.
type textLine struct {
	text  string
	lower []rune
	owner []int
	boxes []model.Rect
	rect  model.Rect
}

// newTextLine builds a line from glyphs sorted left to right. Glyph text is
// NFKC-folded so ligatures such as "ﬁ" become two searchable runes owned by
// the same glyph box.
func newTextLine(glyphs []Glyph) textLine {
	var b strings.Builder
	line := textLine{}
	for i, g := range glyphs {
		box := g.box()
		line.boxes = append(line.boxes, box)
		if i == 0 {
			line.rect = box
		} else {
			line.rect = line.rect.Union(box)
		}
		for _, r := range norm.NFKC.String(g.Text) {
			if r == '\n' || r == '\r' {
				r = ' '
			}
			b.WriteRune(r)
			line.lower = append(line.lower, unicode.ToLower(r))
			line.owner = append(line.owner, i)
		}
	}
	line.text = b.String()
	return line
}

// search returns one rectangle per occurrence of needle (already lowered)
func (l textLine) search(needle []rune, wholeWords bool) []model.Rect {
	n := len(needle)
	if n == 0 || n > len(l.lower) {
		return nil
	}

	var hits []model.Rect
	for i := 0; i+n <= len(l.lower); i++ {
		if !runesEqual(l.lower[i:i+n], needle) {
			continue
		}
		if wholeWords && !l.atWordBoundary(i, i+n) {
			continue
		}
		r := l.boxes[l.owner[i]]
		for k := i + 1; k < i+n; k++ {
			r = r.Union(l.boxes[l.owner[k]])
		}
		hits = append(hits, r)
		i += n - 1
	}
	return hits
}

func (l textLine) atWordBoundary(start, end int) bool {
	if start > 0 && isWordRune(l.lower[start-1]) && isWordRune(l.lower[start]) {
		return false
	}
	if end < len(l.lower) && isWordRune(l.lower[end]) && isWordRune(l.lower[end-1]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lowerRunes lowers a needle the same way line text is lowered
func lowerRunes(s string) []rune {
	folded := norm.NFKC.String(s)
	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		out = append(out, unicode.ToLower(r))
	}
	return out
}

// glyphPage is the extracted, searchable state of one page
type glyphPage struct {
	width, height float64
	lines         []textLine
	images        []model.Rect
	links         []model.Link
}

func (p *glyphPage) text() string {
	parts := make([]string, len(p.lines))
	for i, l := range p.lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

func (p *glyphPage) lineRects() []model.Rect {
	rects := make([]model.Rect, len(p.lines))
	for i, l := range p.lines {
		rects[i] = l.rect
	}
	return rects
}

func (p *glyphPage) search(needle string, wholeWords bool) []model.Rect {
	lowered := lowerRunes(strings.TrimSpace(needle))
	var hits []model.Rect
	for _, l := range p.lines {
		hits = append(hits, l.search(lowered, wholeWords)...)
	}
	return hits
}

// LineConfig controls how glyphs are grouped into visual lines
type LineConfig struct {
	// RowTolerance is the baseline distance, as a fraction of the mean font
	// size, within which glyphs share a row (default: 0.5)
	RowTolerance float64 `toml:"row_tolerance" validate:"gt=0"`

	// ColumnGap is the horizontal gap, as a multiple of the font size, that
	// splits a row into separate lines (default: 2.5)
	ColumnGap float64 `toml:"column_gap" validate:"gt=0"`

	// SpaceGap is the horizontal gap, as a multiple of the font size, above
	// which a space is inserted between glyphs (default: 0.15)
	SpaceGap float64 `toml:"space_gap" validate:"gte=0"`
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		RowTolerance: 0.5,
		ColumnGap:    2.5,
		SpaceGap:     0.15,
	}
}

// groupLines groups glyphs into rows by baseline, sorts each row left to
// right and splits rows at wide gaps so print columns become separate lines
func groupLines(glyphs []Glyph, cfg LineConfig) []textLine {
	if len(glyphs) == 0 {
		return nil
	}

	total := 0.0
	for _, g := range glyphs {
		total += g.FontSize
	}
	tolerance := total / float64(len(glyphs)) * cfg.RowTolerance
	if tolerance <= 0 {
		tolerance = 1
	}

	sorted := make([]Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		dy := sorted[i].Y - sorted[j].Y
		if dy > tolerance || dy < -tolerance {
			return dy > 0
		}
		return false
	})

	var rows [][]Glyph
	var current []Glyph
	rowY := 0.0
	for _, g := range sorted {
		if len(current) > 0 && absFloat64(g.Y-rowY) > tolerance {
			rows = append(rows, current)
			current = nil
		}
		current = append(current, g)
		rowY = averageY(current)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	var lines []textLine
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		for _, segment := range splitRow(row, cfg) {
			line := newTextLine(segment)
			if strings.TrimSpace(line.text) != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// splitRow breaks a sorted row at column gaps and inserts synthetic spaces
func splitRow(row []Glyph, cfg LineConfig) [][]Glyph {
	var segments [][]Glyph
	var seg []Glyph
	for i, g := range row {
		if i > 0 {
			prev := row[i-1]
			gap := g.X - (prev.X + prev.Width)
			size := maxFloat64(g.FontSize, prev.FontSize)
			switch {
			case gap > size*cfg.ColumnGap:
				segments = append(segments, seg)
				seg = nil
			case gap > size*cfg.SpaceGap && !isSpace(prev.Text) && !isSpace(g.Text):
				seg = append(seg, Glyph{
					Text:     " ",
					X:        prev.X + prev.Width,
					Y:        prev.Y,
					Width:    gap,
					FontSize: prev.FontSize,
				})
			}
		}
		seg = append(seg, g)
	}
	if len(seg) > 0 {
		segments = append(segments, seg)
	}
	return segments
}

func isSpace(s string) bool {
	return strings.TrimSpace(s) == ""
}

func averageY(glyphs []Glyph) float64 {
	sum := 0.0
	for _, g := range glyphs {
		sum += g.Y
	}
	return sum / float64(len(glyphs))
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
