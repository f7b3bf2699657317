package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/glyphnav/model"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    PDFVersion
		wantErr error
	}{
		{"pdf 1.7", "%PDF-1.7\n%âãÏÓ", PDFVersion{1, 7}, nil},
		{"pdf 2.0", "%PDF-2.0\n", PDFVersion{2, 0}, nil},
		{"not pdf", "PK\x03\x04", PDFVersion{}, ErrNotPDF},
		{"empty", "", PDFVersion{}, ErrNotPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "f.pdf")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			got, err := parseHeader(f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.data[5:8], got.String())
		})
	}
}

func TestOpenRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	r, err := Open(path)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestMemoryTextAndLines(t *testing.T) {
	m := NewMemory(TextPage("first line", "second line"))

	assert.Equal(t, 1, m.PageCount())
	assert.Equal(t, "first line\nsecond line", m.PageText(0))

	rects := m.LineRects(0)
	require.Len(t, rects, 2)
	assert.Greater(t, rects[0].Top(), rects[1].Top(), "lines are ordered top to bottom")
	assert.InDelta(t, DefaultFontSize, rects[0].Height(), 1e-9)
	assert.InDelta(t, DefaultMargin, rects[0].Left(), 1e-9)
	assert.InDelta(t, DefaultMargin+10*GlyphWidth(DefaultFontSize), rects[0].Right(), 1e-9)

	w, h := m.PageSize(0)
	assert.Equal(t, DefaultPageWidth, w)
	assert.Equal(t, DefaultPageHeight, h)
}

func TestMemoryOutOfRangePage(t *testing.T) {
	m := NewMemory(TextPage("only"))

	assert.Empty(t, m.PageText(5))
	assert.Empty(t, m.LineRects(-1))
	assert.Empty(t, m.Search(3, "only", false))
}

func TestMemorySearch(t *testing.T) {
	m := NewMemory(TextPage("The cat sat on the concatenated mat", "THE END"))
	gw := GlyphWidth(DefaultFontSize)

	tests := []struct {
		name       string
		needle     string
		wholeWords bool
		want       int
	}{
		{"case insensitive", "the", false, 3},
		{"substring", "cat", false, 2},
		{"whole words", "cat", true, 1},
		{"multi word", "sat on", false, 1},
		{"no match", "dog", false, 0},
		{"empty needle", "  ", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, m.Search(0, tt.needle, tt.wholeWords), tt.want)
		})
	}

	hits := m.Search(0, "cat", true)
	require.Len(t, hits, 1)
	assert.InDelta(t, DefaultMargin+4*gw, hits[0].Left(), 1e-9)
	assert.InDelta(t, DefaultMargin+7*gw, hits[0].Right(), 1e-9)
}

func TestSearchFoldsLigatures(t *testing.T) {
	m := NewMemory(TextPage("an eﬃcient ﬁx"))

	hits := m.Search(0, "efficient", true)
	require.Len(t, hits, 1)
	assert.Contains(t, m.PageText(0), "efficient")
	assert.Len(t, m.Search(0, "fix", true), 1)
}

func TestMemoryLabelsAndOutline(t *testing.T) {
	m := NewMemory(TextPage("a"), TextPage("b"))
	assert.False(t, model.HasPageLabels(m))
	assert.Equal(t, "2", model.PageLabel(m, 1))

	m.SetPageLabels([]string{"i", "1"})
	assert.True(t, model.HasPageLabels(m))
	assert.Equal(t, "i", model.PageLabel(m, 0))

	m.SetOutline([]model.OutlineEntry{{Title: "Intro", Page: 1}})
	require.Len(t, m.Outline(), 1)
	assert.Equal(t, "Intro", m.Outline()[0].Title)
}

func TestGroupLinesSplitsColumns(t *testing.T) {
	var glyphs []Glyph
	add := func(text string, x, y float64) {
		for _, r := range text {
			glyphs = append(glyphs, Glyph{Text: string(r), X: x, Y: y, Width: 5, FontSize: 10})
			x += 5
		}
	}
	add("Chapter", 72, 700)
	add("12", 500, 700.5)
	add("Next", 72, 688)

	lines := groupLines(glyphs, DefaultLineConfig())
	require.Len(t, lines, 3)
	assert.Equal(t, "Chapter", lines[0].text)
	assert.Equal(t, "12", lines[1].text)
	assert.Equal(t, "Next", lines[2].text)
}

func TestGroupLinesInsertsSpaces(t *testing.T) {
	glyphs := []Glyph{
		{Text: "a", X: 0, Y: 100, Width: 5, FontSize: 10},
		{Text: "b", X: 8, Y: 100, Width: 5, FontSize: 10},
		{Text: "c", X: 13, Y: 100, Width: 5, FontSize: 10},
	}

	lines := groupLines(glyphs, DefaultLineConfig())
	require.Len(t, lines, 1)
	assert.Equal(t, "a bc", lines[0].text)
}

func TestFormatPageNumber(t *testing.T) {
	tests := []struct {
		style string
		n     int
		want  string
	}{
		{"D", 12, "12"},
		{"r", 4, "iv"},
		{"R", 1994, "MCMXCIV"},
		{"a", 1, "a"},
		{"A", 28, "BB"},
		{"", 3, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPageNumber(tt.style, tt.n), "style %q n %d", tt.style, tt.n)
	}
}

func TestLineFromBox(t *testing.T) {
	line, ok := lineFromBox("abcd", model.NewRect(100, 500, 140, 510))
	require.True(t, ok)
	assert.Equal(t, "abcd", line.text)
	assert.InDelta(t, 100, line.rect.Left(), 1e-9)
	assert.InDelta(t, 140, line.rect.Right(), 1e-9)
	assert.InDelta(t, 500, line.rect.Bottom(), 1e-9)
	assert.InDelta(t, 510, line.rect.Top(), 1e-9)

	_, ok = lineFromBox("", model.NewRect(0, 0, 1, 1))
	assert.False(t, ok)
}
