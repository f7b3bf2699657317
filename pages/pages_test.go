package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/reader"
)

func TestNewBuildsEveryPage(t *testing.T) {
	src := reader.NewMemory(
		reader.TextPage("alpha", "beta", "gamma"),
		reader.TextPage(),
	)
	c := New(src)

	require.Equal(t, 2, c.Len())
	p := c.Page(0)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, "1", p.Label)
	assert.Equal(t, "alpha\nbeta\ngamma", p.Text)
	assert.Len(t, p.Lines, 3)
	assert.InDelta(t, reader.DefaultFontSize, p.LineHeight, 1e-9)
	assert.Equal(t, -1, p.Selected)
	assert.Equal(t, -1, p.Hovered)

	empty := c.Page(1)
	assert.Empty(t, empty.Lines)
	assert.Equal(t, DefaultLineHeight, empty.LineHeight)

	assert.Nil(t, c.Page(2))
	assert.Nil(t, c.Page(-1))
}

func TestLinesAreNormalized(t *testing.T) {
	src := reader.NewMemory(reader.TextPage("x"))
	p := New(src).Page(0)
	for _, l := range p.Lines {
		assert.LessOrEqual(t, l.X1, l.X2)
		assert.LessOrEqual(t, l.Y1, l.Y2)
	}
}

func TestNearestLineAndCounts(t *testing.T) {
	src := reader.NewMemory(reader.TextPage("one", "two", "three", "four"))
	p := New(src).Page(0)

	assert.Equal(t, 2, p.NearestLine(reader.LineY(2)+3))
	assert.Equal(t, 1, p.LinesBelow(p.Lines[2].Center().Y))
	assert.Equal(t, 2, p.LinesAbove(p.Lines[2].Center().Y))
	assert.Len(t, p.LinesIn(model.NewRect(0, reader.LineY(3), 600, reader.LineY(1))), 3)

	var none PageMeta
	assert.Equal(t, -1, none.NearestLine(100))
}

func TestLabelIndex(t *testing.T) {
	src := reader.NewMemory(reader.TextPage("a"), reader.TextPage("b"), reader.TextPage("c"))
	src.SetPageLabels([]string{"i", "ii", "1"})
	idx := New(src).Labels()

	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"i", 0, true},
		{"II", 1, true},
		{"1", 2, true},
		{"2", 0, false},
	}
	for _, tt := range tests {
		got, ok := idx.Resolve(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.label)
		}
	}
}

func TestSetFinds(t *testing.T) {
	src := reader.NewMemory(reader.TextPage("a"), reader.TextPage("b"))
	c := New(src)
	c.Page(0).Selected = 0

	c.SetFinds([]model.FindResult{{Page: 1}, {Page: 0}, {Page: 1}})
	assert.Equal(t, []int{1}, c.Page(0).Finds)
	assert.Equal(t, []int{0, 2}, c.Page(1).Finds)
	assert.Equal(t, -1, c.Page(0).Selected)

	c.ClearFinds()
	assert.Empty(t, c.Page(1).Finds)
}

func TestFigureAt(t *testing.T) {
	fig := &model.Figure{ID: "1", Region: model.NewRect(100, 100, 200, 200)}
	p := &PageMeta{Figures: []*model.Figure{fig}}

	assert.Same(t, fig, p.FigureAt(model.Point{X: 150, Y: 150}))
	assert.Nil(t, p.FigureAt(model.Point{X: 50, Y: 150}))
}
