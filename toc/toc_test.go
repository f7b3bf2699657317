package toc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
	"github.com/tsawler/glyphnav/reader"
)

func newTestBuilder(src *reader.Memory) *Builder {
	cache := pages.New(src)
	return NewBuilder(src, cache, find.NewEngine(src, cache))
}

// bodyPages returns n pages of plain body text
func bodyPages(n int) []reader.MemoryPage {
	out := make([]reader.MemoryPage, n)
	for i := range out {
		out[i] = reader.TextPage("Body text without numbers.")
	}
	return out
}

// checkLengths asserts the length invariant on every item below the head
func checkLengths(t *testing.T, tree *Tree) {
	t.Helper()
	tree.Walk(func(h Handle, it *Item) bool {
		if h != Head && !it.Empty {
			assert.GreaterOrEqual(t, it.Length, 1, "item %q", it.Title)
		}
		sum := 0
		for _, c := range it.Children {
			sum += tree.Items[c].Length
		}
		assert.LessOrEqual(t, sum, it.Length, "children of %q", it.Title)
		return true
	})
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		title string
		want  heading
	}{
		{"Chapter 3: Results", heading{LabelChapter, "3", "Results"}},
		{"Part IV - The End", heading{LabelPart, "IV", "The End"}},
		{"Chapter Twenty-One Ends", heading{LabelChapter, "21", "Ends"}},
		{"Part one hundred", heading{LabelPart, "100", ""}},
		{"Section 2.4.1 Details", heading{LabelSection, "2.4.1", "Details"}},
		{"Sec. B Appendix", heading{LabelSection, "B", "Appendix"}},
		{"§ 7 Scope", heading{LabelSection, "7", "Scope"}},
		{"2.1 Setup", heading{LabelNone, "2.1", "Setup"}},
		{"4. Discussion", heading{LabelNone, "4", "Discussion"}},
		{"XII. Twelve", heading{LabelNone, "XII", "Twelve"}},
		{"C: Tables", heading{LabelNone, "C", "Tables"}},
		{"Civilization", heading{LabelNone, "", "Civilization"}},
		{"Partial results", heading{LabelNone, "", "Partial results"}},
		{"Three Little Pigs", heading{LabelNone, "", "Three Little Pigs"}},
		{"  Preface  ", heading{LabelNone, "", "Preface"}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHeading(tt.title))
		})
	}
}

func TestRomanValue(t *testing.T) {
	assert.Equal(t, 4, romanValue("iv"))
	assert.Equal(t, 40, romanValue("XL"))
	assert.Equal(t, 99, romanValue("XCIX"))
	assert.Equal(t, 100, romanValue("C"))
	assert.Equal(t, 0, romanValue("CX"))
	assert.Equal(t, 0, romanValue("IIII"))
	assert.Equal(t, 0, romanValue(""))
}

func TestLabelOrder(t *testing.T) {
	assert.Equal(t, LabelChapter, LabelPart.Finer())
	assert.Equal(t, LabelSection, LabelChapter.Finer())
	assert.Equal(t, LabelSubsection, LabelSubsection.Finer())
	assert.Equal(t, LabelNone, LabelNone.Finer())
	assert.True(t, LabelPart.CoarserThan(LabelSection))
	assert.False(t, LabelSection.CoarserThan(LabelSection))
	assert.False(t, LabelNone.CoarserThan(LabelChapter))
	assert.Equal(t, LabelSection, labelForID("2.1"))
	assert.Equal(t, LabelChapter, labelForID("7"))
}

func TestEndsWithPageNumber(t *testing.T) {
	assert.True(t, endsWithPageNumber("Introduction 12"))
	assert.True(t, endsWithPageNumber("Preface ........ xi"))
	assert.False(t, endsWithPageNumber("Appendix"))
	assert.False(t, endsWithPageNumber("Contents"))
}

func TestDiscover(t *testing.T) {
	e, ok := discover("2.1 Setup ........ 6")
	require.True(t, ok)
	assert.Equal(t, "2.1 Setup", e.title)
	assert.Equal(t, "6", e.label)
	assert.Equal(t, "2.1", e.heading.id)

	e, ok = discover("Preface xi")
	require.True(t, ok)
	assert.Equal(t, "xi", e.label)

	_, ok = discover("Contents")
	assert.False(t, ok)
	_, ok = discover("6")
	assert.False(t, ok)
}

func TestOutlineWithUnlabeledChapters(t *testing.T) {
	const total = 300
	titles := []string{"Getting Started", "Basics", "Layout", "Fonts", "Images",
		"Links", "Search", "Figures", "Navigation", "Wrapping Up"}

	pp := bodyPages(total)
	var outline []model.OutlineEntry
	for i, title := range titles {
		page := i * 30
		pp[page] = reader.TextPage(title, "Body text without numbers.")
		outline = append(outline, model.OutlineEntry{Title: title, Page: page})
	}
	src := reader.NewMemory(pp...)
	src.SetOutline(outline)

	tree := newTestBuilder(src).Build()
	assert.Equal(t, StrategyOutline, tree.Strategy)
	assert.Equal(t, total, tree.Item(Head).Length)

	root := tree.Item(Head)
	require.Len(t, root.Children, 3)
	initium, body, finis := tree.Item(root.Children[0]), tree.Item(root.Children[1]), tree.Item(root.Children[2])
	assert.True(t, initium.Empty)
	assert.Equal(t, 0, initium.Length)
	assert.True(t, finis.Empty)
	assert.Equal(t, 0, finis.Length)

	assert.Equal(t, MainTitle, body.Title)
	require.Len(t, body.Children, 10)
	sum := 0
	for i, c := range body.Children {
		it := tree.Item(c)
		sum += it.Length
		assert.Equal(t, titles[i], it.Title)
		assert.Equal(t, 30, it.Length)
		assert.Equal(t, 2, it.Depth)
		assert.Equal(t, LabelChapter, it.Label)
		assert.True(t, it.HasOffset, "heading of %q located", it.Title)
	}
	assert.Equal(t, body.Length, sum)
	checkLengths(t, tree)

	assert.Equal(t, body.Children[3], tree.At(95))
}

func TestOutlinePartitionsAndLabels(t *testing.T) {
	pp := bodyPages(30)
	src := reader.NewMemory(pp...)
	src.SetOutline([]model.OutlineEntry{
		{Title: "Preface", Page: 0},
		{Title: "Chapter 1 Introduction", Page: 2, Children: []model.OutlineEntry{
			{Title: "1.1 Scope", Page: 3},
			{Title: "1.2 Terms", Page: 5},
		}},
		{Title: "Chapter 2 Design", Page: 10, Children: []model.OutlineEntry{
			{Title: "2.1 Crowded", Page: 12},
			{Title: "2.2 Crowded", Page: 12},
			{Title: "2.3 Crowded", Page: 12},
		}},
		{Title: "Bibliography", Page: 25},
	})

	tree := newTestBuilder(src).Build()
	root := tree.Item(Head)
	require.Len(t, root.Children, 3)

	initium := tree.Item(root.Children[0])
	require.Len(t, initium.Children, 1)
	assert.Equal(t, "Preface", tree.Item(initium.Children[0]).Title)
	assert.Equal(t, 2, initium.Length)

	body := tree.Item(root.Children[1])
	require.Len(t, body.Children, 2)
	assert.Equal(t, 2, body.Page)

	finis := tree.Item(root.Children[2])
	require.Len(t, finis.Children, 1)
	assert.Equal(t, 25, finis.Page)
	assert.Equal(t, 5, finis.Length)

	h, ok := tree.Lookup("1.2")
	require.True(t, ok)
	scope := tree.Item(h)
	assert.Equal(t, LabelSection, scope.Label)
	assert.Equal(t, "Terms", scope.Caption)
	assert.Equal(t, 3, scope.Depth)
	assert.Equal(t, 5, scope.Length)
	assert.NotEqual(t, NoHandle, scope.Prev)
	assert.Equal(t, NoHandle, scope.Next)

	h, ok = tree.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, LabelChapter, tree.Item(h).Label)
	assert.Equal(t, 8, tree.Item(h).Length)

	_, ok = tree.Lookup("9")
	assert.False(t, ok)

	checkLengths(t, tree)
}

func TestPartitionsTileDocument(t *testing.T) {
	tests := []struct {
		name    string
		outline []model.OutlineEntry
		lengths [3]int
	}{
		{
			"front matter on the first chapter page",
			[]model.OutlineEntry{{Title: "Preface", Page: 0}, {Title: "Chapter 1", Page: 0}},
			[3]int{1, 9, 0},
		},
		{
			"back matter on the last page",
			[]model.OutlineEntry{{Title: "Chapter 1", Page: 0}, {Title: "Index", Page: 9}},
			[3]int{0, 9, 1},
		},
		{
			"everything on the last page",
			[]model.OutlineEntry{{Title: "Preface", Page: 9}, {Title: "Chapter 1", Page: 9}, {Title: "Index", Page: 9}},
			[3]int{8, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := reader.NewMemory(bodyPages(10)...)
			src.SetOutline(tt.outline)
			tree := newTestBuilder(src).Build()

			root := tree.Item(Head)
			assert.Equal(t, 10, root.Length)
			require.Len(t, root.Children, 3)

			var lengths [3]int
			sum := 0
			for i, c := range root.Children {
				lengths[i] = tree.Item(c).Length
				sum += lengths[i]
			}
			assert.Equal(t, tt.lengths, lengths)
			assert.Equal(t, 10, sum)
			checkLengths(t, tree)
		})
	}
}

// contentsDocument has a title page, a contents page with one entry split
// into two print columns and printed page numbers that run two behind the
// page indices
func contentsDocument() *reader.Memory {
	pp := bodyPages(30)
	pp[0] = reader.TextPage("A Small Book")

	y := func(i int) float64 { return reader.LineY(i) }
	pp[1] = reader.MemoryPage{Lines: []reader.MemoryLine{
		{Text: "Contents", X: 72, Y: y(0)},
		{Text: "1 Introduction 1", X: 72, Y: y(1)},
		{Text: "1.1 Background 2", X: 72, Y: y(2)},
		{Text: "2 Methods 5", X: 72, Y: y(3)},
		{Text: "2.1 Setup ........", X: 72, Y: y(4)},
		{Text: "6", X: 400, Y: y(4)},
		{Text: "3 Results 9", X: 72, Y: y(5)},
		{Text: "Index 20", X: 72, Y: y(6)},
	}}

	headings := map[int]string{2: "1 Introduction", 3: "1.1 Background", 6: "2 Methods",
		7: "2.1 Setup", 10: "3 Results", 21: "Index"}
	for page, title := range headings {
		pp[page] = reader.TextPage(title, "Body text without numbers.")
	}
	return reader.NewMemory(pp...)
}

func TestSynthesizeFromContentsPage(t *testing.T) {
	tree := newTestBuilder(contentsDocument()).Build()
	require.Equal(t, StrategySynthesized, tree.Strategy)

	root := tree.Item(Head)
	require.Len(t, root.Children, 3)
	assert.True(t, tree.Item(root.Children[0]).Empty)

	body := tree.Item(root.Children[1])
	require.Len(t, body.Children, 3)
	assert.Equal(t, 2, body.Page)

	want := map[string]int{"1": 2, "1.1": 3, "2": 6, "2.1": 7, "3": 10}
	for id, page := range want {
		h, ok := tree.Lookup(id)
		require.True(t, ok, "id %s", id)
		assert.Equal(t, page, tree.Item(h).Page, "id %s", id)
	}

	h, _ := tree.Lookup("2.1")
	setup := tree.Item(h)
	assert.Equal(t, "2.1 Setup", setup.Title)
	assert.Equal(t, LabelSection, setup.Label)
	assert.Equal(t, "2", tree.Items[setup.Parent].ID)
	assert.True(t, setup.HasOffset)

	finis := tree.Item(root.Children[2])
	require.Len(t, finis.Children, 1)
	assert.Equal(t, "Index", tree.Item(finis.Children[0]).Title)
	assert.Equal(t, 21, finis.Page)

	checkLengths(t, tree)
}

func TestSynthesizeUsesPageLabels(t *testing.T) {
	src := contentsDocument()
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = fmt.Sprint(i - 1)
	}
	labels[0], labels[1] = "i", "ii"
	src.SetPageLabels(labels)

	tree := newTestBuilder(src).Build()
	require.Equal(t, StrategySynthesized, tree.Strategy)

	h, ok := tree.Lookup("3")
	require.True(t, ok)
	assert.Equal(t, 10, tree.Item(h).Page)
}

func TestSynthesisIsDeterministic(t *testing.T) {
	first := newTestBuilder(contentsDocument()).Build()
	second := newTestBuilder(contentsDocument()).Build()
	assert.Equal(t, first.Items, second.Items)
}

func TestNoTableOfContents(t *testing.T) {
	tree := newTestBuilder(reader.NewMemory(bodyPages(12)...)).Build()

	assert.Equal(t, StrategyNone, tree.Strategy)
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 0, tree.Depth())
	assert.Equal(t, 12, tree.Item(Head).Length)
	assert.Equal(t, Head, tree.At(3))
	assert.Nil(t, tree.Item(5))
}

func TestContentsRunRanking(t *testing.T) {
	pp := bodyPages(20)
	pp[3] = reader.TextPage("List of Tables", "Sizes 4", "Weights 9")
	pp[5] = reader.TextPage("Chapter 1 Start 1", "Chapter 2 Middle 4", "Chapter 3 End 8")
	b := newTestBuilder(reader.NewMemory(pp...))

	runs := b.contentsRuns()
	require.Len(t, runs, 1, "two of three lines is below the page score")
	assert.Equal(t, 5, runs[0].start)
	assert.Equal(t, 6, runs[0].end)
	assert.InDelta(t, 1.0, runs[0].density, 1e-9)
}
