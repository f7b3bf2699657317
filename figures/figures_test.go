package figures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
	"github.com/tsawler/glyphnav/reader"
)

func newTestExtractor(p ...reader.MemoryPage) (*Extractor, *pages.Cache) {
	src := reader.NewMemory(p...)
	cache := pages.New(src)
	return NewExtractor(src, cache, find.NewEngine(src, cache)), cache
}

// figurePage is a page with a text line per entry and one image region
// below the text
func figurePage(region model.Rect, lines ...string) reader.MemoryPage {
	page := reader.TextPage(lines...)
	page.Images = []model.Rect{region}
	return page
}

var lowerRegion = model.NewRect(72, 300, 300, 550)

func TestLabelsEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"fig", "Figure", true},
		{"Fig.", "figures", true},
		{"picture", "pic", true},
		{"img", "Image", true},
		{"photo", "Photograph", true},
		{"fig", "map", false},
		{"picture", "image", false},
		{"", "Figure", true},
		{"", "map", true},
		{"", "box", false},
		{"Box", "boxes", true},
		{"", "", true},
		{"table", "Table", true},
		{"table", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelsEqual(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, LabelsEqual(tt.b, tt.a), "%q vs %q (swapped)", tt.b, tt.a)
	}

	for spelling := range spellings {
		assert.True(t, LabelsEqual(spelling, spelling), "reflexive for %q", spelling)
	}
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassFigure, ClassOf("Fig."))
	assert.Equal(t, ClassIllustration, ClassOf("Illus"))
	assert.Equal(t, ClassNone, ClassOf("Chart"))
	assert.False(t, ClassBox.PictureLike())
	assert.True(t, ClassMap.PictureLike())
	assert.Equal(t, "photo", ClassPhoto.String())
}

func TestCaptionCandidates(t *testing.T) {
	p := newPatterns()
	text := "Fig. 2.1: Architecture\n" +
		"Some text\n" +
		"2.3 Bare caption\n" +
		"Total 1,234 items\n" +
		"1,234 is a number\n" +
		"A bare letter\n" +
		"Figure B. Appendix view"

	cands := p.captions(text)
	require.Len(t, cands, 3)
	assert.Equal(t, candidate{label: "Fig.", id: "2.1", line: "Fig. 2.1: Architecture"}, cands[0])
	assert.Equal(t, candidate{label: "", id: "2.3", line: "2.3 Bare caption"}, cands[1])
	assert.Equal(t, "Figure", cands[2].label)
	assert.Equal(t, "B", cands[2].id)
}

func TestReferenceMentions(t *testing.T) {
	p := newPatterns()
	refs := p.references("as shown in Fig. 3 and\nFigure\n4.2, see also fig 3.")

	require.Len(t, refs, 3)
	assert.Equal(t, "Fig.", refs[0].label)
	assert.Equal(t, "3", refs[0].id)
	assert.False(t, refs[0].lineStart)
	assert.Equal(t, "Figure 4.2", refs[1].text)
	assert.True(t, refs[1].lineStart)
	assert.Equal(t, "3", refs[2].id)
}

func TestResolveFigures(t *testing.T) {
	x, cache := newTestExtractor(
		reader.TextPage("As Figure 2 shows, the design", "is layered. See also Map 9."),
		figurePage(lowerRegion, "Overview", "Figure 2: A layered design"),
	)

	x.Resolve(0)

	figs := cache.Page(1).Figures
	require.Len(t, figs, 1)
	f := figs[0]
	assert.Equal(t, "Figure", f.Label)
	assert.Equal(t, "2", f.ID)
	assert.False(t, f.Complex)
	assert.Equal(t, lowerRegion, f.Region)
	assert.Equal(t, "Figure 2: A layered design", f.Caption.Text)
	assert.NotEmpty(t, f.Caption.Rects)
	assert.Equal(t, []int{0}, f.ReferencedFrom)

	refs := cache.Page(0).Referenced
	require.Len(t, refs, 2)
	assert.Equal(t, "Figure 2", refs[0].Text)
	assert.Same(t, f, refs[0].Target)
	assert.NotEmpty(t, refs[0].Rects)
	assert.False(t, refs[1].Resolved(), "no map 9 exists")

	assert.Empty(t, cache.Page(1).Referenced, "a caption does not mention itself")
}

func TestResolveIsIdempotent(t *testing.T) {
	x, cache := newTestExtractor(
		reader.TextPage("See Fig. 1.1 and Fig. 1.2."),
		figurePage(lowerRegion, "Figure 1.1 First"),
		figurePage(lowerRegion, "Figure 1.2 Second", "as in Fig. 1.1 before"),
	)

	x.Resolve(0)
	first := snapshot(cache)
	x.Resolve(0)
	second := snapshot(cache)

	assert.Equal(t, first, second)
	require.Len(t, cache.Page(1).Figures, 1)
	assert.True(t, cache.Page(1).Figures[0].Complex)
	assert.Equal(t, []int{0}, cache.Page(1).Figures[0].ReferencedFrom)

	back := cache.Page(2).Referenced
	require.Len(t, back, 1)
	assert.False(t, back[0].Resolved(), "mentions only resolve forward")
}

func TestResolveFromLaterPageKeepsReferences(t *testing.T) {
	x, cache := newTestExtractor(
		reader.TextPage("As Figure 2 shows, the design", "is layered."),
		figurePage(lowerRegion, "Overview", "Figure 2: A layered design"),
	)

	x.Resolve(0)
	x.Resolve(1)

	figs := cache.Page(1).Figures
	require.Len(t, figs, 1)
	refs := cache.Page(0).Referenced
	require.Len(t, refs, 1)
	assert.Same(t, figs[0], refs[0].Target)
	assert.Equal(t, []int{0}, figs[0].ReferencedFrom)

	x.Resolve(1)
	assert.Same(t, cache.Page(1).Figures[0], refs[0].Target)
	assert.Equal(t, []int{0}, cache.Page(1).Figures[0].ReferencedFrom)
}

type figureSnapshot struct {
	Key            string
	Region         model.Rect
	ReferencedFrom []int
}

func snapshot(cache *pages.Cache) []figureSnapshot {
	var out []figureSnapshot
	for _, p := range cache.Pages() {
		for _, f := range p.Figures {
			out = append(out, figureSnapshot{f.Key(), f.Region, f.ReferencedFrom})
		}
	}
	return out
}

func TestLabelExclusivity(t *testing.T) {
	x, cache := newTestExtractor(
		figurePage(lowerRegion, "1 Bare caption"),
		figurePage(lowerRegion, "Figure 2 Labeled caption"),
		figurePage(lowerRegion, "3 Another bare caption"),
	)

	x.Resolve(0)
	x.Resolve(0)

	require.Len(t, cache.Page(0).Figures, 1)
	assert.Equal(t, "1", cache.Page(0).Figures[0].ID)
	require.Len(t, cache.Page(1).Figures, 1)
	assert.Equal(t, "2", cache.Page(1).Figures[0].ID)
	assert.Empty(t, cache.Page(2).Figures)
}

func TestPairsNearestCaption(t *testing.T) {
	top := model.NewRect(72, 500, 300, 690)
	bottom := model.NewRect(72, 100, 300, 290)
	page := reader.MemoryPage{
		Lines: []reader.MemoryLine{
			{Text: "Figure 1: top", X: 72, Y: 700},
			{Text: "Figure 2: bottom", X: 72, Y: 300},
		},
		Images: []model.Rect{bottom, top},
	}
	x, cache := newTestExtractor(page)

	figs := x.Extract(0)
	require.Len(t, figs, 2)
	byID := map[string]*model.Figure{}
	for _, f := range cache.Page(0).Figures {
		byID[f.ID] = f
	}
	assert.Equal(t, top, byID["1"].Region)
	assert.Equal(t, bottom, byID["2"].Region)
	assert.Len(t, byID["1"].Candidates, 2)
	assert.LessOrEqual(t, byID["1"].Candidates[0].Distance, byID["1"].Candidates[1].Distance)
}

func TestFilterAndMergeRegions(t *testing.T) {
	x, _ := newTestExtractor(reader.TextPage("x"))
	meta := &pages.PageMeta{LineHeight: 10}

	kept := x.filterRegions(meta, []model.Rect{
		model.NewRect(0, 0, 5, 100),
		model.NewRect(0, 0, 100, 100),
	})
	require.Len(t, kept, 1)

	halves := x.mergeRegions(meta, []model.Rect{
		model.NewRect(72, 400, 200, 600),
		model.NewRect(200, 400, 328, 600),
	})
	require.Len(t, halves, 1)
	assert.Equal(t, model.NewRect(72, 400, 328, 600), halves[0])

	a := model.NewRect(72, 500, 300, 600)
	b := model.NewRect(72, 390, 300, 490)
	assert.Len(t, x.mergeRegions(meta, []model.Rect{a, b}), 1)

	meta.Lines = []model.Rect{model.NewRect(80, 490, 250, 500)}
	assert.Len(t, x.mergeRegions(meta, []model.Rect{a, b}), 2, "a text line separates the regions")

	apart := x.mergeRegions(&pages.PageMeta{LineHeight: 10}, []model.Rect{
		model.NewRect(72, 600, 300, 700),
		model.NewRect(72, 100, 300, 200),
	})
	assert.Len(t, apart, 2)
}

func TestAddPage(t *testing.T) {
	list := addPage(nil, 4)
	list = addPage(list, 1)
	list = addPage(list, 4)
	list = addPage(list, 9)
	assert.Equal(t, []int{1, 4, 9}, list)
}
