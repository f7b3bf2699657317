package reader

import (
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/glyphnav/model"
)

// placement.pdf has three pages: the first paints an image directly and
// another through a translated form XObject, the second paints one image
// across two content streams sharing a scaled graphics state, and the
// third is an empty 300x400 page. Page labels are "i", "ii" and "A-5",
// the last range sitting in a /Kids node of the number tree.
func openFixture(t *testing.T) *Reader {
	t.Helper()
	r, err := Open(filepath.Join("testdata", "placement.pdf"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestFixturePageLabels(t *testing.T) {
	r := openFixture(t)
	require.Equal(t, 3, r.PageCount())

	for i, want := range []string{"i", "ii", "A-5"} {
		got, ok := r.PageLabel(i)
		assert.True(t, ok)
		assert.Equal(t, want, got, "page %d", i)
	}
	_, ok := r.PageLabel(3)
	assert.False(t, ok)
}

func TestCollectLabelRanges(t *testing.T) {
	r := openFixture(t)

	var ranges []labelRange
	collectLabelRanges(r.pdf.Trailer().Key("Root").Key("PageLabels"), &ranges, 0)
	assert.Equal(t, []labelRange{
		{start: 0, style: "r", first: 1},
		{start: 2, style: "D", prefix: "A-", first: 5},
	}, ranges)

	var none []labelRange
	collectLabelRanges(r.pdf.Trailer().Key("Root").Key("PageLabels"), &none, 33)
	assert.Empty(t, none, "recursion is bounded")
}

func TestFixtureImagePlacement(t *testing.T) {
	r := openFixture(t)

	assert.Equal(t, []model.Rect{
		{X1: 72, Y1: 500, X2: 272, Y2: 600},
		{X1: 310, Y1: 110, X2: 360, Y2: 150},
	}, r.ImageRegions(0))

	assert.Equal(t, []model.Rect{{X1: 20, Y1: 40, X2: 220, Y2: 140}}, r.ImageRegions(1))

	assert.Empty(t, r.ImageRegions(2))
	w, h := r.PageSize(2)
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 400.0, h)
}

func TestImagePlacerDepthLimit(t *testing.T) {
	r := openFixture(t)
	page := r.pdf.Page(1)

	ip := &imagePlacer{}
	ip.place(page.V.Key("Contents"), page.Resources(), model.Identity(), maxFormDepth+1)
	assert.Empty(t, ip.regions)

	ip.place(page.V.Key("Contents"), page.Resources(), model.Identity(), maxFormDepth)
	assert.Len(t, ip.regions, 1, "forms past the limit are skipped")
}

func TestConvertBookmarks(t *testing.T) {
	bms := []pdfcpu.Bookmark{
		{Title: "Cover", PageFrom: 0},
		{Title: "Chapter 1", PageFrom: 2, Kids: []pdfcpu.Bookmark{
			{Title: "1.1 Scope", PageFrom: 3},
		}},
		{Title: "Index", PageFrom: 40},
	}

	entries := convertBookmarks(bms, 10)
	require.Len(t, entries, 3)

	assert.Equal(t, "Cover", entries[0].Title)
	assert.Equal(t, 0, entries[0].Page, "pages before the first clamp to 0")
	assert.Equal(t, 1, entries[1].Page)
	require.Len(t, entries[1].Children, 1)
	assert.Equal(t, "1.1 Scope", entries[1].Children[0].Title)
	assert.Equal(t, 2, entries[1].Children[0].Page)
	assert.Empty(t, entries[1].Children[0].Children)
	assert.Equal(t, 9, entries[2].Page, "pages past the end clamp to the last")

	for _, e := range entries {
		assert.Zero(t, e.Offset)
		assert.False(t, e.HasOffset)
	}

	assert.Nil(t, convertBookmarks(nil, 10))
	assert.Equal(t, 40-1, convertBookmarks(bms[2:], 0)[0].Page, "unknown page count does not clamp")
}
