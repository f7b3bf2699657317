package model

import (
	"context"
	"image"
	"strconv"
)

// Source is the PDF collaborator the navigation engine reads from. Page
// indices are 0-based. Implementations never fail per page: a page that
// cannot be extracted reports empty text and no rectangles.
type Source interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// PageSize returns the physical width and height of a page in points
	PageSize(page int) (width, height float64)

	// PageText returns the plain text of a page, one visual line per
	// "\n"-separated line, in the same order as LineRects
	PageText(page int) string

	// LineRects returns one rectangle per visual text line, top to bottom
	LineRects(page int) []Rect

	// Search finds literal occurrences of needle on a page, ignoring case.
	// Each returned rectangle covers one occurrence on one line.
	Search(page int, needle string, wholeWords bool) []Rect

	// ImageRegions returns the placement rectangles of raster images
	ImageRegions(page int) []Rect

	// Outline returns the embedded document outline, or nil when absent
	Outline() []OutlineEntry

	// Close releases the underlying document
	Close() error
}

// PageLabeler is implemented by sources that know the printed page labels
// of a document (for example "iv" or "A-3"). Sources without it label
// pages with their 1-based number.
type PageLabeler interface {
	PageLabel(page int) (string, bool)
}

// LinkSource is implemented by sources that expose link annotations.
type LinkSource interface {
	Links(page int) []Link
}

// Renderer rasterizes a page into a bitmap whose size is chosen by the
// renderer (typically from a resolution).
type Renderer interface {
	Render(ctx context.Context, page int) (image.Image, error)
}

// OutlineEntry is one node of an embedded outline (bookmarks) tree.
type OutlineEntry struct {
	Title string

	// Page is the 0-based destination page
	Page int

	// Offset is the destination Y position in physical space. It is only
	// meaningful when HasOffset is true.
	Offset    float64
	HasOffset bool

	Children []OutlineEntry
}

// Link is a link annotation on a page.
type Link struct {
	Rect Rect

	// URI is set for external links
	URI string

	// Page is the 0-based destination page for internal links, or -1
	Page int
}

// PageLabel returns the printed label of a page using the source's
// PageLabeler when available.
func PageLabel(src Source, page int) string {
	if l, ok := src.(PageLabeler); ok {
		if label, ok := l.PageLabel(page); ok && label != "" {
			return label
		}
	}
	return strconv.Itoa(page + 1)
}

// HasPageLabels reports whether the source carries explicit page labels.
func HasPageLabels(src Source) bool {
	l, ok := src.(PageLabeler)
	if !ok || src.PageCount() == 0 {
		return false
	}
	_, ok = l.PageLabel(0)
	return ok
}
