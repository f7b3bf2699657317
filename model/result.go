package model

// FindResult is one occurrence of a search pattern on a page.
type FindResult struct {
	// Page is the 0-based page the occurrence starts on
	Page int

	// Text is the matched text with line breaks collapsed to spaces
	Text string

	// Rects holds one rectangle per visual line the occurrence spans,
	// in reading order
	Rects []Rect

	// PagePrefix is the index, within the same result slice, of the
	// fragment on the previous page that this fragment continues, or -1
	PagePrefix int

	// PagePostfix is the index, within the same result slice, of the
	// fragment on the next page that continues this one, or -1
	PagePostfix int

	// Certainty is 1 for ordinary matches and lower for fragments of a
	// match split across a page boundary
	Certainty float64
}

// IsSplit reports whether the result is one half of a cross-page match
func (r FindResult) IsSplit() bool {
	return r.PagePrefix >= 0 || r.PagePostfix >= 0
}

// Bounds returns the union of the result rectangles
func (r FindResult) Bounds() Rect {
	return UnionAll(r.Rects)
}
