package model

// Caption is a caption candidate for an image region
type Caption struct {
	Text string

	// Distance is the Euclidean distance from the caption center to the
	// image region center, in points
	Distance float64

	// Rects locate the caption text on the page
	Rects []Rect
}

// Figure is an image region paired with its caption
type Figure struct {
	// Label is the caption label as printed (e.g. "Fig."), possibly empty
	Label string

	// ID is the figure number (e.g. "2.1")
	ID string

	// Complex is true when the id has more than one component
	Complex bool

	Page   int
	Region Rect

	// Candidates are all caption candidates located for the region
	Candidates []Caption

	// Caption is the canonical caption chosen from Candidates
	Caption Caption

	// ReferencedFrom lists the pages whose text refers to this figure,
	// ascending and without duplicates
	ReferencedFrom []int
}

// Key returns the identifier used for document-wide figure lookup
func (f *Figure) Key() string {
	return f.Label + " " + f.ID
}

// ReferencedFigure is an in-text mention of a figure
type ReferencedFigure struct {
	// Label as printed in the text (e.g. "Figure")
	Label string
	ID    string
	Page  int

	// Text is the mention as it appears in the text, breaks collapsed
	Text string

	// Rects locate the mention on the page for highlighting
	Rects []Rect

	// Target is the resolved figure, or nil when unresolved
	Target *Figure
}

// Resolved reports whether the mention was matched to a figure
func (r *ReferencedFigure) Resolved() bool {
	return r.Target != nil
}
