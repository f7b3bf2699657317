package toc

import "github.com/tsawler/glyphnav/model"

// Handle addresses an item in a Tree
type Handle int

// NoHandle marks an absent relation
const NoHandle Handle = -1

// Strategy records how a tree was built
type Strategy int

const (
	// StrategyNone means no table of contents could be built
	StrategyNone Strategy = iota

	// StrategyOutline means the tree was built from the embedded outline
	StrategyOutline

	// StrategySynthesized means the tree was synthesized from page text
	StrategySynthesized
)

// String returns a human-readable strategy name
func (s Strategy) String() string {
	switch s {
	case StrategyOutline:
		return "outline"
	case StrategySynthesized:
		return "synthesized"
	default:
		return "none"
	}
}

// Item is one node of the table of contents
type Item struct {
	Title string

	// Label, ID and Caption are decomposed from Title
	Label   Label
	ID      string
	Caption string

	// Depth is 0 for the head, 1 for the partitions
	Depth int

	// Page is the 0-based first page of the item
	Page int

	// Offset is the vertical position of the heading on its page in
	// physical space, valid when HasOffset is set
	Offset    float64
	HasOffset bool

	// Rects locate the heading text on its page
	Rects []model.Rect

	// Length is the number of pages the item spans. It is at least 1
	// except for empty partitions, and the lengths of an item's children
	// never sum to more than its own.
	Length int

	// Empty marks a synthetic partition without items
	Empty bool

	Parent   Handle
	Children []Handle
	Prev     Handle
	Next     Handle
}

// Tree is an arena of TOC items. Items[0] is the head.
type Tree struct {
	Items    []Item
	Strategy Strategy

	ids map[string]Handle
}

// Head is the handle of the synthetic depth-0 root
const Head Handle = 0

// newTree creates a tree holding only the head item
func newTree(pageCount int) *Tree {
	return &Tree{
		Items: []Item{{
			Title:  "Contents",
			Length: pageCount,
			Parent: NoHandle,
			Prev:   NoHandle,
			Next:   NoHandle,
		}},
		ids: make(map[string]Handle),
	}
}

// Item returns the item for a handle, or nil
func (t *Tree) Item(h Handle) *Item {
	if h < 0 || int(h) >= len(t.Items) {
		return nil
	}
	return &t.Items[h]
}

// Len returns the number of items including the head
func (t *Tree) Len() int {
	return len(t.Items)
}

// Depth returns the depth of the deepest item; 0 means no TOC
func (t *Tree) Depth() int {
	deepest := 0
	for _, it := range t.Items {
		if it.Depth > deepest {
			deepest = it.Depth
		}
	}
	return deepest
}

// add appends an item as the last child of parent and returns its handle
func (t *Tree) add(parent Handle, it Item) Handle {
	h := Handle(len(t.Items))
	p := &t.Items[parent]
	it.Parent = parent
	it.Depth = p.Depth + 1
	it.Prev = NoHandle
	it.Next = NoHandle
	if n := len(p.Children); n > 0 {
		last := p.Children[n-1]
		it.Prev = last
		t.Items[last].Next = h
	}
	t.Items = append(t.Items, it)
	t.Items[parent].Children = append(t.Items[parent].Children, h)

	if it.ID != "" {
		if _, ok := t.ids[it.ID]; !ok {
			t.ids[it.ID] = h
		}
	}
	return h
}

// Lookup returns the first item carrying an id
func (t *Tree) Lookup(id string) (Handle, bool) {
	h, ok := t.ids[id]
	return h, ok
}

// Walk visits items depth first in document order until fn returns false
func (t *Tree) Walk(fn func(h Handle, it *Item) bool) {
	var visit func(h Handle) bool
	visit = func(h Handle) bool {
		if !fn(h, &t.Items[h]) {
			return false
		}
		for _, c := range t.Items[h].Children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(Head)
}

// At returns the deepest non-empty item whose page range contains page
func (t *Tree) At(page int) Handle {
	h := Head
	for {
		next := NoHandle
		for _, c := range t.Items[h].Children {
			it := &t.Items[c]
			if !it.Empty && page >= it.Page && page < it.Page+it.Length {
				next = c
			}
		}
		if next == NoHandle {
			return h
		}
		h = next
	}
}
