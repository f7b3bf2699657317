package toc

import "github.com/tsawler/glyphnav/model"

// fromOutline converts embedded bookmarks into nodes
func (b *Builder) fromOutline(entries []model.OutlineEntry) []*node {
	var out []*node
	for _, e := range entries {
		n := newNode(e.Title, b.clampPage(e.Page))
		n.offset = e.Offset
		n.hasOffset = e.HasOffset
		n.children = b.fromOutline(e.Children)
		out = append(out, n)
	}
	return out
}
