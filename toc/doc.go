// Package toc builds a hierarchical table of contents for a document.
//
// Two strategies are tried in order. An embedded outline is converted
// directly. Without one, the first pages of the document are scanned for
// contents pages, whose lines are decomposed into titles and printed page
// numbers:
//
//	builder := toc.NewBuilder(src, cache, engine)
//	tree := builder.Build()
//	tree.Walk(func(h toc.Handle, it *toc.Item) bool {
//		fmt.Println(strings.Repeat("  ", it.Depth), it.Title, it.Page)
//		return true
//	})
//
// # Tree Shape
//
// The tree is an arena of [Item] values addressed by [Handle]. The head
// covers the whole document and always has three children: Initium (front
// matter), Main Contents and Finis (back matter). A partition without
// entries is marked Empty and has length 0.
//
// Every other item spans at least one page, and the lengths of an item's
// children never add up to more than its own.
//
// # Labels
//
// Titles are parsed into a structural label (Part, Chapter, Section,
// Subsection), an id ("3", "2.1", "IV", "B", or a number word) and a
// caption. Items without a printed label inherit one from their depth in
// the main contents.
package toc
