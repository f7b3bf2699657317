// Package pages provides the per-page metadata cache every navigation
// component reads from.
//
// A [Cache] is built eagerly from a model.Source when a document is opened:
// figure detection and TOC synthesis need the whole document's text up
// front, so there is no lazy loading.
//
//	cache := pages.New(src)
//	meta := cache.Page(0)
//	fmt.Println(meta.LineHeight, len(meta.Lines))
//
// # Page Metadata
//
// Each [PageMeta] owns:
//
//   - Text - the page text, one visual line per "\n"-separated line
//   - Lines - glyph-line rectangles, top to bottom
//   - LineHeight - the mean line height, the unit of vertical closeness
//   - Width, Height - the physical page size
//   - cached results - links, figures, referenced figures, find results
//
// Everything except the selection cursor (Selected) and the hovered
// reference (Hovered) is immutable after construction. Both are mutated by
// the caller on a single goroutine; the cache does no locking.
package pages
