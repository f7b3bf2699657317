// Package find locates text on PDF pages and maps every occurrence to the
// glyph rectangles a viewer highlights.
//
// Page text is a set of visual lines, so a phrase that wraps, or a word
// that is hyphenated at a line end, does not appear verbatim. The
// [Engine] turns the query into a pattern tolerant to both, matches it
// against the page text, and then correlates each match with rectangles
// reported by the source's literal search:
//
//	engine := find.NewEngine(src, cache)
//	results := engine.Find("hyphenated word", 0, cache.Len(), find.Options{})
//
// # Multi-line Matches
//
// A match spanning several lines is split at its line breaks. Each token
// is searched on its own; the first token must close a line and every
// later token must open one. Tokens are chained from the top, each link
// taking the nearest candidate below within [Config.ChainReach] line
// heights.
//
// # Cross-page Matches
//
// With [Options.CrossPage] a query containing whitespace is also tried as
// a page-end fragment followed by a page-start fragment on the next page.
// The two halves are returned as separate results that point at each
// other through PagePrefix and PagePostfix.
package find
