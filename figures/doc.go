// Package figures builds a figure index and a figure cross-reference
// graph from page text and image placements.
//
// Captions are lines that start with an optional label and an id, such as
// "Fig. 2.1" or a bare "2.1". Image regions too small to be figures are
// dropped and fragments of one raster figure are merged. Every caption
// candidate is then located with the find engine and paired with the
// nearest unclaimed region.
//
// In-text mentions ("see Figure 3") need a label. They are resolved to a
// figure on the same or a later page with an equal label class; the page
// of each resolved mention is added to the figure's ReferencedFrom list.
//
//	x := figures.NewExtractor(src, cache, engine)
//	x.Resolve(0)
//	for _, f := range cache.Page(4).Figures {
//		fmt.Println(f.Key(), f.ReferencedFrom)
//	}
package figures
