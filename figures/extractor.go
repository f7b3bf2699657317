package figures

import (
	"sort"
	"strings"

	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
)

// Finder locates text on pages
type Finder interface {
	Find(query string, start, count int, opts find.Options) []model.FindResult
}

// Config holds configuration for figure extraction
type Config struct {
	// MinRegionSize is the smallest width and height, in mean line
	// heights, an image region must have to count (default: 1.0)
	MinRegionSize float64 `toml:"min_region_size" validate:"gte=0"`

	// MergeCoverage is the fraction of the union of two image regions
	// their combined areas must cover for them to merge (default: 0.9)
	MergeCoverage float64 `toml:"merge_coverage" validate:"gt=0,lte=1"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinRegionSize: 1.0,
		MergeCoverage: 0.9,
	}
}

// Extractor pairs image regions with captions and resolves in-text
// figure references. Results are stored on the page cache; running it
// again over the same pages replaces them.
type Extractor struct {
	src      model.Source
	cache    *pages.Cache
	finder   Finder
	config   Config
	logger   *log.Logger
	patterns *patterns

	// firstLabeled is the first page with a labeled caption, or -1
	firstLabeled int
}

// NewExtractor creates an extractor with default configuration
func NewExtractor(src model.Source, cache *pages.Cache, finder Finder) *Extractor {
	return NewExtractorWithConfig(src, cache, finder, DefaultConfig())
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(src model.Source, cache *pages.Cache, finder Finder, config Config) *Extractor {
	return &Extractor{
		src:          src,
		cache:        cache,
		finder:       finder,
		config:       config,
		logger:       &log.DefaultLogger,
		patterns:     newPatterns(),
		firstLabeled: -1,
	}
}

// WithLogger sets the diagnostic logger and returns the extractor
func (x *Extractor) WithLogger(logger *log.Logger) *Extractor {
	if logger != nil {
		x.logger = logger
	}
	return x
}

// Resolve extracts figures from every page starting at start and then
// resolves the references on those pages. References only resolve to
// figures on the same or a later page. References on earlier pages are
// pointed at the replacement figures.
func (x *Extractor) Resolve(start int) {
	if start < 0 {
		start = 0
	}
	n := x.cache.Len()
	for p := start; p < n; p++ {
		for _, f := range x.Extract(p) {
			f.ReferencedFrom = nil
		}
	}
	for p := start; p < n; p++ {
		x.References(p)
	}
	x.retarget(start)

	figures, refs, resolved := 0, 0, 0
	for p := start; p < n; p++ {
		meta := x.cache.Page(p)
		figures += len(meta.Figures)
		refs += len(meta.Referenced)
		for _, r := range meta.Referenced {
			if r.Resolved() {
				resolved++
			}
		}
	}
	x.logger.Debug().Int("start", start).Int("figures", figures).Int("references", refs).
		Int("resolved", resolved).Msg("figures resolved")
}

// Extract detects the figures of one page and stores them on the page
func (x *Extractor) Extract(p int) []*model.Figure {
	meta := x.cache.Page(p)
	if meta == nil {
		return nil
	}

	regions := x.mergeRegions(meta, x.filterRegions(meta, x.src.ImageRegions(p)))
	cands := x.candidates(p, meta.Text)

	var figs []*model.Figure
	if len(regions) > 0 && len(cands) > 0 {
		figs = x.pair(meta, regions, cands)
	}
	meta.Figures = figs
	return figs
}

// candidates filters the caption candidates of a page text. Once a
// labeled caption has been seen, unlabeled candidates that follow it in
// document order are ignored.
func (x *Extractor) candidates(p int, text string) []candidate {
	var out []candidate
	for _, c := range x.patterns.captions(text) {
		if c.label != "" {
			if x.firstLabeled < 0 || p < x.firstLabeled {
				x.firstLabeled = p
			}
		} else if x.firstLabeled >= 0 && p > x.firstLabeled {
			continue
		} else if p == x.firstLabeled && labeledSeen(out) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func labeledSeen(cands []candidate) bool {
	for _, c := range cands {
		if c.label != "" {
			return true
		}
	}
	return false
}

// filterRegions drops regions smaller than MinRegionSize line heights in
// either dimension
func (x *Extractor) filterRegions(meta *pages.PageMeta, regions []model.Rect) []model.Rect {
	minSize := meta.LineHeight * x.config.MinRegionSize
	var out []model.Rect
	for _, r := range regions {
		r = r.Normalize()
		if r.Width() < minSize || r.Height() < minSize {
			continue
		}
		out = append(out, r)
	}
	return out
}

// mergeRegions unions regions until no pair qualifies. Two regions merge
// when their combined area covers MergeCoverage of their union and no
// text line lies in the union without touching either of them.
func (x *Extractor) mergeRegions(meta *pages.PageMeta, regions []model.Rect) []model.Rect {
	merged := append([]model.Rect(nil), regions...)
	for changed := true; changed; {
		changed = false
	outer:
		for i := 0; i < len(merged); i++ {
			for j := i + 1; j < len(merged); j++ {
				a, b := merged[i], merged[j]
				u := a.Union(b)
				if a.Area()+b.Area() < x.config.MergeCoverage*u.Area() {
					continue
				}
				if textBetween(meta.Lines, u, a, b) {
					continue
				}
				merged[i] = u
				merged = append(merged[:j], merged[j+1:]...)
				changed = true
				break outer
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Top() != merged[j].Top() {
			return merged[i].Top() > merged[j].Top()
		}
		return merged[i].Left() < merged[j].Left()
	})
	return merged
}

// textBetween reports whether a text line overlaps u but neither a nor b
func textBetween(lines []model.Rect, u, a, b model.Rect) bool {
	for _, l := range lines {
		if overlaps(l, u) && !overlaps(l, a) && !overlaps(l, b) {
			return true
		}
	}
	return false
}

// located is one on-page occurrence of a caption candidate
type located struct {
	region    int
	candidate int
	caption   model.Caption
}

// pair locates every caption candidate on the page and assigns captions
// to regions by ascending caption-to-region-center distance. Each region
// and each candidate is claimed at most once.
func (x *Extractor) pair(meta *pages.PageMeta, regions []model.Rect, cands []candidate) []*model.Figure {
	var all []located
	perRegion := make([][]model.Caption, len(regions))
	for ci, c := range cands {
		for _, res := range x.finder.Find(c.line, meta.Index, 1, find.Options{}) {
			center := res.Bounds().Center()
			for ri, region := range regions {
				capt := model.Caption{
					Text:     c.line,
					Distance: center.Distance(region.Center()),
					Rects:    res.Rects,
				}
				all = append(all, located{region: ri, candidate: ci, caption: capt})
				perRegion[ri] = append(perRegion[ri], capt)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].caption.Distance < all[j].caption.Distance
	})

	figs := make([]*model.Figure, len(regions))
	claimed := make(map[int]bool)
	for _, l := range all {
		if figs[l.region] != nil || claimed[l.candidate] {
			continue
		}
		claimed[l.candidate] = true
		c := cands[l.candidate]
		figs[l.region] = &model.Figure{
			Label:   c.label,
			ID:      c.id,
			Complex: strings.ContainsAny(c.id, ".-"),
			Page:    meta.Index,
			Region:  regions[l.region],
			Caption: l.caption,
		}
	}

	var out []*model.Figure
	for ri, f := range figs {
		if f == nil {
			continue
		}
		sort.SliceStable(perRegion[ri], func(i, j int) bool {
			return perRegion[ri][i].Distance < perRegion[ri][j].Distance
		})
		f.Candidates = perRegion[ri]
		f.ReferencedFrom = x.previousReferrers(meta, f)
		out = append(out, f)
	}
	return out
}

// previousReferrers carries the referring pages of an earlier run's
// figure with the same key and region over to its replacement
func (x *Extractor) previousReferrers(meta *pages.PageMeta, f *model.Figure) []int {
	for _, old := range meta.Figures {
		if old.Key() == f.Key() && old.Region == f.Region {
			return old.ReferencedFrom
		}
	}
	return nil
}

// overlaps reports whether two rectangles share a positive area
func overlaps(a, b model.Rect) bool {
	w := minFloat64(a.Right(), b.Right()) - maxFloat64(a.Left(), b.Left())
	h := minFloat64(a.Top(), b.Top()) - maxFloat64(a.Bottom(), b.Bottom())
	return w > 0 && h > 0
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
