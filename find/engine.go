package find

import (
	"regexp"
	"sort"
	"strings"

	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
)

// Options selects optional find behavior
type Options struct {
	// CrossPage also finds occurrences split between the end of one page
	// and the start of the next (only for queries containing whitespace)
	CrossPage bool

	// WholeWords anchors the query at word boundaries
	WholeWords bool
}

// Config holds the empirical constants of the find engine
type Config struct {
	// GroupTolerance is the vertical-center distance, as a fraction of the
	// mean line height, within which candidate rectangles share a line
	// (default: 0.05)
	GroupTolerance float64 `toml:"group_tolerance" validate:"gte=0"`

	// ChainReach is the maximum vertical distance, in mean line heights,
	// between consecutive lines of a multi-line match (default: 1.9)
	ChainReach float64 `toml:"chain_reach" validate:"gte=1"`

	// RightmostSlack is how far, in mean line heights, the first line of a
	// page-end fragment may stop short of its text line's right edge
	// (default: 0.5)
	RightmostSlack float64 `toml:"rightmost_slack" validate:"gte=0"`

	// EdgeLinePenalty is the certainty lost by a cross-page fragment for
	// each text line between it and the page edge it abuts (default: 0.25)
	EdgeLinePenalty float64 `toml:"edge_line_penalty" validate:"gte=0"`

	// MinCertainty is the floor of cross-page fragment certainty
	// (default: 0.05)
	MinCertainty float64 `toml:"min_certainty" validate:"gte=0,lte=1"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		GroupTolerance:  0.05,
		ChainReach:      1.9,
		RightmostSlack:  0.5,
		EdgeLinePenalty: 0.25,
		MinCertainty:    0.05,
	}
}

// searchMode distinguishes ordinary searches from the two halves of a
// cross-page search
type searchMode int

const (
	modeNormal searchMode = iota
	modePrefix
	modePostfix
)

// Engine correlates text matches with glyph rectangles
type Engine struct {
	src    model.Source
	cache  *pages.Cache
	config Config
	logger *log.Logger
}

// NewEngine creates a find engine with default configuration
func NewEngine(src model.Source, cache *pages.Cache) *Engine {
	return NewEngineWithConfig(src, cache, DefaultConfig())
}

// NewEngineWithConfig creates a find engine with custom configuration
func NewEngineWithConfig(src model.Source, cache *pages.Cache, config Config) *Engine {
	return &Engine{
		src:    src,
		cache:  cache,
		config: config,
		logger: &log.DefaultLogger,
	}
}

// WithLogger sets the diagnostic logger and returns the engine
func (e *Engine) WithLogger(logger *log.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// hit is a result under construction; cross-page halves point at each
// other until the final slice is indexed
type hit struct {
	page    int
	text    string
	rects   []model.Rect
	prefix  *hit
	postfix *hit
}

func (h *hit) top() float64 {
	if len(h.rects) == 0 {
		return 0
	}
	return h.rects[0].Top()
}

func (h *hit) left() float64 {
	if len(h.rects) == 0 {
		return 0
	}
	return h.rects[0].Left()
}

// Find searches pages [start, start+count) for query and returns results
// sorted by page, then top to bottom, then left to right. No match is an
// empty result; a pattern that fails to compile is logged and also yields
// no results.
func (e *Engine) Find(query string, start, count int, opts Options) []model.FindResult {
	q, hasSpace := NormalizeQuery(query)
	if q == "" {
		return nil
	}
	start, end := e.clamp(start, count)
	if start >= end {
		return nil
	}

	re, ok := e.compile(Pattern(q, opts.WholeWords))
	if !ok {
		return nil
	}

	perPage := make(map[int][]*hit)
	for p := start; p < end; p++ {
		perPage[p] = e.findOnPage(p, re, modeNormal, opts.WholeWords)
	}

	if opts.CrossPage && hasSpace {
		e.crossPage(q, start, end, opts.WholeWords, perPage)
	}

	var all []*hit
	for p := start; p < end; p++ {
		all = append(all, perPage[p]...)
	}
	return e.finish(all)
}

// clamp bounds a page window to the document
func (e *Engine) clamp(start, count int) (int, int) {
	if start < 0 {
		start = 0
	}
	end := start + count
	if count < 0 || end > e.cache.Len() {
		end = e.cache.Len()
	}
	return start, end
}

// compile compiles a dynamically built pattern, reporting failures
func (e *Engine) compile(pattern string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		e.logger.Warn().Str("pattern", pattern).Err(err).Msg("find: pattern does not compile")
		return nil, false
	}
	return re, true
}

// findOnPage matches re against a page and resolves every match to
// rectangles. Single-token matches are resolved first so multi-line
// resolution can skip rectangles they already claim.
func (e *Engine) findOnPage(p int, re *regexp.Regexp, mode searchMode, wholeWords bool) []*hit {
	meta := e.cache.Page(p)
	if meta == nil || meta.Text == "" {
		return nil
	}

	var singles []string
	var multis []occurrence
	seen := make(map[string]bool)
	for _, loc := range re.FindAllStringIndex(meta.Text, -1) {
		occ := newOccurrence(meta.Text, loc[0], loc[1])
		if len(occ.tokens) == 0 {
			continue
		}
		if len(occ.tokens) > 1 {
			multis = append(multis, occ)
			continue
		}
		key := strings.ToLower(occ.tokens[0])
		if !seen[key] {
			seen[key] = true
			singles = append(singles, occ.tokens[0])
		}
	}

	var hits []*hit
	var claimed []model.Rect
	for _, tok := range singles {
		for _, r := range e.src.Search(p, tok, wholeWords) {
			hits = append(hits, &hit{page: p, text: tok, rects: []model.Rect{r.Normalize()}})
			claimed = append(claimed, r.Normalize())
		}
	}

	if textAligned(meta) {
		for _, occ := range multis {
			if chain := e.resolveOccurrence(meta, occ, claimed, mode); chain != nil {
				hits = append(hits, &hit{page: p, text: occ.text, rects: chain})
				claimed = append(claimed, chain...)
			}
		}
		return hits
	}

	// without aligned lines, identical matches are resolved together and
	// yield no more chains than they have occurrences
	var order []string
	groups := make(map[string][]occurrence)
	for _, occ := range multis {
		key := strings.ToLower(strings.Join(occ.tokens, "\n"))
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], occ)
	}
	for _, key := range order {
		occs := groups[key]
		for _, chain := range e.resolveMulti(meta, occs[0].tokens, claimed, mode, len(occs)) {
			hits = append(hits, &hit{page: p, text: occs[0].text, rects: chain})
			claimed = append(claimed, chain...)
		}
	}
	return hits
}

// finish sorts hits, converts them to results and indexes page links
func (e *Engine) finish(all []*hit) []model.FindResult {
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.page != b.page {
			return a.page < b.page
		}
		if a.top() != b.top() {
			return a.top() > b.top()
		}
		return a.left() < b.left()
	})

	index := make(map[*hit]int, len(all))
	for i, h := range all {
		index[h] = i
	}

	results := make([]model.FindResult, len(all))
	for i, h := range all {
		results[i] = model.FindResult{
			Page:        h.page,
			Text:        h.text,
			Rects:       h.rects,
			PagePrefix:  -1,
			PagePostfix: -1,
			Certainty:   e.certainty(h),
		}
		if h.prefix != nil {
			results[i].PagePrefix = index[h.prefix]
		}
		if h.postfix != nil {
			results[i].PagePostfix = index[h.postfix]
		}
	}
	return results
}

// certainty is 1 for ordinary results. A cross-page fragment loses
// EdgeLinePenalty for every text line between it and the page edge it
// abuts: the bottom edge for a page-end fragment, the top for a
// page-start fragment.
func (e *Engine) certainty(h *hit) float64 {
	if h.prefix == nil && h.postfix == nil {
		return 1
	}
	meta := e.cache.Page(h.page)
	if meta == nil || len(h.rects) == 0 {
		return e.config.MinCertainty
	}

	var lines int
	if h.postfix != nil {
		lines = meta.LinesBelow(h.rects[len(h.rects)-1].Center().Y)
	} else {
		lines = meta.LinesAbove(h.rects[0].Center().Y)
	}

	c := 1 - e.config.EdgeLinePenalty*float64(lines)
	if c < e.config.MinCertainty {
		c = e.config.MinCertainty
	}
	if c > 1 {
		c = 1
	}
	return c
}
