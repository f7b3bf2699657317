package toc

import (
	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
)

// Titles of the synthetic partitions under the head
const (
	InitiumTitle = "Initium"
	MainTitle    = "Main Contents"
	FinisTitle   = "Finis"
)

// Finder locates text on pages
type Finder interface {
	Find(query string, start, count int, opts find.Options) []model.FindResult
}

// Config holds configuration for TOC synthesis from page text
type Config struct {
	// WindowFraction is the share of the document scanned for contents
	// pages (default: 0.05)
	WindowFraction float64 `toml:"window_fraction" validate:"gt=0,lte=1"`

	// MinWindow is the minimum number of pages scanned (default: 18)
	MinWindow int `toml:"min_window" validate:"min=1"`

	// PageScore is the fraction of lines ending in a page number a page
	// needs to join a contents run (default: 0.7)
	PageScore float64 `toml:"page_score" validate:"gte=0,lte=1"`

	// ScoreWeight weighs run score against label density when ranking
	// runs; density gets the remainder (default: 0.6)
	ScoreWeight float64 `toml:"score_weight" validate:"gte=0,lte=1"`

	// AcceptRatio is the fraction of a run's lines that must decompose
	// into entries for the run to be used (default: 0.5)
	AcceptRatio float64 `toml:"accept_ratio" validate:"gte=0,lte=1"`

	// RowTolerance is the vertical-center distance, in mean line heights,
	// within which scattered fragments share a row (default: 0.25)
	RowTolerance float64 `toml:"row_tolerance" validate:"gt=0"`

	// CalibrationEntries is how many leading entries vote on the offset
	// between printed and physical page numbers (default: 5)
	CalibrationEntries int `toml:"calibration_entries" validate:"gte=0"`

	// MaxShift bounds the printed-to-physical page offset (default: 40)
	MaxShift int `toml:"max_shift" validate:"gte=0"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		WindowFraction:     0.05,
		MinWindow:          18,
		PageScore:          0.7,
		ScoreWeight:        0.6,
		AcceptRatio:        0.5,
		RowTolerance:       0.25,
		CalibrationEntries: 5,
		MaxShift:           40,
	}
}

// Builder builds a table of contents for a document
type Builder struct {
	src    model.Source
	cache  *pages.Cache
	finder Finder
	config Config
	logger *log.Logger
}

// NewBuilder creates a builder with default configuration
func NewBuilder(src model.Source, cache *pages.Cache, finder Finder) *Builder {
	return NewBuilderWithConfig(src, cache, finder, DefaultConfig())
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(src model.Source, cache *pages.Cache, finder Finder, config Config) *Builder {
	return &Builder{
		src:    src,
		cache:  cache,
		finder: finder,
		config: config,
		logger: &log.DefaultLogger,
	}
}

// WithLogger sets the diagnostic logger and returns the builder
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build returns the table of contents. An embedded outline is used when
// present; otherwise contents pages are looked for in the page text. When
// neither yields entries the tree holds only the head.
func (b *Builder) Build() *Tree {
	t := newTree(b.cache.Len())

	var top []*node
	if outline := b.src.Outline(); len(outline) > 0 {
		top = b.fromOutline(outline)
		t.Strategy = StrategyOutline
	} else if synth, ok := b.synthesize(); ok {
		top = synth
		t.Strategy = StrategySynthesized
	}
	if len(top) == 0 {
		t.Strategy = StrategyNone
		b.logger.Info().Int("pages", b.cache.Len()).Msg("no table of contents found")
		return t
	}

	parts := b.partition(top)
	total := 0
	for _, p := range parts {
		for _, c := range p.children {
			b.locate(c)
		}
		total += p.grow()
	}
	if total > t.Items[Head].Length {
		t.Items[Head].Length = total
	}
	for _, p := range parts {
		emit(t, Head, p)
	}

	b.logger.Debug().Str("strategy", t.Strategy.String()).Int("items", t.Len()).
		Int("depth", t.Depth()).Msg("table of contents built")
	return t
}

// node is a TOC entry under construction
type node struct {
	title     string
	heading   heading
	label     Label
	page      int
	offset    float64
	hasOffset bool
	rects     []model.Rect
	length    int
	empty     bool
	children  []*node
}

func newNode(title string, page int) *node {
	h := parseHeading(title)
	return &node{title: title, heading: h, label: h.label, page: page}
}

// assignLengths gives each node the pages up to its next sibling, bounded
// by [start, end), and at least one. A node placed before start counts
// its pages from start.
func assignLengths(nodes []*node, start, end int) {
	for i, n := range nodes {
		next := end
		if i+1 < len(nodes) && nodes[i+1].page < end {
			next = nodes[i+1].page
		}
		from := maxInt(n.page, start)
		n.length = next - from
		if n.length < 1 {
			n.length = 1
		}
		assignLengths(n.children, from, from+n.length)
	}
}

// grow raises lengths bottom-up so children never outgrow their parent
// and returns the node's length
func (n *node) grow() int {
	sum := 0
	for _, c := range n.children {
		sum += c.grow()
	}
	if sum > n.length {
		n.length = sum
	}
	return n.length
}

// locate finds the heading of a node on its page, trying the full title
// and then the caption without label and id
func (b *Builder) locate(n *node) {
	for _, q := range []string{n.title, n.heading.caption} {
		if q == "" {
			continue
		}
		res := b.finder.Find(q, n.page, 1, find.Options{})
		if len(res) == 0 {
			continue
		}
		n.rects = res[0].Rects
		if !n.hasOffset {
			n.offset = res[0].Bounds().Top()
			n.hasOffset = true
		}
		break
	}
	for _, c := range n.children {
		b.locate(c)
	}
}

// emit copies a node subtree into the arena
func emit(t *Tree, parent Handle, n *node) {
	h := t.add(parent, Item{
		Title:     n.title,
		Label:     n.label,
		ID:        n.heading.id,
		Caption:   n.heading.caption,
		Page:      n.page,
		Offset:    n.offset,
		HasOffset: n.hasOffset,
		Rects:     n.rects,
		Length:    n.length,
		Empty:     n.empty,
	})
	for _, c := range n.children {
		emit(t, h, c)
	}
}

func (b *Builder) clampPage(p int) int {
	if p >= b.cache.Len() {
		p = b.cache.Len() - 1
	}
	if p < 0 {
		p = 0
	}
	return p
}
