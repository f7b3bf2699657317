// Package glyphnav is the navigation core of a PDF reader: find with
// hyphenation and line-wrap tolerance, figure and reference resolution,
// and a hierarchical table of contents.
//
// Basic usage:
//
//	doc, err := glyphnav.Open("paper.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//
//	for _, r := range doc.Find("hyphenated word", 0, -1, find.Options{CrossPage: true}) {
//	    fmt.Println(r.Page, r.Text, len(r.Rects))
//	}
//
// Opening a document is synchronous: the page cache is built, figures are
// resolved from the first page and the table of contents is built before
// Open returns. A Document is not safe for concurrent use.
//
// For advanced use cases the component packages (find, figures, toc) can
// be wired to any model.Source directly.
package glyphnav

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/figures"
	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
	"github.com/tsawler/glyphnav/reader"
	"github.com/tsawler/glyphnav/render"
	"github.com/tsawler/glyphnav/toc"
)

var (
	// ErrClosed is returned when a closed document is used
	ErrClosed = errors.New("document closed")

	// ErrNoRenderer is returned when a figure image is requested without
	// any renderer available
	ErrNoRenderer = errors.New("no renderer available")
)

// Document is an opened document with its navigation state
type Document struct {
	// ID identifies this document session
	ID string

	// Path is the file the document was opened from, empty for Load
	Path string

	src      model.Source
	cache    *pages.Cache
	engine   *find.Engine
	figures  *figures.Extractor
	builder  *toc.Builder
	renderer model.Renderer
	logger   *log.Logger

	tree    *toc.Tree
	results []model.FindResult
	closed  bool
}

// Open opens a PDF file and imports it
func Open(path string, opts ...Option) (*Document, error) {
	o := collectOptions(opts)

	renderer := o.renderer
	if renderer == nil {
		renderer = render.NewPopplerWithConfig(path, 0, o.config.Render).WithLogger(o.logger)
	}

	rc := o.config.Reader
	rc.Logger = o.logger
	if rc.OCR && rc.Renderer == nil {
		rc.Renderer = renderer
	}

	r, err := reader.OpenWithConfig(path, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	o.renderer = renderer
	doc := load(r, o)
	doc.Path = path
	return doc, nil
}

// Load imports a document from any source. The document takes ownership
// of the source and closes it on Close.
func Load(src model.Source, opts ...Option) (*Document, error) {
	if src == nil {
		return nil, errors.New("nil source")
	}
	return load(src, collectOptions(opts)), nil
}

func load(src model.Source, o options) *Document {
	cache := pages.New(src)
	engine := find.NewEngineWithConfig(src, cache, o.config.Find).WithLogger(o.logger)

	doc := &Document{
		ID:       uuid.NewString(),
		src:      src,
		cache:    cache,
		engine:   engine,
		figures:  figures.NewExtractorWithConfig(src, cache, engine, o.config.Figures).WithLogger(o.logger),
		builder:  toc.NewBuilderWithConfig(src, cache, engine, o.config.TOC).WithLogger(o.logger),
		renderer: o.renderer,
		logger:   o.logger,
	}

	if o.resolve {
		doc.figures.Resolve(0)
	}
	if o.buildTOC {
		doc.tree = doc.builder.Build()
	}
	doc.logger.Debug().Str("id", doc.ID).Int("pages", cache.Len()).Msg("document imported")
	return doc
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.cache.Len()
}

// Page returns the metadata of a page, or nil when out of range
func (d *Document) Page(i int) *pages.PageMeta {
	return d.cache.Page(i)
}

// Find searches count pages from start (count < 0 means to the end) and
// makes the results the document's current results. Each page's Finds
// lists the indices of the results starting on it.
func (d *Document) Find(query string, start, count int, opts find.Options) []model.FindResult {
	if d.closed {
		return nil
	}
	d.results = d.engine.Find(query, start, count, opts)
	d.cache.SetFinds(d.results)
	return d.results
}

// Results returns the current find results
func (d *Document) Results() []model.FindResult {
	return d.results
}

// ClearFinds drops the current find results
func (d *Document) ClearFinds() {
	d.results = nil
	d.cache.ClearFinds()
}

// Select moves the find cursor of a page to its i-th result and returns
// it. An index out of range clears the cursor.
func (d *Document) Select(page, i int) (model.FindResult, bool) {
	meta := d.cache.Page(page)
	if meta == nil {
		return model.FindResult{}, false
	}
	if i < 0 || i >= len(meta.Finds) {
		meta.Selected = -1
		return model.FindResult{}, false
	}
	meta.Selected = i
	return d.results[meta.Finds[i]], true
}

// ResolveFigures extracts figures from start to the end of the document
// and resolves the figure references on those pages. Running it again
// over the same pages gives the same result.
func (d *Document) ResolveFigures(start int) {
	if d.closed {
		return
	}
	d.figures.Resolve(start)
}

// Figures returns the figures of every page in page order
func (d *Document) Figures() []*model.Figure {
	var out []*model.Figure
	for _, p := range d.cache.Pages() {
		out = append(out, p.Figures...)
	}
	return out
}

// ReferenceAt returns the index of the figure reference on a page whose
// rectangles contain pt, or -1
func (d *Document) ReferenceAt(page int, pt model.Point) int {
	meta := d.cache.Page(page)
	if meta == nil {
		return -1
	}
	for i, ref := range meta.Referenced {
		for _, r := range ref.Rects {
			if r.Contains(pt) {
				return i
			}
		}
	}
	return -1
}

// Hover marks the i-th figure reference of a page as hovered and returns
// it. An index out of range clears the mark.
func (d *Document) Hover(page, i int) (*model.ReferencedFigure, bool) {
	meta := d.cache.Page(page)
	if meta == nil {
		return nil, false
	}
	if i < 0 || i >= len(meta.Referenced) {
		meta.Hovered = -1
		return nil, false
	}
	meta.Hovered = i
	return meta.Referenced[i], true
}

// BuildTOC rebuilds the table of contents
func (d *Document) BuildTOC() *toc.Tree {
	if d.closed {
		return d.tree
	}
	d.tree = d.builder.Build()
	return d.tree
}

// TOC returns the table of contents, building it on first use
func (d *Document) TOC() *toc.Tree {
	if d.tree == nil {
		return d.BuildTOC()
	}
	return d.tree
}

// Location is what a page holds for navigation
type Location struct {
	// Figures are the figures whose image is on the page
	Figures []*model.Figure

	// Referenced are the figure references made in the page text
	Referenced []*model.ReferencedFigure
}

// Locate returns the figures and figure references of a page. A page out
// of range has an empty location.
func (d *Document) Locate(page int) Location {
	meta := d.cache.Page(page)
	if meta == nil {
		return Location{}
	}
	return Location{Figures: meta.Figures, Referenced: meta.Referenced}
}

// Section returns the deepest table of contents item containing a page
func (d *Document) Section(page int) (toc.Handle, *toc.Item) {
	tree := d.TOC()
	if tree == nil {
		return toc.NoHandle, nil
	}
	h := tree.At(page)
	return h, tree.Item(h)
}

// FigureImage renders the page of a figure and crops its region, scaled
// to width pixels (0 keeps the rendered size). A nil renderer uses the
// document's renderer.
func (d *Document) FigureImage(ctx context.Context, fig *model.Figure, renderer model.Renderer, width int) (image.Image, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if fig == nil {
		return nil, errors.New("nil figure")
	}
	if renderer == nil {
		renderer = d.renderer
	}
	if renderer == nil {
		return nil, ErrNoRenderer
	}
	meta := d.cache.Page(fig.Page)
	if meta == nil {
		return nil, fmt.Errorf("figure page %d out of range", fig.Page)
	}

	img, err := renderer.Render(ctx, fig.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", fig.Page, err)
	}
	out, err := render.Crop(img, fig.Region, render.MappingFor(img, meta.Width, meta.Height), width)
	if err != nil {
		return nil, fmt.Errorf("failed to crop figure %s: %w", fig.Key(), err)
	}
	return out, nil
}

// Close releases the source. Further calls return ErrClosed.
func (d *Document) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	return d.src.Close()
}
