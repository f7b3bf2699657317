package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	pdf "github.com/ledongthuc/pdf"
	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/model"
)

// ErrNotPDF is returned when a file does not start with a PDF header
var ErrNotPDF = errors.New("not a PDF file")

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

var headerPattern = regexp.MustCompile(`^%PDF-(\d+)\.(\d+)`)

// Config holds configuration for the PDF source
type Config struct {
	Lines LineConfig `toml:"lines"`

	// OCR enables text recognition for pages without a text layer. It
	// needs a Renderer and a binary built with the "ocr" tag.
	OCR bool `toml:"ocr"`

	// OCRLanguage is the Tesseract language string (default: "eng")
	OCRLanguage string `toml:"ocr_language"`

	// Renderer rasterizes pages for OCR
	Renderer model.Renderer `toml:"-" validate:"-"`

	// Logger receives extraction diagnostics
	Logger *log.Logger `toml:"-" validate:"-"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Lines:       DefaultLineConfig(),
		OCRLanguage: "eng",
	}
}

// Reader is a Source backed by a PDF file. Page state is extracted on
// first access and cached for the lifetime of the Reader.
type Reader struct {
	file     *os.File
	pdf      *pdf.Reader
	path     string
	version  PDFVersion
	config   Config
	logger   *log.Logger
	pages    map[int]*glyphPage
	labels   []string
	outline  []model.OutlineEntry
	numPages int
}

// Ensure Reader implements the collaborator interfaces
var (
	_ model.Source      = (*Reader)(nil)
	_ model.LinkSource  = (*Reader)(nil)
	_ model.PageLabeler = (*Reader)(nil)
)

// Open opens a PDF file with default configuration
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a PDF file with custom configuration
func OpenWithConfig(filename string, config Config) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	version, err := parseHeader(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	pr, err := pdf.NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = &log.DefaultLogger
	}

	r := &Reader{
		file:     file,
		pdf:      pr,
		path:     filename,
		version:  version,
		config:   config,
		logger:   logger,
		pages:    make(map[int]*glyphPage),
		numPages: pr.NumPage(),
	}
	r.labels = readPageLabels(pr, r.numPages)
	r.outline = r.readOutline()

	return r, nil
}

// parseHeader reads the %PDF-x.y header
func parseHeader(rs io.ReadSeeker) (PDFVersion, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return PDFVersion{}, fmt.Errorf("failed to seek to start: %w", err)
	}

	header := make([]byte, 16)
	n, err := io.ReadFull(rs, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return PDFVersion{}, fmt.Errorf("failed to read header: %w", err)
	}

	m := headerPattern.FindSubmatch(header[:n])
	if m == nil {
		return PDFVersion{}, ErrNotPDF
	}

	major, _ := strconv.Atoi(string(m[1]))
	minor, _ := strconv.Atoi(string(m[2]))
	return PDFVersion{Major: major, Minor: minor}, nil
}

// Version returns the PDF header version
func (r *Reader) Version() PDFVersion {
	return r.version
}

// Close closes the PDF file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages
func (r *Reader) PageCount() int {
	return r.numPages
}

// PageSize returns the media box size of a page
func (r *Reader) PageSize(page int) (float64, float64) {
	p := r.page(page)
	return p.width, p.height
}

// PageText returns the text of a page, one line per visual line
func (r *Reader) PageText(page int) string {
	return r.page(page).text()
}

// LineRects returns the visual line rectangles of a page
func (r *Reader) LineRects(page int) []model.Rect {
	return r.page(page).lineRects()
}

// Search finds literal occurrences of needle on a page
func (r *Reader) Search(page int, needle string, wholeWords bool) []model.Rect {
	return r.page(page).search(needle, wholeWords)
}

// ImageRegions returns the placement rectangles of images on a page
func (r *Reader) ImageRegions(page int) []model.Rect {
	return r.page(page).images
}

// Links returns the link annotations of a page
func (r *Reader) Links(page int) []model.Link {
	return r.page(page).links
}

// Outline returns the document bookmarks, or nil
func (r *Reader) Outline() []model.OutlineEntry {
	return r.outline
}

// PageLabel returns the printed page label from /PageLabels
func (r *Reader) PageLabel(page int) (string, bool) {
	if r.labels == nil || page < 0 || page >= len(r.labels) {
		return "", false
	}
	return r.labels[page], true
}

// page returns the cached page state, extracting it on first use
func (r *Reader) page(i int) *glyphPage {
	if p, ok := r.pages[i]; ok {
		return p
	}
	if i < 0 || i >= r.numPages {
		return &glyphPage{}
	}

	p, err := r.extractPage(i)
	if err != nil {
		r.logger.Warn().Int("page", i).Err(err).Msg("page extraction failed")
		p = &glyphPage{}
	}
	if len(p.lines) == 0 && r.config.OCR {
		if err := r.recognizePage(i, p); err != nil {
			r.logger.Warn().Int("page", i).Err(err).Msg("page recognition failed")
		}
	}
	r.pages[i] = p
	return p
}

// extractPage reads glyphs, images, links and the media box of a page.
// The PDF library panics on malformed content streams; that is turned
// into an error for the page.
func (r *Reader) extractPage(i int) (gp *glyphPage, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed page content: %v", rec)
		}
	}()

	p := r.pdf.Page(i + 1)
	gp = &glyphPage{width: DefaultPageWidth, height: DefaultPageHeight}
	if p.V.IsNull() {
		return gp, nil
	}

	if box := inheritedKey(p.V, "MediaBox"); box.Len() == 4 {
		gp.width = absFloat64(box.Index(2).Float64() - box.Index(0).Float64())
		gp.height = absFloat64(box.Index(3).Float64() - box.Index(1).Float64())
	}

	content := p.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
		})
	}
	gp.lines = groupLines(glyphs, r.config.Lines)

	placer := &imagePlacer{}
	placer.place(p.V.Key("Contents"), p.Resources(), model.Identity(), 0)
	gp.images = placer.regions

	gp.links = readLinks(p.V)
	return gp, nil
}

// inheritedKey looks a page attribute up the page tree
func inheritedKey(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if val := v.Key(key); !val.IsNull() {
			return val
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// readLinks reads URI link annotations. Internal destinations are reported
// with Page -1 since the PDF library does not expose object identity.
func readLinks(page pdf.Value) []model.Link {
	annots := page.Key("Annots")
	var links []model.Link
	for i := 0; i < annots.Len(); i++ {
		a := annots.Index(i)
		if a.Key("Subtype").Name() != "Link" {
			continue
		}
		rect := a.Key("Rect")
		if rect.Len() != 4 {
			continue
		}
		link := model.Link{
			Rect: model.Rect{
				X1: rect.Index(0).Float64(),
				Y1: rect.Index(1).Float64(),
				X2: rect.Index(2).Float64(),
				Y2: rect.Index(3).Float64(),
			}.Normalize(),
			Page: -1,
		}
		if action := a.Key("A"); action.Key("S").Name() == "URI" {
			link.URI = action.Key("URI").RawString()
		}
		links = append(links, link)
	}
	return links
}
