package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/model"
)

// ErrPageRange is returned when a page index is outside the document
var ErrPageRange = errors.New("page out of range")

// Config holds configuration for page rendering
type Config struct {
	// Binary is the pdftoppm executable (default: "pdftoppm")
	Binary string `toml:"binary"`

	// Resolution is the rendering resolution in DPI (default: 150)
	Resolution int `toml:"resolution" validate:"gt=0"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Binary:     "pdftoppm",
		Resolution: 150,
	}
}

// Poppler renders pages of a PDF file with pdftoppm
type Poppler struct {
	path      string
	pageCount int
	config    Config
	logger    *log.Logger
}

var _ model.Renderer = (*Poppler)(nil)

// NewPoppler creates a renderer for the PDF at path with default
// configuration. pageCount bounds the accepted page indices; 0 disables
// the check.
func NewPoppler(path string, pageCount int) *Poppler {
	return NewPopplerWithConfig(path, pageCount, DefaultConfig())
}

// NewPopplerWithConfig creates a renderer with custom configuration
func NewPopplerWithConfig(path string, pageCount int, config Config) *Poppler {
	if config.Binary == "" {
		config.Binary = "pdftoppm"
	}
	if config.Resolution <= 0 {
		config.Resolution = DefaultConfig().Resolution
	}
	return &Poppler{
		path:      path,
		pageCount: pageCount,
		config:    config,
		logger:    &log.DefaultLogger,
	}
}

// WithLogger sets the diagnostic logger and returns the renderer
func (p *Poppler) WithLogger(logger *log.Logger) *Poppler {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Resolution returns the rendering resolution in DPI
func (p *Poppler) Resolution() int {
	return p.config.Resolution
}

// Render rasterizes a 0-based page
func (p *Poppler) Render(ctx context.Context, page int) (image.Image, error) {
	if page < 0 || (p.pageCount > 0 && page >= p.pageCount) {
		return nil, fmt.Errorf("%w: %d", ErrPageRange, page)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	tmpDir, err := os.MkdirTemp("", "glyphnav-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	pageStr := strconv.Itoa(page + 1)
	cmd := exec.CommandContext(ctx, p.config.Binary,
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(p.config.Resolution),
		"-singlefile",
		p.path,
		prefix,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}
	p.logger.Debug().Int("page", page).Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).Msg("page rendered")
	return img, nil
}
