package glyphnav

import (
	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/config"
	"github.com/tsawler/glyphnav/model"
)

// Option configures a Document at Open or Load time
type Option func(*options)

// options holds the settings collected from Option values
type options struct {
	config   *config.Config
	logger   *log.Logger
	renderer model.Renderer

	// import-time passes
	resolve  bool
	buildTOC bool

	// ocr is set by WithOCR and applied over the final configuration
	ocr         bool
	ocrLanguage string
}

// defaultOptions returns the default document options
func defaultOptions() options {
	return options{
		config:   config.Default(),
		logger:   &log.DefaultLogger,
		resolve:  true,
		buildTOC: true,
	}
}

func collectOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.ocr {
		o.config.Reader.OCR = true
		if o.ocrLanguage != "" {
			o.config.Reader.OCRLanguage = o.ocrLanguage
		}
	}
	return o
}

// WithConfig sets the component configuration. The configuration is
// copied.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			c := *cfg
			o.config = &c
		}
	}
}

// WithLogger sets the diagnostic logger shared by every component
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRenderer sets the page renderer used for OCR and figure images.
// Documents opened from a file default to pdftoppm.
func WithRenderer(r model.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithOCR enables text recognition for pages without a text layer. It
// holds regardless of its position relative to WithConfig; an empty
// language keeps the configured one.
func WithOCR(language string) Option {
	return func(o *options) {
		o.ocr = true
		o.ocrLanguage = language
	}
}

// SkipImport disables figure resolution and TOC building at import. Call
// ResolveFigures and BuildTOC when needed.
func SkipImport() Option {
	return func(o *options) {
		o.resolve = false
		o.buildTOC = false
	}
}
