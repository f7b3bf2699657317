//go:build ocr

// Package ocr recognizes text lines on rendered page images, giving
// scanned pages a searchable text layer.
//
// Recognition runs Tesseract through gosseract, so the Tesseract library
// and its language data must be installed (tesseract-ocr on Debian and
// Ubuntu, tesseract on Homebrew).
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes text lines with Tesseract. Close it when done.
type Client struct {
	client *gosseract.Client
}

// New creates a Tesseract client
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the Tesseract handle. It is safe on a nil client.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeLines recognizes an encoded page image (PNG, TIFF, JPEG) and
// returns one Line per non-blank text line, boxed in image pixels
func (c *Client) RecognizeLines(png []byte) ([]Line, error) {
	if err := c.client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize lines: %w", err)
	}

	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text, Box: b.Box, Confidence: b.Confidence})
	}
	return lines, nil
}

// SetLanguage selects the Tesseract language data, "+"-joined for several
// (e.g. "eng+deu")
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
