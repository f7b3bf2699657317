//go:build !ocr

// Package ocr recognizes text lines on rendered page images, giving
// scanned pages a searchable text layer.
//
// This build has no recognizer: New fails with ErrOCRNotEnabled and
// image-only pages stay without text. Build with the "ocr" tag to link
// Tesseract:
//
//	go build -tags ocr ./...
package ocr

import "errors"

// ErrOCRNotEnabled is returned by New in builds without the "ocr" tag
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is the recognizer of builds without OCR support; New never
// returns one
type Client struct{}

// New always fails with ErrOCRNotEnabled
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close does nothing. It is safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeLines fails with ErrOCRNotEnabled
func (c *Client) RecognizeLines(png []byte) ([]Line, error) {
	return nil, ErrOCRNotEnabled
}

// SetLanguage fails with ErrOCRNotEnabled
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
