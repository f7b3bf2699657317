package ocr

import "image"

// Line is one recognized text line
type Line struct {
	Text string

	// Box is the line's bounding box in image pixels (Y grows downwards)
	Box image.Rectangle

	// Confidence is Tesseract's confidence in percent
	Confidence float64
}
