// Package reader provides the PDF-backed and in-memory implementations of
// model.Source.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Pages are extracted on first access and cached. Extraction reads the
// glyphs of a page with their positions and groups them into visual lines
// (see [LineConfig]); rows split at wide gaps become separate lines, so
// two-column layouts and dot-leader contents pages keep their columns
// apart. Image placements are found by interpreting the content stream's
// transformation matrices.
//
// # Document Information
//
// Beyond the model.Source methods the Reader provides:
//
//   - Version() - PDF header version (e.g., 1.7)
//   - PageLabel(i) - printed page labels from /PageLabels
//   - Links(i) - link annotations
//
// The outline is read with pdfcpu; labels, links and page content with
// ledongthuc/pdf.
//
// # Scanned Pages
//
// With [Config.OCR] set and a renderer configured, pages without a text
// layer are rendered and recognized with Tesseract (binaries built with
// the "ocr" tag). Each recognized line becomes one text line.
//
// # In-memory Documents
//
// [Memory] builds a source from [MemoryPage] descriptions with a fixed
// glyph advance, which makes geometry predictable in tests:
//
//	src := reader.NewMemory(
//	    reader.TextPage("Chapter 1 Introduction", "Body text."),
//	)
package reader
