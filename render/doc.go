// Package render rasterizes PDF pages and cuts figure regions out of the
// rendered bitmaps.
//
// [Poppler] shells out to pdftoppm from poppler-utils, one page per call.
// [Crop] maps a physical region onto a page bitmap and scales the result
// to a requested width.
package render
