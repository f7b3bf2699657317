package reader

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/glyphnav/model"
)

// readOutline loads the document bookmarks with pdfcpu. A missing or
// unreadable outline is not an error; it yields nil.
func (r *Reader) readOutline() []model.OutlineEntry {
	f, err := os.Open(r.path)
	if err != nil {
		r.logger.Debug().Err(err).Msg("outline: reopen failed")
		return nil
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	bookmarks, err := api.Bookmarks(f, conf)
	if err != nil {
		r.logger.Debug().Err(err).Msg("outline: no bookmarks")
		return nil
	}
	return convertBookmarks(bookmarks, r.numPages)
}

// convertBookmarks maps pdfcpu bookmarks (1-based pages) to outline
// entries, clamping pages to the document. Bookmarks carry no destination
// offset, so Offset is left unset; the TOC builder locates each heading
// on its page afterwards (toc.Builder.locate).
func convertBookmarks(bms []pdfcpu.Bookmark, pageCount int) []model.OutlineEntry {
	if len(bms) == 0 {
		return nil
	}
	entries := make([]model.OutlineEntry, 0, len(bms))
	for _, bm := range bms {
		page := bm.PageFrom - 1
		if page < 0 {
			page = 0
		}
		if pageCount > 0 && page >= pageCount {
			page = pageCount - 1
		}
		entries = append(entries, model.OutlineEntry{
			Title:    bm.Title,
			Page:     page,
			Children: convertBookmarks(bm.Kids, pageCount),
		})
	}
	return entries
}
