package figures

import (
	"sort"

	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
)

// References extracts the figure mentions of a page, resolves each to a
// figure on the same or a later page and stores them on the page.
// Mentions are de-duplicated by label class and id; a caption is not a
// mention of its own figure.
func (x *Extractor) References(p int) []*model.ReferencedFigure {
	meta := x.cache.Page(p)
	if meta == nil {
		return nil
	}

	var refs []*model.ReferencedFigure
	seen := make(map[string]bool)
	for _, m := range x.patterns.references(meta.Text) {
		key := classKey(m.label) + " " + m.id
		if seen[key] {
			continue
		}
		if m.lineStart && captionOnPage(meta.Figures, m) {
			continue
		}
		seen[key] = true

		ref := &model.ReferencedFigure{
			Label: m.label,
			ID:    m.id,
			Page:  p,
			Text:  m.text,
		}
		for _, res := range x.finder.Find(m.text, p, 1, find.Options{}) {
			ref.Rects = append(ref.Rects, res.Rects...)
		}
		if target := x.lookup(p, m); target != nil {
			ref.Target = target
			target.ReferencedFrom = addPage(target.ReferencedFrom, p)
		}
		refs = append(refs, ref)
	}

	meta.Referenced = refs
	if meta.Hovered >= len(refs) {
		meta.Hovered = -1
	}
	return refs
}

// retarget resolves the references of pages before start again, so
// they point at the figures extracted from start on
func (x *Extractor) retarget(start int) {
	for p := 0; p < start && p < x.cache.Len(); p++ {
		for _, ref := range x.cache.Page(p).Referenced {
			if ref.Target != nil && ref.Target.Page < start {
				continue
			}
			ref.Target = x.lookup(p, mention{label: ref.Label, id: ref.ID})
			if ref.Target != nil {
				ref.Target.ReferencedFrom = addPage(ref.Target.ReferencedFrom, p)
			}
		}
	}
}

// lookup scans the figure tables from page p forward for a figure with
// the mention's id and an equal label
func (x *Extractor) lookup(p int, m mention) *model.Figure {
	for q := p; q < x.cache.Len(); q++ {
		for _, f := range x.cache.Page(q).Figures {
			if f.ID == m.id && LabelsEqual(f.Label, m.label) {
				return f
			}
		}
	}
	return nil
}

func captionOnPage(figs []*model.Figure, m mention) bool {
	for _, f := range figs {
		if f.ID == m.id && LabelsEqual(f.Label, m.label) {
			return true
		}
	}
	return false
}

// addPage inserts p into a sorted page list unless present
func addPage(list []int, p int) []int {
	i := sort.SearchInts(list, p)
	if i < len(list) && list[i] == p {
		return list
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = p
	return list
}
