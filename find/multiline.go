package find

import (
	"sort"
	"strings"

	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
)

// occurrence is one regex match spanning several text lines
type occurrence struct {
	text   string
	tokens []string

	// lines holds the page text line of every token
	lines []int
}

// newOccurrence splits the match text[start:end] into tokens and records
// the text line each token sits on
func newOccurrence(text string, start, end int) occurrence {
	m := text[start:end]
	occ := occurrence{text: matchText(m)}
	line := strings.Count(text[:start], "\n")
	for i, part := range strings.Split(m, "\n") {
		if t := strings.TrimSpace(part); t != "" {
			occ.tokens = append(occ.tokens, t)
			occ.lines = append(occ.lines, line+i)
		}
	}
	return occ
}

// textAligned reports whether every text line of a page has a line
// rectangle at the same index
func textAligned(meta *pages.PageMeta) bool {
	return strings.Count(meta.Text, "\n")+1 == len(meta.Lines)
}

// resolveOccurrence resolves a multi-line match on the text lines it was
// found on. The first token has to close its line and every later token
// has to open one, so the rightmost (or leftmost) candidate on each line
// is taken.
func (e *Engine) resolveOccurrence(meta *pages.PageMeta, occ occurrence, claimed []model.Rect, mode searchMode) []model.Rect {
	chain := make([]model.Rect, 0, len(occ.tokens))
	for k, tok := range occ.tokens {
		if occ.lines[k] >= len(meta.Lines) {
			return nil
		}
		line := meta.Lines[occ.lines[k]]

		var row []model.Rect
		for _, r := range e.src.Search(meta.Index, tok, false) {
			r = r.Normalize()
			if onLine(r, line) && !overlapsAny(r, claimed) {
				row = append(row, r)
			}
		}
		if len(row) == 0 {
			return nil
		}
		chain = append(chain, pickEdge(row, k == 0 && mode != modePostfix))
	}
	if mode == modePrefix && !e.closesLine(meta, chain[0]) {
		return nil
	}
	return chain
}

// onLine reports whether the vertical center of r lies within line
func onLine(r, line model.Rect) bool {
	y := r.Center().Y
	return y >= line.Bottom() && y <= line.Top()
}

// resolveMulti turns matches that span several text lines into chains of
// rectangles, one rectangle per line, for pages whose text lines cannot
// be mapped to line rectangles. Every token is searched on its own and
// grouped into rows; only the rightmost candidate of a row survives for
// the first token and the leftmost for later ones. Rows of consecutive
// tokens are paired up, then chains are grown line by line taking the
// nearest unused candidate below. At most limit chains are returned, one
// per occurrence of the match in the page text.
func (e *Engine) resolveMulti(meta *pages.PageMeta, tokens []string, claimed []model.Rect, mode searchMode, limit int) [][]model.Rect {
	lh := meta.LineHeight
	tol := lh * e.config.GroupTolerance

	sets := make([][]model.Rect, len(tokens))
	for k, tok := range tokens {
		var found []model.Rect
		for _, r := range e.src.Search(meta.Index, tok, false) {
			r = r.Normalize()
			if !overlapsAny(r, claimed) {
				found = append(found, r)
			}
		}

		rows := groupByLine(found, tol)
		for _, row := range rows {
			pickRight := k == 0 && mode != modePostfix
			sets[k] = append(sets[k], pickEdge(row, pickRight))
		}
		if len(sets[k]) == 0 {
			return nil
		}
	}
	for k := 1; k < len(sets); k++ {
		sets[k-1], sets[k] = reconcile(sets[k-1], sets[k], lh)
		if len(sets[k]) == 0 {
			return nil
		}
	}

	used := make([]map[int]bool, len(sets))
	for k := range used {
		used[k] = make(map[int]bool)
	}

	var chains [][]model.Rect
	for i, first := range sets[0] {
		if len(chains) == limit {
			break
		}
		if mode == modePrefix && !e.closesLine(meta, first) {
			continue
		}
		chain := []model.Rect{first}
		picks := []int{i}
		for k := 1; k < len(sets); k++ {
			j := e.nextBelow(chain[k-1], sets[k], used[k], lh)
			if j < 0 {
				break
			}
			chain = append(chain, sets[k][j])
			picks = append(picks, j)
		}
		if len(chain) != len(sets) {
			continue
		}
		for k, j := range picks {
			used[k][j] = true
		}
		chains = append(chains, chain)
	}
	return chains
}

// reconcile pairs the candidates of two consecutive tokens when their
// counts differ. Every candidate of the smaller set is matched to the
// nearest unclaimed candidate of the larger set, measured as the signed
// distance from upper to lower in line heights; unmatched candidates of
// the larger set are dropped. Both sets keep their order.
func reconcile(upper, lower []model.Rect, lh float64) ([]model.Rect, []model.Rect) {
	if len(upper) == len(lower) {
		return upper, lower
	}

	small, large := upper, lower
	if len(lower) < len(upper) {
		small, large = lower, upper
	}
	// distance from a to b, positive when the upper token lies above
	dist := func(a, b model.Rect) float64 {
		if len(upper) <= len(lower) {
			return (a.Center().Y - b.Center().Y) / lh
		}
		return (b.Center().Y - a.Center().Y) / lh
	}

	keep := make([]bool, len(large))
	for _, s := range small {
		best := -1
		bestDist := 0.0
		for j, l := range large {
			if keep[j] {
				continue
			}
			d := dist(s, l)
			if best < 0 || absFloat64(d) < absFloat64(bestDist) || (absFloat64(d) == absFloat64(bestDist) && d > 0) {
				best, bestDist = j, d
			}
		}
		if best >= 0 {
			keep[best] = true
		}
	}

	var kept []model.Rect
	for j, l := range large {
		if keep[j] {
			kept = append(kept, l)
		}
	}
	if len(upper) <= len(lower) {
		return upper, kept
	}
	return kept, lower
}

// nextBelow returns the index of the unused candidate nearest below prev
// within ChainReach line heights, or -1
func (e *Engine) nextBelow(prev model.Rect, candidates []model.Rect, used map[int]bool, lh float64) int {
	best := -1
	bestDist := 0.0
	for j, c := range candidates {
		if used[j] {
			continue
		}
		d := (prev.Center().Y - c.Center().Y) / lh
		if d <= 0 || d > e.config.ChainReach {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// closesLine reports whether r reaches the right end of its text line
func (e *Engine) closesLine(meta *pages.PageMeta, r model.Rect) bool {
	i := meta.NearestLine(r.Center().Y)
	if i < 0 {
		return true
	}
	var right float64
	for _, l := range meta.LinesIn(r) {
		right = maxFloat64(right, l.Right())
	}
	if right == 0 {
		right = meta.Lines[i].Right()
	}
	return r.Right() >= right-meta.LineHeight*e.config.RightmostSlack
}

// groupByLine sorts rectangles top to bottom, left to right and groups
// those whose vertical centers lie within tol of the row's first member
func groupByLine(rects []model.Rect, tol float64) [][]model.Rect {
	if len(rects) == 0 {
		return nil
	}
	sorted := make([]model.Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := sorted[i].Center(), sorted[j].Center()
		if absFloat64(ci.Y-cj.Y) > tol {
			return ci.Y > cj.Y
		}
		return ci.X < cj.X
	})

	var rows [][]model.Rect
	row := []model.Rect{sorted[0]}
	for _, r := range sorted[1:] {
		if absFloat64(r.Center().Y-row[0].Center().Y) <= tol {
			row = append(row, r)
			continue
		}
		rows = append(rows, row)
		row = []model.Rect{r}
	}
	return append(rows, row)
}

// pickEdge returns the rightmost or leftmost rectangle of a row
func pickEdge(row []model.Rect, rightmost bool) model.Rect {
	best := row[0]
	for _, r := range row[1:] {
		if rightmost && r.Right() > best.Right() {
			best = r
		}
		if !rightmost && r.Left() < best.Left() {
			best = r
		}
	}
	return best
}

// overlapsAny reports whether r shares area with any rectangle in others
func overlapsAny(r model.Rect, others []model.Rect) bool {
	for _, o := range others {
		w := minFloat64(r.Right(), o.Right()) - maxFloat64(r.Left(), o.Left())
		h := minFloat64(r.Top(), o.Top()) - maxFloat64(r.Bottom(), o.Bottom())
		if w > 0 && h > 0 {
			return true
		}
	}
	return false
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
