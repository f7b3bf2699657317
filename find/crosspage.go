package find

import (
	"strings"
)

// crossPage finds occurrences of q that start at the bottom of one page
// and continue at the top of the next. Every split of the query into a
// leading and trailing run of words is tried; a pair is kept only when
// neither half overlaps a result already found on its page.
func (e *Engine) crossPage(q string, start, end int, wholeWords bool, perPage map[int][]*hit) {
	words := strings.Fields(q)
	for split := 1; split < len(words); split++ {
		preRe, ok := e.compile(prefixPattern(words[:split], wholeWords))
		if !ok {
			continue
		}
		postRe, ok := e.compile(postfixPattern(words[split:], wholeWords))
		if !ok {
			continue
		}

		for p := start; p+1 < end; p++ {
			pre := bottomMost(e.findOnPage(p, preRe, modePrefix, wholeWords))
			if pre == nil {
				continue
			}
			post := topMost(e.findOnPage(p+1, postRe, modePostfix, wholeWords))
			if post == nil {
				continue
			}
			if overlapsHits(pre, perPage[p]) || overlapsHits(post, perPage[p+1]) {
				continue
			}

			pre.postfix = post
			post.prefix = pre
			perPage[p] = append(perPage[p], pre)
			perPage[p+1] = append(perPage[p+1], post)
			e.logger.Debug().Int("page", p).Str("query", q).Int("split", split).Msg("find: cross-page match")
		}
	}
}

// bottomMost returns the hit whose last rectangle is lowest on the page
func bottomMost(hits []*hit) *hit {
	var best *hit
	for _, h := range hits {
		if len(h.rects) == 0 {
			continue
		}
		if best == nil || h.rects[len(h.rects)-1].Center().Y < best.rects[len(best.rects)-1].Center().Y {
			best = h
		}
	}
	return best
}

// topMost returns the hit whose first rectangle is highest on the page
func topMost(hits []*hit) *hit {
	var best *hit
	for _, h := range hits {
		if len(h.rects) == 0 {
			continue
		}
		if best == nil || h.rects[0].Center().Y > best.rects[0].Center().Y {
			best = h
		}
	}
	return best
}

func overlapsHits(h *hit, existing []*hit) bool {
	for _, other := range existing {
		for _, r := range h.rects {
			if overlapsAny(r, other.rects) {
				return true
			}
		}
	}
	return false
}
