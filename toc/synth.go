package toc

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/pages"
)

// discovery splits a contents line into its title and trailing page
// label, separated by spaces or a dot leader
var discovery = regexp.MustCompile(`^(.*?\S)(?:\s*[.·…_]{2,}\s*|\s+)(\d{1,4}|[ivxlcdm]{1,7}|[IVXLCDM]{1,7})$`)

// run is a contiguous group of pages that look like contents pages
type run struct {
	start, end int
	score      float64
	density    float64
	rank       float64
}

// entry is one decomposed contents line
type entry struct {
	title   string
	heading heading
	label   string
	page    int
	roman   bool
}

// textLine is a non-empty line of page text with its line rectangle
type textLine struct {
	text string
	rect model.Rect
	ok   bool
}

// synthesize looks for contents pages near the start of the document and
// turns the best qualifying run into top-level nodes
func (b *Builder) synthesize() ([]*node, bool) {
	labels := b.cache.Labels()
	for _, r := range b.contentsRuns() {
		entries, ok := b.decompose(r, labels)
		if !ok {
			b.logger.Debug().Int("start", r.start).Int("end", r.end).Msg("contents run rejected")
			continue
		}
		if !model.HasPageLabels(b.src) {
			b.calibrate(entries, r)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].page < entries[j].page
		})
		return assemble(entries), true
	}
	return nil, false
}

// contentsRuns scores the pages of the scan window and returns runs of
// qualifying pages, best first. Ties keep document order.
func (b *Builder) contentsRuns() []run {
	n := b.cache.Len()
	window := int(math.Ceil(b.config.WindowFraction * float64(n)))
	if window < b.config.MinWindow {
		window = b.config.MinWindow
	}
	if window > n {
		window = n
	}

	var runs []run
	var cur *run
	var lines, labeled int
	closeRun := func() {
		if cur == nil {
			return
		}
		cur.score /= float64(cur.end - cur.start)
		if lines > 0 {
			cur.density = float64(labeled) / float64(lines)
		}
		cur.rank = b.config.ScoreWeight*cur.score + (1-b.config.ScoreWeight)*cur.density
		runs = append(runs, *cur)
		cur = nil
		lines, labeled = 0, 0
	}

	for p := 0; p < window; p++ {
		score, total, withLabel := scorePage(b.cache.Page(p))
		if total == 0 || score < b.config.PageScore {
			closeRun()
			continue
		}
		if cur == nil {
			cur = &run{start: p}
		}
		cur.end = p + 1
		cur.score += score
		lines += total
		labeled += withLabel
	}
	closeRun()

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].rank > runs[j].rank
	})
	return runs
}

// scorePage returns the fraction of lines ending in a page number, the
// number of lines and the number of structurally labeled lines
func scorePage(meta *pages.PageMeta) (float64, int, int) {
	var total, numbered, labeled int
	for _, l := range pageLines(meta) {
		total++
		if endsWithPageNumber(l.text) {
			numbered++
		}
		if parseHeading(l.text).label != LabelNone {
			labeled++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return float64(numbered) / float64(total), total, labeled
}

// pageLines returns the non-empty text lines of a page. Line rectangles
// are attached when the source reports one rectangle per text line.
func pageLines(meta *pages.PageMeta) []textLine {
	raw := strings.Split(meta.Text, "\n")
	aligned := len(raw) == len(meta.Lines)

	var out []textLine
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		l := textLine{text: s}
		if aligned {
			l.rect, l.ok = meta.Lines[i], true
		}
		out = append(out, l)
	}
	return out
}

// discover decomposes one contents line
func discover(line string) (entry, bool) {
	m := discovery.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return entry{}, false
	}
	title := strings.TrimRight(m[1], " .·…_")
	if title == "" {
		return entry{}, false
	}
	return entry{title: title, heading: parseHeading(title), label: m[2]}, true
}

// decompose turns the lines of a run into entries with resolved pages.
// Lines that do not decompose on their own are treated as fragments of
// lines split by the layout and re-joined row by row. The run qualifies
// when at least AcceptRatio of its lines decomposed.
func (b *Builder) decompose(r run, labels pages.LabelIndex) ([]entry, bool) {
	var found []entry
	total, decomposed := 0, 0
	for p := r.start; p < r.end; p++ {
		meta := b.cache.Page(p)
		var fragments []textLine
		for _, l := range pageLines(meta) {
			total++
			if e, ok := discover(l.text); ok {
				found = append(found, e)
				decomposed++
				continue
			}
			fragments = append(fragments, l)
		}
		joined, used := b.joinFragments(meta, fragments)
		found = append(found, joined...)
		decomposed += used
	}
	if total == 0 || float64(decomposed) < b.config.AcceptRatio*float64(total) {
		return nil, false
	}

	var entries []entry
	for _, e := range found {
		if p, ok := labels.Resolve(e.label); ok {
			e.page = p
			entries = append(entries, e)
			continue
		}
		if v := romanValue(e.label); v > 0 {
			e.page = b.clampPage(v - 1)
			e.roman = true
			entries = append(entries, e)
			continue
		}
		b.logger.Debug().Str("title", e.title).Str("label", e.label).Msg("contents entry page not found")
	}
	return entries, len(entries) > 0
}

// joinFragments groups fragments on the same row, concatenates each
// group left to right and decomposes the result. It returns the entries
// and the number of fragments they consumed.
func (b *Builder) joinFragments(meta *pages.PageMeta, fragments []textLine) ([]entry, int) {
	var located []textLine
	for _, f := range fragments {
		if !f.ok {
			res := b.finder.Find(f.text, meta.Index, 1, find.Options{})
			if len(res) == 0 {
				continue
			}
			f.rect, f.ok = res[0].Bounds(), true
		}
		located = append(located, f)
	}
	sort.SliceStable(located, func(i, j int) bool {
		return located[i].rect.Center().Y > located[j].rect.Center().Y
	})

	tol := b.config.RowTolerance * meta.LineHeight
	used := make([]bool, len(located))
	var out []entry
	consumed := 0
	for i := range located {
		if used[i] {
			continue
		}
		row := []int{i}
		for j := i + 1; j < len(located); j++ {
			if !used[j] && math.Abs(located[j].rect.Center().Y-located[i].rect.Center().Y) <= tol {
				row = append(row, j)
			}
		}
		if len(row) < 2 {
			continue
		}
		sort.SliceStable(row, func(a, c int) bool {
			return located[row[a]].rect.Left() < located[row[c]].rect.Left()
		})
		parts := make([]string, len(row))
		for k, idx := range row {
			parts[k] = located[idx].text
		}
		e, ok := discover(strings.Join(parts, " "))
		if !ok {
			continue
		}
		for _, idx := range row {
			used[idx] = true
		}
		out = append(out, e)
		consumed += len(row)
	}
	return out, consumed
}

// calibrate estimates the offset between printed page numbers and page
// indices by locating the titles of the first entries after the contents
// run. The most frequent offset wins, smaller offsets breaking ties.
func (b *Builder) calibrate(entries []entry, r run) {
	votes := make(map[int]int)
	tried := 0
	for _, e := range entries {
		if tried >= b.config.CalibrationEntries {
			break
		}
		if e.roman {
			continue
		}
		tried++
		for _, res := range b.finder.Find(e.title, r.end, b.cache.Len()-r.end, find.Options{}) {
			shift := res.Page - e.page
			if absInt(shift) <= b.config.MaxShift {
				votes[shift]++
				break
			}
		}
	}

	best, bestVotes := 0, 0
	for shift, v := range votes {
		if v > bestVotes || (v == bestVotes && (absInt(shift) < absInt(best) || (absInt(shift) == absInt(best) && shift < best))) {
			best, bestVotes = shift, v
		}
	}
	if best == 0 {
		return
	}
	b.logger.Debug().Int("shift", best).Int("votes", bestVotes).Msg("page offset calibrated")
	for i := range entries {
		if !entries[i].roman {
			entries[i].page = b.clampPage(entries[i].page + best)
		}
	}
}

// assemble builds the node forest from entries in page order. A labeled
// entry nests under the nearest open entry with a strictly coarser label;
// an unlabeled entry with an id gets a label from the number of its id
// components; an entry with neither goes to the top level.
func assemble(entries []entry) []*node {
	var top, stack []*node
	for _, e := range entries {
		n := &node{title: e.title, heading: e.heading, label: e.heading.label, page: e.page}
		if n.label == LabelNone && n.heading.id != "" {
			n.label = labelForID(n.heading.id)
		}
		if n.label == LabelNone {
			top = append(top, n)
			stack = stack[:0]
			continue
		}

		for len(stack) > 0 && !stack[len(stack)-1].label.CoarserThan(n.label) {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			top = append(top, n)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
		stack = append(stack, n)
	}
	return top
}

// labelForID infers a label from a bare id: one component is a chapter
// and each further dotted component is one granularity finer
func labelForID(id string) Label {
	l := LabelChapter
	for i := strings.Count(id, "."); i > 0; i-- {
		l = l.Finer()
	}
	return l
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
