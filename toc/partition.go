package toc

// dominantLabel returns the most frequent label of the top level, coarser
// labels winning ties, and whether any top-level node is labeled. It
// defaults to Chapter.
func dominantLabel(top []*node) (Label, bool) {
	counts := make(map[Label]int)
	for _, n := range top {
		if n.heading.label != LabelNone {
			counts[n.heading.label]++
		}
	}
	if len(counts) == 0 {
		return LabelChapter, false
	}

	best, bestCount := LabelChapter, 0
	for l := LabelPart; l <= LabelSubsection; l++ {
		if counts[l] > bestCount {
			best, bestCount = l, counts[l]
		}
	}
	return best, true
}

// inMainRun reports whether a top-level node belongs to the main
// contents. Without any labeled node the id decides, and without ids
// every node belongs.
func inMainRun(n *node, dominant Label, anyLabeled, anyID bool) bool {
	switch {
	case anyLabeled && n.heading.label == dominant:
		return true
	case anyLabeled || anyID:
		return n.heading.label == LabelNone && n.heading.id != ""
	default:
		return true
	}
}

// partition splits the top level into front matter, main contents and
// back matter. The main run spans the first through the last node of the
// dominant label. Partitions with nodes cover disjoint, consecutive page
// ranges of at least one page each, up to the end of the document;
// partitions without nodes are empty with length 0.
func (b *Builder) partition(top []*node) [3]*node {
	dominant, anyLabeled := dominantLabel(top)
	anyID := false
	for _, n := range top {
		anyID = anyID || n.heading.id != ""
	}

	first, last := -1, -1
	for i, n := range top {
		if inMainRun(n, dominant, anyLabeled, anyID) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	var before, body, after []*node
	if first < 0 {
		before = top
	} else {
		before, body, after = top[:first], top[first:last+1], top[last+1:]
	}
	inferLabels(body, dominant)

	n := b.cache.Len()
	mainStart, finisStart := n, n
	if len(body) > 0 {
		mainStart = body[0].page
	}
	if len(after) > 0 {
		finisStart = after[0].page
		if len(body) == 0 {
			mainStart = finisStart
		}
	}
	mainStart, finisStart = boundaries(n, mainStart, finisStart, len(before) > 0, len(body) > 0, len(after) > 0)

	return [3]*node{
		b.partitionNode(InitiumTitle, before, 0, mainStart),
		b.partitionNode(MainTitle, body, mainStart, finisStart),
		b.partitionNode(FinisTitle, after, finisStart, n),
	}
}

// boundaries moves the starts of the main and back matter partitions so
// every partition with nodes keeps at least one page of [0, n). A
// document with fewer pages than such partitions cannot be tiled and
// keeps the closest fit.
func boundaries(n, mainStart, finisStart int, front, body, back bool) (int, int) {
	need := func(has bool) int {
		if has {
			return 1
		}
		return 0
	}

	mainStart = minInt(maxInt(mainStart, need(front)), n)
	finisStart = minInt(maxInt(finisStart, mainStart+need(body)), n)
	if back {
		finisStart = maxInt(minInt(finisStart, n-1), 0)
		mainStart = maxInt(minInt(mainStart, finisStart-need(body)), 0)
	} else {
		finisStart = n
	}
	return mainStart, finisStart
}

func (b *Builder) partitionNode(title string, children []*node, start, end int) *node {
	p := &node{title: title, page: b.clampPage(start), children: children}
	if len(children) == 0 {
		p.empty = true
		return p
	}
	p.length = maxInt(end-start, 1)
	assignLengths(children, p.page, p.page+p.length)
	return p
}

// inferLabels gives unlabeled nodes the expected label for their depth:
// the dominant label at the top of the main run and one granularity finer
// for every level below a parent
func inferLabels(nodes []*node, expected Label) {
	for _, n := range nodes {
		if n.label == LabelNone {
			n.label = expected
		}
		inferLabels(n.children, n.label.Finer())
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
