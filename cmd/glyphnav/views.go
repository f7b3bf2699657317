package main

import (
	"github.com/tsawler/glyphnav/model"
	"github.com/tsawler/glyphnav/toc"
)

// Command output uses 1-based page numbers.

type rectView [4]float64

func viewRects(rects []model.Rect) []rectView {
	out := make([]rectView, len(rects))
	for i, r := range rects {
		n := r.Normalize()
		out[i] = rectView{n.X1, n.Y1, n.X2, n.Y2}
	}
	return out
}

type resultView struct {
	Page        int        `json:"page" yaml:"page"`
	Text        string     `json:"text" yaml:"text"`
	Rects       []rectView `json:"rects" yaml:"rects,flow"`
	Certainty   float64    `json:"certainty" yaml:"certainty"`
	ContinuedBy *int       `json:"continued_by,omitempty" yaml:"continued_by,omitempty"`
	Continues   *int       `json:"continues,omitempty" yaml:"continues,omitempty"`
}

// viewResults converts find results; split halves point at each other by
// position in the output list
func viewResults(results []model.FindResult) []resultView {
	out := make([]resultView, len(results))
	for i, r := range results {
		v := resultView{
			Page:      r.Page + 1,
			Text:      r.Text,
			Rects:     viewRects(r.Rects),
			Certainty: r.Certainty,
		}
		if r.PagePostfix >= 0 {
			n := r.PagePostfix
			v.ContinuedBy = &n
		}
		if r.PagePrefix >= 0 {
			n := r.PagePrefix
			v.Continues = &n
		}
		out[i] = v
	}
	return out
}

type tocView struct {
	Title    string    `json:"title" yaml:"title"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Page     int       `json:"page" yaml:"page"`
	Length   int       `json:"length" yaml:"length"`
	Empty    bool      `json:"empty,omitempty" yaml:"empty,omitempty"`
	Children []tocView `json:"children,omitempty" yaml:"children,omitempty"`
}

type treeView struct {
	Strategy string  `json:"strategy" yaml:"strategy"`
	Depth    int     `json:"depth" yaml:"depth"`
	Contents tocView `json:"contents" yaml:"contents"`
}

func viewTree(t *toc.Tree) treeView {
	return treeView{
		Strategy: t.Strategy.String(),
		Depth:    t.Depth(),
		Contents: viewItem(t, toc.Head),
	}
}

func viewItem(t *toc.Tree, h toc.Handle) tocView {
	it := t.Item(h)
	v := tocView{
		Title:  it.Title,
		ID:     it.ID,
		Page:   it.Page + 1,
		Length: it.Length,
		Empty:  it.Empty,
	}
	if it.Label != toc.LabelNone {
		v.Label = it.Label.String()
	}
	for _, c := range it.Children {
		v.Children = append(v.Children, viewItem(t, c))
	}
	return v
}

// breadcrumbs returns the titles from the top of the tree down to h
func breadcrumbs(t *toc.Tree, h toc.Handle) []string {
	var out []string
	for h != toc.NoHandle && h != toc.Head {
		it := t.Item(h)
		if it == nil {
			break
		}
		out = append([]string{it.Title}, out...)
		h = it.Parent
	}
	return out
}

type figureView struct {
	Label          string   `json:"label,omitempty" yaml:"label,omitempty"`
	ID             string   `json:"id" yaml:"id"`
	Page           int      `json:"page" yaml:"page"`
	Region         rectView `json:"region" yaml:"region,flow"`
	Caption        string   `json:"caption" yaml:"caption"`
	ReferencedFrom []int    `json:"referenced_from,omitempty" yaml:"referenced_from,flow,omitempty"`
	Image          string   `json:"image,omitempty" yaml:"image,omitempty"`
}

func viewFigure(f *model.Figure) figureView {
	v := figureView{
		Label:   f.Label,
		ID:      f.ID,
		Page:    f.Page + 1,
		Region:  viewRects([]model.Rect{f.Region})[0],
		Caption: f.Caption.Text,
	}
	for _, p := range f.ReferencedFrom {
		v.ReferencedFrom = append(v.ReferencedFrom, p+1)
	}
	return v
}

type referenceView struct {
	Page       int    `json:"page" yaml:"page"`
	Text       string `json:"text" yaml:"text"`
	TargetPage int    `json:"target_page,omitempty" yaml:"target_page,omitempty"`
}

func viewReference(r *model.ReferencedFigure) referenceView {
	v := referenceView{Page: r.Page + 1, Text: r.Text}
	if r.Resolved() {
		v.TargetPage = r.Target.Page + 1
	}
	return v
}
