package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tsawler/glyphnav"
)

type locationView struct {
	Page       int             `json:"page" yaml:"page"`
	Label      string          `json:"label" yaml:"label"`
	Path       []string        `json:"path" yaml:"path"`
	Figures    []figureView    `json:"figures,omitempty" yaml:"figures,omitempty"`
	References []referenceView `json:"references,omitempty" yaml:"references,omitempty"`
}

var locateCmd = &cobra.Command{
	Use:   "locate <file.pdf> <page>",
	Short: "Show the figures, references and table of contents path of a page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page %q: %w", args[1], err)
		}

		doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer doc.Close()

		view, err := viewLocation(doc, page)
		if err != nil {
			return err
		}
		return OutputTo(cmd.OutOrStdout(), format, view)
	},
}

// viewLocation describes a 1-based page of a document
func viewLocation(doc *glyphnav.Document, page int) (locationView, error) {
	meta := doc.Page(page - 1)
	if meta == nil {
		return locationView{}, fmt.Errorf("page %d out of range 1-%d", page, doc.PageCount())
	}

	h, _ := doc.Section(page - 1)
	v := locationView{
		Page:  page,
		Label: meta.Label,
		Path:  breadcrumbs(doc.TOC(), h),
	}
	loc := doc.Locate(page - 1)
	for _, f := range loc.Figures {
		v.Figures = append(v.Figures, viewFigure(f))
	}
	for _, r := range loc.Referenced {
		v.References = append(v.References, viewReference(r))
	}
	return v, nil
}
