package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/glyphnav/model"
)

var figuresOpts struct {
	extract string
	width   int
}

type figuresView struct {
	Figures    []figureView    `json:"figures" yaml:"figures"`
	References []referenceView `json:"references" yaml:"references"`
}

var figuresCmd = &cobra.Command{
	Use:   "figures <file.pdf>",
	Short: "List figures with their captions and the references to them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer doc.Close()

		if figuresOpts.extract != "" {
			if err := os.MkdirAll(figuresOpts.extract, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
		}

		var out figuresView
		for _, f := range doc.Figures() {
			v := viewFigure(f)
			if figuresOpts.extract != "" {
				path, err := writeFigure(cmd, doc.FigureImage, f)
				if err != nil {
					logger.Warn().Str("figure", f.Key()).Err(err).Msg("figure image not written")
				} else {
					v.Image = path
				}
			}
			out.Figures = append(out.Figures, v)
		}
		for i := 0; i < doc.PageCount(); i++ {
			for _, r := range doc.Page(i).Referenced {
				out.References = append(out.References, viewReference(r))
			}
		}
		return OutputTo(cmd.OutOrStdout(), format, out)
	},
}

func init() {
	f := figuresCmd.Flags()
	f.StringVar(&figuresOpts.extract, "extract", "", "directory to write figure images to (needs pdftoppm)")
	f.IntVar(&figuresOpts.width, "width", 0, "figure image width in pixels, 0 for the rendered size")
}

// imageFunc produces the image of a figure
type imageFunc func(ctx context.Context, fig *model.Figure, r model.Renderer, width int) (image.Image, error)

// writeFigure renders one figure into the extract directory
func writeFigure(cmd *cobra.Command, figureImage imageFunc, f *model.Figure) (string, error) {
	img, err := figureImage(cmd.Context(), f, nil, figuresOpts.width)
	if err != nil {
		return "", err
	}

	id := strings.NewReplacer(".", "_", "-", "_").Replace(f.ID)
	path := filepath.Join(figuresOpts.extract, fmt.Sprintf("figure_p%04d_%s.png", f.Page+1, id))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode figure image: %w", err)
	}
	return path, nil
}
