package main

import (
	"github.com/spf13/cobra"
)

var tocCmd = &cobra.Command{
	Use:   "toc <file.pdf>",
	Short: "Print the table of contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer doc.Close()

		return OutputTo(cmd.OutOrStdout(), format, viewTree(doc.TOC()))
	},
}
