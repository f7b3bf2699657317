package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/glyphnav/find"
)

var findOpts struct {
	start      int
	count      int
	crossPage  bool
	wholeWords bool
}

var findCmd = &cobra.Command{
	Use:   "find <file.pdf> <query...>",
	Short: "Find text, tolerating hyphenation, line wraps and page breaks",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openDocument(args[0])
		if err != nil {
			return err
		}
		defer doc.Close()

		query := strings.Join(args[1:], " ")
		results := doc.Find(query, findOpts.start-1, findOpts.count, find.Options{
			CrossPage:  findOpts.crossPage,
			WholeWords: findOpts.wholeWords,
		})
		logger.Info().Str("query", query).Int("results", len(results)).Msg("find finished")
		return OutputTo(cmd.OutOrStdout(), format, viewResults(results))
	},
}

func init() {
	f := findCmd.Flags()
	f.IntVar(&findOpts.start, "start", 1, "first page to search")
	f.IntVar(&findOpts.count, "count", -1, "number of pages to search, -1 for all")
	f.BoolVar(&findOpts.crossPage, "cross-page", false, "match across page breaks")
	f.BoolVar(&findOpts.wholeWords, "whole-words", false, "match whole words only")
}
