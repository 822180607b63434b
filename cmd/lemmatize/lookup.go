package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/annotation"
	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

func newLookupCmd(a *app) *cobra.Command {
	var analyses bool
	cmd := &cobra.Command{
		Use:   "lookup <tag> <word>...",
		Short: "Resolve words under one POS tag",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			resolver := lemmatizer.NewResolver(a.loader, lemmatizer.ResolverConfig{
				Language: a.cfg.Language,
				Tagset:   a.cfg.Tagset,
				Logger:   a.logger,
			})
			if err := resolver.Prepare(ctx); err != nil {
				return err
			}

			tag := args[0]
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WORD\tLEMMA\tSTATUS\tSOURCE")
			for _, word := range args[1:] {
				res, err := resolver.Resolve(ctx, lemmatizer.Word{Text: word, Tag: tag, Kind: annotation.KindOf(word)})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", word, res.Lemma, res.Status, res.Source)
				if analyses {
					printAnalyses(w, resolver.Resources().Analyzer(), word)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&analyses, "analyses", false, "also print the raw analyzer output")
	return cmd
}

func printAnalyses(w *tabwriter.Writer, analyzer lemmatizer.Analyzer, word string) {
	if analyzer == nil {
		return
	}
	results, err := analyzer.Analyze(word)
	if err != nil {
		fmt.Fprintf(w, "\t! %v\t\t\n", err)
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "\t%s\t\t\n", r)
	}
}
