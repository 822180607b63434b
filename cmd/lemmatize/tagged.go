package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/annotation"
	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

// lemmatizedToken is one line of tagged output.
type lemmatizedToken struct {
	Word   string `json:"word"`
	Tag    string `json:"tag,omitempty"`
	Lemma  string `json:"lemma,omitempty"`
	Status string `json:"status,omitempty"`
}

func newTaggedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tagged [word/TAG ...]",
		Short: "Lemmatize POS-tagged text",
		Long: `tagged lemmatizes text written as word/TAG items, e.g. "The/DT dogs/NNS ran/VBD".
With arguments it prints the result as JSON and exits; without arguments it
reads one sentence per line interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, err := lemmatizer.NewProcessor(a.loader, lemmatizer.ProcessorConfig{
				InputType: annotation.TypeToken,
				Language:  a.cfg.Language,
				Tagset:    a.cfg.Tagset,
			}, lemmatizer.WithLogger(a.logger))
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := proc.Prepare(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				tokens, err := lemmatizeTagged(ctx, proc, strings.Join(args, " "))
				if err != nil {
					return err
				}
				output, _ := json.Marshal(tokens)
				fmt.Fprintln(out, string(output))
				return nil
			}
			return interactive(ctx, proc, a.cfg.Language, cmd.InOrStdin(), out)
		},
	}
}

func interactive(ctx context.Context, proc *lemmatizer.Processor, lang string, in io.Reader, out io.Writer) error {
	res := proc.Resolver().Resources()
	fmt.Fprintf(out, "Lemmatizer (interactive mode, language %s)\n", lang)
	for _, cat := range lemmatizer.DictionaryCategories {
		if n := res.Dictionary(cat).Len(); n > 0 {
			fmt.Fprintf(out, "  %s dictionary: %d forms\n", cat, n)
		}
	}
	if res.Analyzer() != nil {
		fmt.Fprintln(out, "  analyzer loaded")
	}
	fmt.Fprintln(out, "Type word/TAG items, press Enter to lemmatize. Ctrl+D to exit.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens, err := lemmatizeTagged(ctx, proc, line)
		if err != nil {
			return err
		}
		output, _ := json.Marshal(tokens)
		fmt.Fprintf(out, "  %s\n\n", output)
	}
	proc.Report()
	return scanner.Err()
}

func lemmatizeTagged(ctx context.Context, proc *lemmatizer.Processor, text string) ([]lemmatizedToken, error) {
	doc := annotation.ParseTagged("", text)
	if err := proc.Process(ctx, doc); err != nil {
		return nil, err
	}
	cfg := proc.Config()
	var tokens []lemmatizedToken
	for _, tok := range doc.Set("").Get(cfg.InputType) {
		t := lemmatizedToken{Word: doc.Span(tok)}
		t.Tag, _ = tok.Feature(cfg.POSFeature)
		t.Lemma, _ = tok.Feature(cfg.LemmaFeature)
		t.Status, _ = tok.Feature(lemmatizer.StatusFeature)
		tokens = append(tokens, t)
	}
	return tokens, nil
}
