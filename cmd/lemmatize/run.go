package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kerem-kaynak/dict-lemmatizer/internal/config"
	"github.com/kerem-kaynak/dict-lemmatizer/pkg/annotation"
	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

type runOptions struct {
	format    string
	outputDir string
	nfc       bool
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [document.json...]",
		Short: "Lemmatize annotated JSON documents",
		Long: `run reads annotated documents as JSON, adds a lemma and a lemmatizer.status
feature to every token carrying a POS tag, and writes the documents back.
Without arguments a single document is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "json", "output format: json or yaml")
	flags.StringVar(&opts.outputDir, "output-dir", "", "write each document to this directory instead of stdout")
	flags.BoolVar(&opts.nfc, "nfc", false, "normalize token text to NFC before lookup")
	flags.String("input-set", "", "annotation set holding the tokens")
	flags.String("input-type", lemmatizer.DefaultInputType, "token annotation type")
	flags.String("containing-type", "", "only process tokens inside annotations of this type")
	flags.String("text-feature", "", "token feature holding the text, default is the covered text")
	flags.String("pos-feature", lemmatizer.DefaultPOSFeature, "token feature holding the POS tag")
	flags.String("lemma-feature", lemmatizer.DefaultLemmaFeature, "token feature receiving the lemma")
	flags.Int("workers", 1, "documents processed in parallel")

	a.bind(flags.Lookup("input-set"), config.KeyInputSet)
	a.bind(flags.Lookup("input-type"), config.KeyInputType)
	a.bind(flags.Lookup("containing-type"), config.KeyContainingType)
	a.bind(flags.Lookup("text-feature"), config.KeyTextFeature)
	a.bind(flags.Lookup("pos-feature"), config.KeyPOSFeature)
	a.bind(flags.Lookup("lemma-feature"), config.KeyLemmaFeature)
	a.bind(flags.Lookup("workers"), config.KeyWorkers)
	return cmd
}

func (a *app) run(ctx context.Context, stdout io.Writer, stdin io.Reader, paths []string, opts *runOptions) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("%w: unknown output format %q", lemmatizer.ErrConfig, opts.format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var procOpts []lemmatizer.ProcessorOption
	procOpts = append(procOpts, lemmatizer.WithLogger(a.logger))
	if opts.nfc {
		procOpts = append(procOpts, lemmatizer.WithNormalizer(lemmatizer.NewNormalizerWithSteps(lemmatizer.NFC)))
	}

	// Fail on configuration and resource errors before reading any document.
	probe, err := lemmatizer.NewProcessor(a.loader, a.cfg.ProcessorConfig(), procOpts...)
	if err != nil {
		return err
	}
	if err := probe.Prepare(ctx); err != nil {
		return err
	}

	if len(paths) == 0 {
		doc, err := annotation.ReadDocument(stdin)
		if err != nil {
			return fmt.Errorf("reading document from stdin: %w", err)
		}
		if err := probe.Process(ctx, doc); err != nil {
			return err
		}
		probe.Report()
		return writeDocument(stdout, doc, opts.format)
	}

	workers := a.cfg.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	docs := make([]*annotation.Document, len(paths))
	stats := make([]lemmatizer.StatsSnapshot, workers)
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			proc, err := lemmatizer.NewProcessor(a.loader, a.cfg.ProcessorConfig(), procOpts...)
			if err != nil {
				return err
			}
			defer func() { stats[w] = proc.Stats() }()
			for i := range jobs {
				doc, err := readDocumentFile(paths[i])
				if err != nil {
					return err
				}
				if err := proc.Process(gctx, doc); err != nil {
					return fmt.Errorf("processing %s: %w", paths[i], err)
				}
				if opts.outputDir != "" {
					if err := writeDocumentFile(opts.outputDir, paths[i], doc, opts.format); err != nil {
						return err
					}
					continue
				}
				docs[i] = doc
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total lemmatizer.StatsSnapshot
	for _, s := range stats {
		total = total.Add(s)
	}
	lemmatizer.LogStats(a.logger, total)

	if opts.outputDir != "" {
		return nil
	}
	for _, doc := range docs {
		if err := writeDocument(stdout, doc, opts.format); err != nil {
			return err
		}
	}
	return nil
}

func readDocumentFile(path string) (*annotation.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := annotation.ReadDocument(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}
	return doc, nil
}

func writeDocumentFile(dir, inputPath string, doc *annotation.Document, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := filepath.Base(inputPath)
	if format == "yaml" {
		name = name[:len(name)-len(filepath.Ext(name))] + ".yaml"
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := writeDocument(f, doc, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeDocument(w io.Writer, doc *annotation.Document, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return annotation.WriteDocument(w, doc)
}
