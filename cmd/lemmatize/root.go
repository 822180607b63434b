package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kerem-kaynak/dict-lemmatizer/internal/config"
	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	logger *slog.Logger
	loader *lemmatizer.Loader
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "lemmatize",
		Short: "Dictionary and analyzer based lemmatizer",
		Long: `lemmatize assigns lemmas to POS-tagged tokens. Each word is looked up in the
per-language dictionaries for its part of speech first; words the lists do
not know are passed to the morphological analyzer for the language, and
words neither source resolves keep their surface form.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.loader == nil {
				return nil
			}
			return a.loader.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.String("resources", "resources", "directory holding dictionaries/ and lemmaModels/ (or set LEMMATIZER_RESOURCES)")
	flags.String("lang", lemmatizer.DefaultLanguage, "language code (or set LEMMATIZER_LANGUAGE)")
	flags.String("tagset", "penn", "POS tagset: penn or universal")
	flags.Bool("no-lists", false, "do not use dictionaries (or set LEMMATIZER_NOLISTS)")
	flags.Bool("no-analyzer", false, "do not use the morphological analyzer (or set LEMMATIZER_NOANALYZER)")
	flags.Bool("strict", false, "fail when the language has no dictionary directory")
	flags.Int("cache-size", lemmatizer.DefaultAnalyzerCacheSize, "analyzer cache entries, 0 disables the cache")
	flags.String("lookup-command", lemmatizer.DefaultLookupCommand, "program used for optimized-lookup models")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	a.bind(flags.Lookup("resources"), config.KeyResources)
	a.bind(flags.Lookup("lang"), config.KeyLanguage)
	a.bind(flags.Lookup("tagset"), config.KeyTagset)
	a.bind(flags.Lookup("no-lists"), config.KeyNoLists)
	a.bind(flags.Lookup("no-analyzer"), config.KeyNoAnalyzer)
	a.bind(flags.Lookup("strict"), config.KeyStrict)
	a.bind(flags.Lookup("cache-size"), config.KeyCacheSize)
	a.bind(flags.Lookup("lookup-command"), config.KeyLookupCommand)
	a.bind(flags.Lookup("log-level"), config.KeyLogLevel)

	root.AddCommand(newRunCmd(a), newTaggedCmd(a), newLookupCmd(a))
	return root
}

func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	a.loader = lemmatizer.NewLoader(cfg.LoaderOptions(a.logger))
	a.logger.Debug("configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"resources", cfg.ResourceDir,
		"lang", cfg.Language,
		"tagset", cfg.Tagset.String(),
		"no_lists", cfg.NoLists,
		"no_analyzer", cfg.NoAnalyzer,
	)
	return nil
}
