// Package config reads lemmatizer settings from defaults, an optional YAML
// file, LEMMATIZER_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

// EnvPrefix is prepended to every key looked up in the environment.
const EnvPrefix = "LEMMATIZER"

// Keys understood in config files and, upper-cased with EnvPrefix, in the
// environment.
const (
	KeyResources      = "resources"
	KeyLanguage       = "language"
	KeyTagset         = "tagset"
	KeyNoLists        = "no_lists"
	KeyNoAnalyzer     = "no_analyzer"
	KeyStrict         = "strict"
	KeyCacheSize      = "cache_size"
	KeyLookupCommand  = "lookup_command"
	KeyInputSet       = "input_set"
	KeyInputType      = "input_type"
	KeyContainingType = "containing_type"
	KeyTextFeature    = "text_feature"
	KeyPOSFeature     = "pos_feature"
	KeyLemmaFeature   = "lemma_feature"
	KeyLogLevel       = "log_level"
	KeyWorkers        = "workers"
)

// Config is the resolved configuration.
type Config struct {
	ResourceDir   string
	Language      string
	Tagset        lemmatizer.Tagset
	NoLists       bool
	NoAnalyzer    bool
	Strict        bool
	CacheSize     int
	LookupCommand string

	InputSet       string
	InputType      string
	ContainingType string
	TextFeature    string
	POSFeature     string
	LemmaFeature   string

	LogLevel slog.Level
	Workers  int
}

// New returns a viper instance with defaults and environment binding set
// up. Flags are bound by the caller with BindPFlag.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyResources, "resources")
	v.SetDefault(KeyLanguage, lemmatizer.DefaultLanguage)
	v.SetDefault(KeyTagset, "penn")
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyCacheSize, lemmatizer.DefaultAnalyzerCacheSize)
	v.SetDefault(KeyLookupCommand, lemmatizer.DefaultLookupCommand)
	v.SetDefault(KeyInputType, lemmatizer.DefaultInputType)
	v.SetDefault(KeyPOSFeature, lemmatizer.DefaultPOSFeature)
	v.SetDefault(KeyLemmaFeature, lemmatizer.DefaultLemmaFeature)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyWorkers, 1)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// The switches have historic names without the underscore.
	v.BindEnv(KeyNoLists, EnvPrefix+"_NOLISTS", EnvPrefix+"_NO_LISTS")
	v.BindEnv(KeyNoAnalyzer, EnvPrefix+"_NOANALYZER", EnvPrefix+"_NO_ANALYZER")
	return v
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: reading config file %s: %v", lemmatizer.ErrConfig, path, err)
	}
	return nil
}

// Load resolves v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	tagset, err := lemmatizer.ParseTagset(v.GetString(KeyTagset))
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}
	workers := v.GetInt(KeyWorkers)
	if workers < 1 {
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", lemmatizer.ErrConfig, workers)
	}
	if strings.TrimSpace(v.GetString(KeyInputType)) == "" {
		return nil, fmt.Errorf("%w: %s must not be empty", lemmatizer.ErrConfig, KeyInputType)
	}

	return &Config{
		ResourceDir:    v.GetString(KeyResources),
		Language:       v.GetString(KeyLanguage),
		Tagset:         tagset,
		NoLists:        Disabled(v.GetString(KeyNoLists)),
		NoAnalyzer:     Disabled(v.GetString(KeyNoAnalyzer)),
		Strict:         v.GetBool(KeyStrict),
		CacheSize:      v.GetInt(KeyCacheSize),
		LookupCommand:  v.GetString(KeyLookupCommand),
		InputSet:       v.GetString(KeyInputSet),
		InputType:      v.GetString(KeyInputType),
		ContainingType: v.GetString(KeyContainingType),
		TextFeature:    v.GetString(KeyTextFeature),
		POSFeature:     v.GetString(KeyPOSFeature),
		LemmaFeature:   v.GetString(KeyLemmaFeature),
		LogLevel:       level,
		Workers:        workers,
	}, nil
}

// Disabled reports whether a switch value turns a feature off: any
// non-empty value other than "false" does.
func Disabled(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && !strings.EqualFold(value, "false")
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", lemmatizer.ErrConfig, s)
	}
	return level, nil
}

// LoaderOptions translates c for lemmatizer.NewLoader.
func (c *Config) LoaderOptions(logger *slog.Logger) lemmatizer.LoaderOptions {
	return lemmatizer.LoaderOptions{
		ResourceDir:         c.ResourceDir,
		DisableDictionaries: c.NoLists,
		DisableAnalyzer:     c.NoAnalyzer,
		StrictDictionaries:  c.Strict,
		AnalyzerCacheSize:   c.CacheSize,
		ModelFormats: lemmatizer.ModelFormatsWithCommand(lemmatizer.CommandOptions{
			Command: c.LookupCommand,
		}),
		Logger: logger,
	}
}

// ProcessorConfig translates c for lemmatizer.NewProcessor.
func (c *Config) ProcessorConfig() lemmatizer.ProcessorConfig {
	return lemmatizer.ProcessorConfig{
		InputSet:       c.InputSet,
		InputType:      c.InputType,
		ContainingType: c.ContainingType,
		TextFeature:    c.TextFeature,
		POSFeature:     c.POSFeature,
		LemmaFeature:   c.LemmaFeature,
		Language:       c.Language,
		Tagset:         c.Tagset,
	}
}
