package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Language != "en" || cfg.Tagset != lemmatizer.TagsetPenn {
		t.Errorf("language/tagset = %q/%v, want en/ptb", cfg.Language, cfg.Tagset)
	}
	if cfg.NoLists || cfg.NoAnalyzer || cfg.Strict {
		t.Errorf("switches = %v/%v/%v, want all off", cfg.NoLists, cfg.NoAnalyzer, cfg.Strict)
	}
	if cfg.CacheSize != lemmatizer.DefaultAnalyzerCacheSize {
		t.Errorf("CacheSize = %d", cfg.CacheSize)
	}
	if cfg.InputType != "Token" || cfg.POSFeature != "category" || cfg.LemmaFeature != "lemma" {
		t.Errorf("features = %q/%q/%q", cfg.InputType, cfg.POSFeature, cfg.LemmaFeature)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.Workers != 1 {
		t.Errorf("log level/workers = %v/%d", cfg.LogLevel, cfg.Workers)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("LEMMATIZER_NOLISTS", "yes")
	t.Setenv("LEMMATIZER_NOANALYZER", "FALSE")
	t.Setenv("LEMMATIZER_LANGUAGE", "de")
	t.Setenv("LEMMATIZER_TAGSET", "upos")
	t.Setenv("LEMMATIZER_CACHE_SIZE", "0")

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.NoLists {
		t.Error("LEMMATIZER_NOLISTS=yes did not disable lists")
	}
	if cfg.NoAnalyzer {
		t.Error("LEMMATIZER_NOANALYZER=FALSE disabled the analyzer")
	}
	if cfg.Language != "de" || cfg.Tagset != lemmatizer.TagsetUniversal || cfg.CacheSize != 0 {
		t.Errorf("language/tagset/cache = %q/%v/%d", cfg.Language, cfg.Tagset, cfg.CacheSize)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lemmatizer.yaml")
	content := `resources: /srv/lemmatizer
language: fr
tagset: ptb
no_analyzer: true
strict: true
containing_type: Sentence
log_level: debug
workers: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ResourceDir != "/srv/lemmatizer" || cfg.Language != "fr" {
		t.Errorf("resources/language = %q/%q", cfg.ResourceDir, cfg.Language)
	}
	if !cfg.NoAnalyzer || !cfg.Strict || cfg.NoLists {
		t.Errorf("switches = lists:%v analyzer:%v strict:%v", cfg.NoLists, cfg.NoAnalyzer, cfg.Strict)
	}
	if cfg.ContainingType != "Sentence" || cfg.LogLevel != slog.LevelDebug || cfg.Workers != 4 {
		t.Errorf("containing/level/workers = %q/%v/%d", cfg.ContainingType, cfg.LogLevel, cfg.Workers)
	}

	opts := cfg.LoaderOptions(nil)
	if opts.ResourceDir != "/srv/lemmatizer" || !opts.DisableAnalyzer || !opts.StrictDictionaries || len(opts.ModelFormats) == 0 {
		t.Errorf("LoaderOptions() = %+v", opts)
	}
	pc := cfg.ProcessorConfig()
	if pc.ContainingType != "Sentence" || pc.Language != "fr" || pc.InputType != "Token" {
		t.Errorf("ProcessorConfig() = %+v", pc)
	}

	if err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, lemmatizer.ErrConfig) {
		t.Errorf("ReadFile(missing) error = %v, want ErrConfig", err)
	}
	if err := ReadFile(New(), ""); err != nil {
		t.Errorf("ReadFile(\"\") error: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{KeyTagset, "stts"},
		{KeyLogLevel, "loud"},
		{KeyWorkers, 0},
		{KeyInputType, " "},
	}

	for _, tt := range tests {
		v := New()
		v.Set(tt.key, tt.value)
		if _, err := Load(v); !errors.Is(err, lemmatizer.ErrConfig) {
			t.Errorf("Load(%s=%v) error = %v, want ErrConfig", tt.key, tt.value, err)
		}
	}
}

func TestDisabled(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"false", false},
		{"False", false},
		{" false ", false},
		{"true", true},
		{"1", true},
		{"0", true},
		{"no", true},
	}

	for _, tt := range tests {
		if got := Disabled(tt.input); got != tt.expected {
			t.Errorf("Disabled(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
