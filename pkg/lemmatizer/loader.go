package lemmatizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
)

// Resource directory layout below LoaderOptions.ResourceDir.
const (
	DictionaryDirName = "dictionaries"
	ModelDirName      = "lemmaModels"
)

// legacyDictionaryNames are the older per-category file names, tried when
// "<CAT>-Dict.txt.gz" is absent.
var legacyDictionaryNames = map[Category]string{
	Adj:  "adjDic.txt.gz",
	Adp:  "adpDic.txt.gz",
	Adv:  "advDic.txt.gz",
	Det:  "detDic.txt.gz",
	Noun: "nounDic.txt.gz",
	Part: "partDic.txt.gz",
	Pron: "pronounDic.txt.gz",
	Verb: "verbDic.txt.gz",
}

// DictionaryFileNames returns the file names probed for cat, in order.
func DictionaryFileNames(cat Category) []string {
	names := []string{cat.String() + "-Dict.txt.gz"}
	if legacy, ok := legacyDictionaryNames[cat]; ok {
		names = append(names, legacy)
	}
	return names
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// ResourceDir holds dictionaries/<lang>/ and lemmaModels/.
	ResourceDir string

	// DisableDictionaries substitutes empty dictionaries for every category.
	DisableDictionaries bool
	// DisableAnalyzer leaves every bundle without an analyzer.
	DisableAnalyzer bool
	// StrictDictionaries makes a missing dictionaries/<lang> directory an
	// ErrConfig instead of a silent fallback to empty dictionaries.
	StrictDictionaries bool

	// AnalyzerCacheSize is the LRU size put in front of each analyzer;
	// zero or less disables memoization.
	AnalyzerCacheSize int
	// ModelFormats defaults to DefaultModelFormats().
	ModelFormats []ModelFormat

	Logger *slog.Logger
}

// Loader builds and caches Resources per language code. Each code is built
// at most once: concurrent callers share a single in-flight build and all
// receive the same bundle. Bundles stay cached until Close.
type Loader struct {
	opts   LoaderOptions
	logger *slog.Logger
	group  singleflight.Group

	mu     sync.Mutex
	loaded map[string]*Resources
}

// NewLoader creates a loader; nothing is read until Load.
func NewLoader(opts LoaderOptions) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ModelFormats == nil {
		opts.ModelFormats = DefaultModelFormats()
	}
	return &Loader{
		opts:   opts,
		logger: logger,
		loaded: make(map[string]*Resources),
	}
}

// CanonicalLanguage reduces a language code to its lowercase base
// language ("EN" and "en-GB" both become "en"). Codes that do not parse as
// BCP 47 are only trimmed and lowercased.
func CanonicalLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

// Load returns the bundle for lang, building it on first use.
func (l *Loader) Load(ctx context.Context, lang string) (*Resources, error) {
	code := CanonicalLanguage(lang)
	if code == "" {
		return nil, fmt.Errorf("%w: empty language code", ErrConfig)
	}

	if r := l.cached(code); r != nil {
		return r, nil
	}

	ch := l.group.DoChan(code, func() (any, error) {
		if r := l.cached(code); r != nil {
			return r, nil
		}
		r, err := l.build(code)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.loaded[code] = r
		l.mu.Unlock()
		return r, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Resources), nil
	}
}

func (l *Loader) cached(code string) *Resources {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded[code]
}

// Loaded returns the language codes built so far.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	codes := make([]string, 0, len(l.loaded))
	for code := range l.loaded {
		codes = append(codes, code)
	}
	return codes
}

// Close releases every cached bundle. Resolvers must not be used afterwards.
func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []error
	for code, r := range l.loaded {
		errs = append(errs, r.Close())
		delete(l.loaded, code)
	}
	return errors.Join(errs...)
}

func (l *Loader) build(code string) (*Resources, error) {
	dicts, err := l.loadDictionaries(code)
	if err != nil {
		return nil, err
	}
	analyzer, err := l.loadAnalyzer(code)
	if err != nil {
		for _, d := range dicts {
			d.Close()
		}
		return nil, err
	}
	return NewResources(code, dicts, analyzer), nil
}

func (l *Loader) loadDictionaries(code string) (map[Category]*Dictionary, error) {
	if l.opts.DisableDictionaries {
		l.logger.Debug("dictionaries disabled, using empty lists", "lang", code)
		return nil, nil
	}

	dir := filepath.Join(l.opts.ResourceDir, DictionaryDirName, code)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if l.opts.StrictDictionaries {
			return nil, fmt.Errorf("%w: no dictionaries found for language %s in %s", ErrConfig, code, dir)
		}
		l.logger.Debug("dictionary directory does not exist, not using lists", "lang", code, "dir", dir)
		return nil, nil
	}

	l.logger.Debug("loading dictionaries", "lang", code, "dir", dir)
	dicts := make(map[Category]*Dictionary, len(DictionaryCategories))
	for _, cat := range DictionaryCategories {
		path, ok := firstExisting(dir, DictionaryFileNames(cat))
		if !ok {
			l.logger.Debug("dictionary file does not exist", "lang", code, "category", cat.String())
			continue
		}
		d, err := LoadDictionary(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			for _, loaded := range dicts {
				loaded.Close()
			}
			return nil, fmt.Errorf("%w: could not read dictionary %s: %v", ErrResourceLoad, path, err)
		}
		dicts[cat] = d
	}
	l.logger.Debug("dictionaries loaded", "lang", code, "count", len(dicts))
	return dicts, nil
}

func (l *Loader) loadAnalyzer(code string) (Analyzer, error) {
	if l.opts.DisableAnalyzer {
		l.logger.Debug("analyzer disabled", "lang", code)
		return nil, nil
	}

	dir := filepath.Join(l.opts.ResourceDir, ModelDirName)
	for _, format := range l.opts.ModelFormats {
		names := make([]string, len(format.Suffixes))
		for i, suffix := range format.Suffixes {
			names[i] = code + suffix
		}
		path, ok := firstExisting(dir, names)
		if !ok {
			continue
		}

		l.logger.Debug("loading analyzer model", "lang", code, "format", format.Name, "path", path)
		analyzer, err := format.Open(path, code)
		if err != nil {
			return nil, fmt.Errorf("%w: could not load analyzer model %s: %v", ErrResourceLoad, path, err)
		}
		if l.opts.AnalyzerCacheSize > 0 {
			cached, err := NewCachedAnalyzer(analyzer, l.opts.AnalyzerCacheSize)
			if err != nil {
				closeAnalyzer(analyzer)
				return nil, err
			}
			analyzer = cached
		}
		l.logger.Debug("analyzer model loaded", "lang", code)
		return analyzer, nil
	}

	l.logger.Debug("no analyzer model for language", "lang", code, "dir", dir)
	return nil, nil
}

func firstExisting(dir string, names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
