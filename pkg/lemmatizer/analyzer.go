package lemmatizer

import (
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Analyzer returns candidate morphological analyses for a word, best first.
// The resolver trusts the order and never re-ranks. An error affects only
// the word being analyzed.
type Analyzer interface {
	Analyze(word string) ([]string, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(word string) ([]string, error)

// Analyze calls f(word).
func (f AnalyzerFunc) Analyze(word string) ([]string, error) {
	return f(word)
}

// ModelFormat describes an analyzer model file type. The loader looks for
// "<lang><suffix>" in the model directory for each suffix in order.
type ModelFormat struct {
	Name     string
	Suffixes []string
	Open     func(path, lang string) (Analyzer, error)
}

// DefaultModelFormats returns the built-in formats in probing order: the
// lexicon format first, then optimized-lookup transducers run through
// hfst-optimized-lookup.
func DefaultModelFormats() []ModelFormat {
	return ModelFormatsWithCommand(CommandOptions{})
}

// ModelFormatsWithCommand is DefaultModelFormats with the lookup process
// configured by opts.
func ModelFormatsWithCommand(opts CommandOptions) []ModelFormat {
	return []ModelFormat{
		{
			Name:     "lexicon",
			Suffixes: []string{".lex.gz", ".lex"},
			Open: func(path, _ string) (Analyzer, error) {
				return OpenLexicon(path)
			},
		},
		{
			Name:     "hfst-optimized-lookup",
			Suffixes: []string{".hfst.ol.gz", ".hfst.ol"},
			Open: func(path, _ string) (Analyzer, error) {
				return NewCommandAnalyzer(path, opts)
			},
		},
	}
}

// DefaultAnalyzerCacheSize is the default number of memoized analyses.
const DefaultAnalyzerCacheSize = 50_000

// CachedAnalyzer memoizes successful analyses of an underlying analyzer.
// Errors are not cached. The LRU is safe for concurrent use, so one
// CachedAnalyzer can back every resolver sharing a language.
type CachedAnalyzer struct {
	next  Analyzer
	cache *lru.Cache[string, []string]
}

// NewCachedAnalyzer wraps next with an LRU of the given size.
func NewCachedAnalyzer(next Analyzer, size int) (*CachedAnalyzer, error) {
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &CachedAnalyzer{next: next, cache: cache}, nil
}

// Analyze returns the cached analyses for word or asks the wrapped analyzer.
func (c *CachedAnalyzer) Analyze(word string) ([]string, error) {
	if result, ok := c.cache.Get(word); ok {
		return result, nil
	}
	result, err := c.next.Analyze(word)
	if err != nil {
		return nil, err
	}
	c.cache.Add(word, result)
	return result, nil
}

// Len returns the number of cached words.
func (c *CachedAnalyzer) Len() int {
	return c.cache.Len()
}

// Purge empties the cache.
func (c *CachedAnalyzer) Purge() {
	c.cache.Purge()
}

// Close closes the wrapped analyzer if it holds resources.
func (c *CachedAnalyzer) Close() error {
	c.cache.Purge()
	return closeAnalyzer(c.next)
}

func closeAnalyzer(a Analyzer) error {
	if closer, ok := a.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
