package lemmatizer

import (
	"context"
	"errors"
)

// ResourceProvider hands out the resources for a language code. Returned
// bundles are complete and read-only.
type ResourceProvider interface {
	Load(ctx context.Context, lang string) (*Resources, error)
}

// Resources is the immutable bundle for one language: a dictionary for each
// of DictionaryCategories and an optional analyzer. It may be shared by any
// number of resolvers.
type Resources struct {
	lang     string
	dicts    map[Category]*Dictionary
	analyzer Analyzer
}

// NewResources assembles a bundle. Categories missing from dicts get an
// empty dictionary; a nil analyzer means the analyzer fallback is off.
func NewResources(lang string, dicts map[Category]*Dictionary, analyzer Analyzer) *Resources {
	r := &Resources{
		lang:     lang,
		dicts:    make(map[Category]*Dictionary, len(DictionaryCategories)),
		analyzer: analyzer,
	}
	for _, cat := range DictionaryCategories {
		if d, ok := dicts[cat]; ok && d != nil {
			r.dicts[cat] = d
		} else {
			r.dicts[cat] = EmptyDictionary()
		}
	}
	return r
}

// Language returns the language code the bundle was built for.
func (r *Resources) Language() string {
	return r.lang
}

// Dictionary returns the dictionary for cat, or nil if cat has none.
func (r *Resources) Dictionary(cat Category) *Dictionary {
	return r.dicts[cat]
}

// Analyzer returns the analyzer, or nil if none is loaded.
func (r *Resources) Analyzer() Analyzer {
	return r.analyzer
}

// Close releases dictionaries and the analyzer.
func (r *Resources) Close() error {
	var errs []error
	for _, d := range r.dicts {
		errs = append(errs, d.Close())
	}
	if r.analyzer != nil {
		errs = append(errs, closeAnalyzer(r.analyzer))
	}
	return errors.Join(errs...)
}

// StaticProvider serves fixed bundles keyed by language code.
type StaticProvider map[string]*Resources

// Load returns the bundle for lang or an empty one.
func (p StaticProvider) Load(_ context.Context, lang string) (*Resources, error) {
	if r, ok := p[lang]; ok {
		return r, nil
	}
	return NewResources(lang, nil, nil), nil
}
