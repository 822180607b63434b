package lemmatizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/annotation"
)

// Token kinds as set by the tokenizer upstream.
const (
	KindWord   = annotation.KindWord
	KindNumber = annotation.KindNumber
	KindPunct  = annotation.KindPunct
)

// Status parts joined with "-" into Resolution.Status.
const (
	StatusFound         = "FOUND"
	StatusNotFound      = "NOTFOUND"
	StatusAnalyzerHave  = "HFST_HAVE"
	StatusAnalyzerEmpty = "HFST_EMPTY"
	StatusAnalyzerError = "HFST_ERROR"
	StatusNoAnalyzer    = "NOHFST"
	StatusUnhandledPOS  = "UNHANDLEDPOS"
)

// DefaultLanguage is used when no language code is configured.
const DefaultLanguage = "en"

// Source tells where a lemma came from.
type Source int

const (
	// SourceKind: numbers and punctuation are their own lemma.
	SourceKind Source = iota
	SourceDictionary
	SourceAnalyzer
	// SourceIdentity: nothing matched and the surface form was kept.
	SourceIdentity
)

func (s Source) String() string {
	switch s {
	case SourceKind:
		return "kind"
	case SourceDictionary:
		return "dictionary"
	case SourceAnalyzer:
		return "analyzer"
	case SourceIdentity:
		return "identity"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Word is the input to resolution: surface text, raw POS tag and token kind.
type Word struct {
	Text string
	Tag  string
	Kind string
}

// Resolution is the lemma chosen for a Word and a status describing the
// path taken, e.g. "NOUN-NOTFOUND-HFST_HAVE".
type Resolution struct {
	Lemma  string `json:"lemma"`
	Status string `json:"status"`
	Source Source `json:"-"`
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// Language defaults to DefaultLanguage.
	Language string
	Tagset   Tagset
	Logger   *slog.Logger
}

// Resolver turns words into lemmas: dictionary lookup first, then the
// analyzer, then the surface form itself. It keeps the active language's
// resources and the run counters, and belongs to a single goroutine; run one
// Resolver per worker and share the ResourceProvider between them.
type Resolver struct {
	provider ResourceProvider
	tagset   Tagset
	logger   *slog.Logger

	lang   string
	active *Resources
	stats  Stats
}

// NewResolver creates a resolver. Resources are loaded lazily by Prepare
// or the first Resolve.
func NewResolver(provider ResourceProvider, cfg ResolverConfig) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lang := strings.TrimSpace(cfg.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Resolver{
		provider: provider,
		tagset:   cfg.Tagset,
		logger:   logger,
		lang:     lang,
	}
}

// Language returns the configured language code.
func (r *Resolver) Language() string {
	return r.lang
}

// SetLanguage switches the language. The active resources are dropped and
// the new language's are loaded on the next Prepare or Resolve.
func (r *Resolver) SetLanguage(code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = DefaultLanguage
	}
	if code != r.lang {
		r.lang = code
		r.active = nil
	}
}

// Prepare loads the resources for the current language unless they are
// already active. Loading errors are configuration or resource errors and
// should abort the run before any token is processed.
func (r *Resolver) Prepare(ctx context.Context) error {
	if r.active != nil {
		return nil
	}
	res, err := r.provider.Load(ctx, r.lang)
	if err != nil {
		return err
	}
	r.active = res
	return nil
}

// Resources returns the active bundle, or nil before Prepare.
func (r *Resolver) Resources() *Resources {
	return r.active
}

// Resolve finds the lemma for w. The only possible error comes from loading
// resources; problems with an individual word are absorbed into the
// resolution status.
func (r *Resolver) Resolve(ctx context.Context, w Word) (Resolution, error) {
	if err := r.Prepare(ctx); err != nil {
		return Resolution{}, err
	}
	return r.resolve(w), nil
}

func (r *Resolver) resolve(w Word) Resolution {
	r.stats.tokens.Add(1)

	kind := strings.ToLower(strings.TrimSpace(w.Kind))
	if kind == KindNumber || kind == KindPunct {
		return Resolution{Lemma: w.Text, Status: kind, Source: SourceKind}
	}

	var status string
	cat := r.tagset.DictionaryCategory(w.Tag)
	if cat.HasDictionary() {
		status = cat.String()
		r.stats.listLookups.Add(1)
		if lemma, ok := r.active.Dictionary(cat).Lookup(w.Text); ok {
			return Resolution{Lemma: lemma, Status: status + "-" + StatusFound, Source: SourceDictionary}
		}
		r.stats.listMisses.Add(1)
	} else {
		status = StatusUnhandledPOS + "-" + w.Tag
	}
	status += "-" + StatusNotFound

	analyzer := r.active.Analyzer()
	if analyzer == nil {
		return Resolution{Lemma: w.Text, Status: status + "-" + StatusNoAnalyzer, Source: SourceIdentity}
	}

	r.stats.analyzerCalls.Add(1)
	lemma, err := r.analyze(analyzer, w)
	if err != nil {
		r.stats.analyzerErrors.Add(1)
		r.logger.Error("analyzer failed", "token", w.Text, "tag", w.Tag, "error", err)
		return Resolution{Lemma: w.Text, Status: status + "-" + StatusAnalyzerError, Source: SourceIdentity}
	}
	if strings.TrimSpace(lemma) == "" {
		return Resolution{Lemma: w.Text, Status: status + "-" + StatusAnalyzerEmpty, Source: SourceIdentity}
	}
	return Resolution{Lemma: lemma, Status: status + "-" + StatusAnalyzerHave, Source: SourceAnalyzer}
}

// analyze runs the analyzer and returns the first extracted lemma, or ""
// when no analysis yields one. A panic inside the analyzer is reported as
// an error so one bad word cannot abort a document.
func (r *Resolver) analyze(analyzer Analyzer, w Word) (lemma string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("analyzer panic: %v", p)
		}
	}()

	analyses, err := analyzer.Analyze(w.Text)
	if err != nil {
		return "", err
	}
	cat := r.tagset.AnalyzerCategory(w.Tag)
	for _, analysis := range analyses {
		if lemma, ok := Extract(r.active.Language(), cat, w.Text, analysis); ok {
			return lemma, nil
		}
	}
	return "", nil
}

// Stats returns the counters accumulated since creation or ResetStats.
func (r *Resolver) Stats() StatsSnapshot {
	return r.stats.Snapshot()
}

// ResetStats zeroes the counters at the start of a run.
func (r *Resolver) ResetStats() {
	r.stats.Reset()
}
