package lemmatizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/annotation"
)

// Defaults for ProcessorConfig.
const (
	DefaultInputType    = annotation.TypeToken
	DefaultPOSFeature   = annotation.FeatureCategory
	DefaultLemmaFeature = "lemma"

	// KindFeature is the token feature holding word, number or punct.
	KindFeature = annotation.FeatureKind
	// StatusFeature receives the resolution status of every lemmatized token.
	StatusFeature = "lemmatizer.status"
)

// Token is the view of a host annotation the processor needs.
type Token interface {
	Feature(name string) (string, bool)
	SetFeature(name, value string)
}

// ProcessorConfig names where tokens are read from and written to.
type ProcessorConfig struct {
	// InputSet is the annotation set name; empty is the default set.
	InputSet string
	// InputType is the token annotation type and must not be empty.
	InputType string
	// ContainingType optionally restricts processing to tokens inside
	// annotations of this type, e.g. Sentence.
	ContainingType string
	// TextFeature holds the token text; empty means the covered span.
	TextFeature string
	// POSFeature defaults to DefaultPOSFeature.
	POSFeature string
	// LemmaFeature defaults to DefaultLemmaFeature.
	LemmaFeature string
	// Language defaults to DefaultLanguage.
	Language string
	Tagset   Tagset
}

// ProcessorOption customizes a Processor.
type ProcessorOption func(*Processor)

// WithLogger sets the logger used by the processor and its resolver.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = logger }
}

// WithNormalizer applies n to every token text before resolution.
func WithNormalizer(n *Normalizer) ProcessorOption {
	return func(p *Processor) { p.normalizer = n }
}

// Processor lemmatizes the tokens of annotated documents. Like its
// Resolver it belongs to one goroutine; give each worker its own Processor
// over a shared ResourceProvider.
type Processor struct {
	cfg        ProcessorConfig
	resolver   *Resolver
	normalizer *Normalizer
	logger     *slog.Logger
}

// NewProcessor validates cfg and creates a processor.
func NewProcessor(provider ResourceProvider, cfg ProcessorConfig, opts ...ProcessorOption) (*Processor, error) {
	if strings.TrimSpace(cfg.InputType) == "" {
		return nil, fmt.Errorf("%w: input annotation type must not be empty", ErrConfig)
	}
	if strings.TrimSpace(cfg.POSFeature) == "" {
		cfg.POSFeature = DefaultPOSFeature
	}
	if strings.TrimSpace(cfg.LemmaFeature) == "" {
		cfg.LemmaFeature = DefaultLemmaFeature
	}
	cfg.TextFeature = strings.TrimSpace(cfg.TextFeature)

	p := &Processor{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.resolver = NewResolver(provider, ResolverConfig{
		Language: cfg.Language,
		Tagset:   cfg.Tagset,
		Logger:   p.logger,
	})
	return p, nil
}

// Config returns the effective configuration.
func (p *Processor) Config() ProcessorConfig {
	return p.cfg
}

// Resolver exposes the processor's resolver.
func (p *Processor) Resolver() *Resolver {
	return p.resolver
}

// SetLanguage switches the language for subsequent documents.
func (p *Processor) SetLanguage(code string) {
	p.cfg.Language = code
	p.resolver.SetLanguage(code)
}

// Prepare loads the resources for the configured language. Process calls
// it too; calling it up front reports setup errors before the first
// document.
func (p *Processor) Prepare(ctx context.Context) error {
	return p.resolver.Prepare(ctx)
}

// Process lemmatizes every token of doc that carries a POS tag, writing the
// lemma feature and StatusFeature. It fails only if resources cannot be
// loaded, in which case no token has been touched.
func (p *Processor) Process(ctx context.Context, doc *annotation.Document) error {
	if err := p.resolver.Prepare(ctx); err != nil {
		return err
	}

	set := doc.Sets[p.cfg.InputSet]
	tokens := set.Get(p.cfg.InputType)
	if p.cfg.ContainingType == "" {
		p.lemmatizeAll(doc, tokens)
		return nil
	}
	for _, container := range set.Get(p.cfg.ContainingType) {
		p.lemmatizeAll(doc, annotation.Contained(tokens, container))
	}
	return nil
}

func (p *Processor) lemmatizeAll(doc *annotation.Document, tokens []*annotation.Annotation) {
	for _, tok := range tokens {
		text, ok := p.cfg.textOf(tok)
		if !ok {
			text = CleanWhitespace(doc.Span(tok))
		}
		p.annotate(tok, text)
	}
}

// Annotate lemmatizes a single token whose text the caller supplies. Tokens
// without a POS tag are left untouched and reported as not handled.
func (p *Processor) Annotate(ctx context.Context, tok Token, text string) (Resolution, bool, error) {
	if err := p.resolver.Prepare(ctx); err != nil {
		return Resolution{}, false, err
	}
	res, ok := p.annotate(tok, text)
	return res, ok, nil
}

func (p *Processor) annotate(tok Token, text string) (Resolution, bool) {
	pos, ok := tok.Feature(p.cfg.POSFeature)
	if !ok || strings.TrimSpace(pos) == "" {
		return Resolution{}, false
	}
	kind, _ := tok.Feature(KindFeature)

	res := p.resolver.resolve(Word{Text: p.normalizer.Normalize(text), Tag: pos, Kind: kind})
	tok.SetFeature(p.cfg.LemmaFeature, res.Lemma)
	tok.SetFeature(StatusFeature, res.Status)
	return res, true
}

func (c ProcessorConfig) textOf(tok Token) (string, bool) {
	if c.TextFeature == "" {
		return "", false
	}
	return tok.Feature(c.TextFeature)
}

// Stats returns the counters of the current run.
func (p *Processor) Stats() StatsSnapshot {
	return p.resolver.Stats()
}

// ResetStats starts a new run.
func (p *Processor) ResetStats() {
	p.resolver.ResetStats()
}

// Report logs the counters of the current run.
func (p *Processor) Report() {
	LogStats(p.logger, p.resolver.Stats())
}

// LogStats logs a run summary at info level.
func LogStats(logger *slog.Logger, s StatsSnapshot) {
	logger.Info("lemmatizer run finished",
		"tokens", s.Tokens,
		"analyzer_calls", s.AnalyzerCalls,
		"analyzer_errors", s.AnalyzerErrors,
		"list_lookups", s.ListLookups,
		"list_misses", s.ListMisses,
	)
}
