package lemmatizer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/annotation"
)

func addToken(t *testing.T, doc *annotation.Document, start, end int, features map[string]string) *annotation.Annotation {
	t.Helper()
	a, err := doc.Add("", annotation.TypeToken, start, end, features)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	return a
}

func TestNewProcessor_RequiresInputType(t *testing.T) {
	_, err := NewProcessor(StaticProvider{}, ProcessorConfig{InputType: "  "})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("NewProcessor(blank input type) error = %v, want ErrConfig", err)
	}
}

func TestNewProcessor_Defaults(t *testing.T) {
	p, err := NewProcessor(StaticProvider{}, ProcessorConfig{InputType: "Token"}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
	cfg := p.Config()
	if cfg.POSFeature != "category" || cfg.LemmaFeature != "lemma" {
		t.Errorf("defaults = %q/%q, want category/lemma", cfg.POSFeature, cfg.LemmaFeature)
	}
	if p.Resolver().Language() != "en" {
		t.Errorf("language = %q, want en", p.Resolver().Language())
	}
}

func TestProcessor_Process(t *testing.T) {
	provider := StaticProvider{"en": testResources(t, "en", englishAnalyses, nil)}
	p, err := NewProcessor(provider, ProcessorConfig{InputType: annotation.TypeToken}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	doc := annotation.NewDocument("test", "Mice went home 42 dogs")
	mice := addToken(t, doc, 0, 4, map[string]string{"category": "NNS", "kind": "word"})
	went := addToken(t, doc, 5, 9, map[string]string{"category": "VBD"})
	home := addToken(t, doc, 10, 14, map[string]string{"kind": "word"})
	num := addToken(t, doc, 15, 17, map[string]string{"category": "CD", "kind": "Number"})
	dogs := addToken(t, doc, 18, 22, map[string]string{"category": " "})

	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	tests := []struct {
		tok    *annotation.Annotation
		lemma  string
		status string
	}{
		{mice, "mouse", "NOUN-FOUND"},
		{went, "go", "VERB-FOUND"},
		{num, "42", "number"},
	}
	for _, tt := range tests {
		lemma, _ := tt.tok.Feature("lemma")
		status, _ := tt.tok.Feature(StatusFeature)
		if lemma != tt.lemma || status != tt.status {
			t.Errorf("token %q: lemma=%q status=%q, want %q %q", doc.Span(tt.tok), lemma, status, tt.lemma, tt.status)
		}
	}

	for _, tok := range []*annotation.Annotation{home, dogs} {
		if _, ok := tok.Feature("lemma"); ok {
			t.Errorf("token %q without POS tag was lemmatized", doc.Span(tok))
		}
		if _, ok := tok.Feature(StatusFeature); ok {
			t.Errorf("token %q without POS tag got a status", doc.Span(tok))
		}
	}

	if s := p.Stats(); s.Tokens != 3 {
		t.Errorf("Tokens = %d, want 3", s.Tokens)
	}
}

func TestProcessor_TextSources(t *testing.T) {
	provider := StaticProvider{"en": testResources(t, "en", englishAnalyses, nil)}
	p, err := NewProcessor(provider, ProcessorConfig{
		InputSet:     "pos",
		InputType:    "Word",
		TextFeature:  "string",
		POSFeature:   "tag",
		LemmaFeature: "root",
	}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	doc := annotation.NewDocument("test", "Mice\n went")
	withText, _ := doc.Add("pos", "Word", 0, 4, map[string]string{"tag": "NN", "string": "dogs"})
	fromSpan, _ := doc.Add("pos", "Word", 4, 10, map[string]string{"tag": "VBD"})
	other, _ := doc.Add("", "Word", 0, 4, map[string]string{"tag": "NN"})

	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	if got, _ := withText.Feature("root"); got != "dog" {
		t.Errorf("text feature token lemma = %q, want %q", got, "dog")
	}
	// The span "\n went" is cleaned to "went".
	if got, _ := fromSpan.Feature("root"); got != "go" {
		t.Errorf("span token lemma = %q, want %q", got, "go")
	}
	if _, ok := other.Feature("root"); ok {
		t.Error("token outside the input set was lemmatized")
	}
}

func TestProcessor_ContainingType(t *testing.T) {
	provider := StaticProvider{"en": testResources(t, "en", nil, nil)}
	p, err := NewProcessor(provider, ProcessorConfig{
		InputType:      annotation.TypeToken,
		ContainingType: annotation.TypeSentence,
	}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	doc := annotation.NewDocument("test", "mice went")
	doc.Add("", annotation.TypeSentence, 0, 4, nil)
	inside := addToken(t, doc, 0, 4, map[string]string{"category": "NNS"})
	outside := addToken(t, doc, 5, 9, map[string]string{"category": "VBD"})

	if err := p.Process(context.Background(), doc); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if got, _ := inside.Feature("lemma"); got != "mouse" {
		t.Errorf("token inside sentence lemma = %q, want %q", got, "mouse")
	}
	if _, ok := outside.Feature("lemma"); ok {
		t.Error("token outside every sentence was lemmatized")
	}
}

func TestProcessor_LoadErrorTouchesNothing(t *testing.T) {
	p, err := NewProcessor(failingProvider{ErrConfig}, ProcessorConfig{InputType: annotation.TypeToken}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	doc := annotation.NewDocument("test", "mice")
	tok := addToken(t, doc, 0, 4, map[string]string{"category": "NNS"})
	if err := p.Process(context.Background(), doc); !errors.Is(err, ErrConfig) {
		t.Fatalf("Process() error = %v, want ErrConfig", err)
	}
	if len(tok.Features) != 1 {
		t.Errorf("token features = %v, want untouched", tok.Features)
	}
}

func TestProcessor_Normalizer(t *testing.T) {
	nouns, err := NewDictionary([]Entry{{Lemma: "Mädchen", Forms: []string{"mädchen"}}})
	if err != nil {
		t.Fatalf("Failed to build dictionary: %v", err)
	}
	provider := StaticProvider{"de": NewResources("de", map[Category]*Dictionary{Noun: nouns}, nil)}

	decomposed := "Ma\u0308dchen"
	for _, tt := range []struct {
		opts   []ProcessorOption
		status string
	}{
		{nil, "NOUN-NOTFOUND-NOHFST"},
		{[]ProcessorOption{WithNormalizer(NewNormalizerWithSteps(NFC))}, "NOUN-FOUND"},
	} {
		opts := append([]ProcessorOption{WithLogger(quietLogger())}, tt.opts...)
		p, err := NewProcessor(provider, ProcessorConfig{InputType: "Token", Language: "de"}, opts...)
		if err != nil {
			t.Fatalf("NewProcessor() error: %v", err)
		}
		tok := &annotation.Annotation{Features: map[string]string{"category": "NN"}}
		res, ok, err := p.Annotate(context.Background(), tok, decomposed)
		if err != nil || !ok {
			t.Fatalf("Annotate() = %v, %v", ok, err)
		}
		if res.Status != tt.status {
			t.Errorf("Annotate(%q) status = %q, want %q", decomposed, res.Status, tt.status)
		}
	}
}

func TestProcessor_SetLanguageAndReport(t *testing.T) {
	provider := StaticProvider{
		"en": testResources(t, "en", englishAnalyses, nil),
		"de": NewResources("de", nil, nil),
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p, err := NewProcessor(provider, ProcessorConfig{InputType: "Token"}, WithLogger(logger))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	tok := &annotation.Annotation{Features: map[string]string{"category": "NNS"}}
	p.Annotate(context.Background(), tok, "mice")
	if got, _ := tok.Feature("lemma"); got != "mouse" {
		t.Errorf("en lemma = %q, want mouse", got)
	}

	p.SetLanguage("de")
	p.Annotate(context.Background(), tok, "mice")
	if got, _ := tok.Feature("lemma"); got != "mice" {
		t.Errorf("de lemma = %q, want mice", got)
	}

	p.Report()
	out := buf.String()
	for _, want := range []string{"tokens=2", "list_lookups=2", "list_misses=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report() output %q missing %q", out, want)
		}
	}

	p.ResetStats()
	if p.Stats().Tokens != 0 {
		t.Error("ResetStats did not clear counters")
	}
}
