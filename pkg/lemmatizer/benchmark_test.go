package lemmatizer

import (
	"context"
	"testing"
)

var germanAnalyses = map[string][]string{
	"Hausaufgaben": {"Haus<NN>Aufgabe<+NN><Fem><Acc><Pl>"},
	"Wärmedämmung": {"Wärme<NN>dämm<V>ung<SUFF><+NN><Fem><Nom><Sg>"},
}

func BenchmarkResolve_DictionaryHit(b *testing.B) {
	r := NewResolver(StaticProvider{"en": testResources(b, "en", englishAnalyses, nil)}, ResolverConfig{Logger: quietLogger()})
	ctx := context.Background()
	w := Word{Text: "mice", Tag: "NNS"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(ctx, w)
	}
}

func BenchmarkResolve_AnalyzerFallback(b *testing.B) {
	r := NewResolver(StaticProvider{"en": testResources(b, "en", englishAnalyses, nil)}, ResolverConfig{Logger: quietLogger()})
	ctx := context.Background()
	w := Word{Text: "barks", Tag: "VBZ"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(ctx, w)
	}
}

func BenchmarkResolve_GermanCompound(b *testing.B) {
	r := NewResolver(StaticProvider{"de": testResources(b, "de", germanAnalyses, nil)}, ResolverConfig{Language: "de", Logger: quietLogger()})
	ctx := context.Background()
	w := Word{Text: "Wärmedämmung", Tag: "NN"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(ctx, w)
	}
}

func BenchmarkExtract_German(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Extract("de", Noun, "Hausaufgaben", "Haus<NN>Aufgabe<+NN><Fem><Acc><Pl>")
	}
}

func BenchmarkDictionary_Lookup(b *testing.B) {
	dict, err := NewDictionary([]Entry{
		{Lemma: "go", Forms: []string{"goes", "went", "gone", "going"}},
		{Lemma: "be", Forms: []string{"is", "was", "were", "been", "being", "am", "are"}},
	})
	if err != nil {
		b.Fatalf("Failed to build dictionary: %v", err)
	}
	defer dict.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dict.Lookup("Went")
	}
}

func BenchmarkCachedAnalyzer_Hit(b *testing.B) {
	cached, err := NewCachedAnalyzer(AnalyzerFunc(func(word string) ([]string, error) {
		return englishAnalyses[word], nil
	}), 128)
	if err != nil {
		b.Fatalf("NewCachedAnalyzer() error: %v", err)
	}
	cached.Analyze("dogs") // Prime the cache

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cached.Analyze("dogs")
	}
}
