package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

const (
	iterations = 100000
	warmup     = 1000
	boxWidth   = 62

	// ANSI color codes
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

var line = strings.Repeat("─", boxWidth)

// sampleAnalyses stands in for a German model when no resource directory
// is given.
var sampleAnalyses = map[string][]string{
	"arbeiten":             {"arbeiten<+V><Inf>", "arbeit<+NN><Fem><Pl>"},
	"hausaufgaben":         {"Haus<NN>Aufgabe<+NN><Fem><Acc><Pl>"},
	"wärmedämmung":         {"Wärme<NN>dämm<V>ung<SUFF><+NN><Fem><Nom><Sg>"},
	"donaudampfschiffahrt": {"Donau<NPROP>Dampf<NN>schiff<NN>fahrt<+NN><Fem><Nom><Sg>"},
}

func main() {
	ctx := context.Background()
	lang := "de"
	var provider lemmatizer.ResourceProvider
	var loader *lemmatizer.Loader

	fmt.Print("Loading resources... ")
	start := time.Now()
	if len(os.Args) > 1 {
		if len(os.Args) > 2 {
			lang = os.Args[2]
		}
		loader = lemmatizer.NewLoader(lemmatizer.LoaderOptions{
			ResourceDir:       os.Args[1],
			AnalyzerCacheSize: lemmatizer.DefaultAnalyzerCacheSize,
		})
		defer loader.Close()
		provider = loader
	} else {
		res, err := sampleResources(lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		provider = lemmatizer.StaticProvider{lang: res}
	}

	resolver := lemmatizer.NewResolver(provider, lemmatizer.ResolverConfig{Language: lang})
	if err := resolver.Prepare(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	res := resolver.Resources()
	fmt.Printf("done (%d noun forms in %v)\n", res.Dictionary(lemmatizer.Noun).Len(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Language: %s, iterations: %d (warmup: %d)\n", lang, iterations, warmup)
	fmt.Println("Reference: 1 second = 1,000,000,000 ns")
	fmt.Println()

	printHeader("RESOLVER THROUGHPUT")
	bench("Dictionary hit", func() {
		resolver.Resolve(ctx, lemmatizer.Word{Text: "Häuser", Tag: "NNS"})
	})
	bench("Analyzer fallback", func() {
		resolver.Resolve(ctx, lemmatizer.Word{Text: "arbeiten", Tag: "VB"})
	})
	bench("Compound reconstruction", func() {
		resolver.Resolve(ctx, lemmatizer.Word{Text: "Wärmedämmung", Tag: "NN"})
	})
	bench("Unhandled tag", func() {
		resolver.Resolve(ctx, lemmatizer.Word{Text: "schnell", Tag: "XY"})
	})
	bench("Number", func() {
		resolver.Resolve(ctx, lemmatizer.Word{Text: "1984", Tag: "CD", Kind: lemmatizer.KindNumber})
	})
	printFooter()
	fmt.Println()

	printHeader("COMPONENT BREAKDOWN")
	nouns := res.Dictionary(lemmatizer.Noun)
	bench("Dictionary lookup", func() {
		nouns.Lookup("Häuser")
	})
	bench("Tag classification", func() {
		lemmatizer.TagsetPenn.DictionaryCategory("NNS")
	})
	bench("Extract (German compound)", func() {
		lemmatizer.Extract("de", lemmatizer.Noun, "Hausaufgaben", "Haus<NN>Aufgabe<+NN><Fem><Acc><Pl>")
	})
	bench("Extract (English)", func() {
		lemmatizer.Extract("en", lemmatizer.Noun, "dogs", "dog[N]+N+Pl")
	})
	bench("Clean whitespace", func() {
		lemmatizer.CleanWhitespace("  Wärme\tdämmung ")
	})
	bench("NFC", func() {
		lemmatizer.NFC("Wa\u0308rme")
	})
	printFooter()

	fmt.Println()
	s := resolver.Stats()
	fmt.Printf("Tokens: %d, list lookups: %d, list misses: %d, analyzer calls: %d\n",
		s.Tokens, s.ListLookups, s.ListMisses, s.AnalyzerCalls)
}

func sampleResources(lang string) (*lemmatizer.Resources, error) {
	nouns, err := lemmatizer.NewDictionary([]lemmatizer.Entry{
		{Lemma: "Haus", Forms: []string{"haus", "hauses", "häuser", "häusern"}},
		{Lemma: "Aufgabe", Forms: []string{"aufgabe", "aufgaben"}},
	})
	if err != nil {
		return nil, err
	}
	analyzer, err := lemmatizer.NewCachedAnalyzer(lemmatizer.AnalyzerFunc(func(word string) ([]string, error) {
		return sampleAnalyses[strings.ToLower(word)], nil
	}), 1024)
	if err != nil {
		return nil, err
	}
	return lemmatizer.NewResources(lang, map[lemmatizer.Category]*lemmatizer.Dictionary{
		lemmatizer.Noun: nouns,
	}, analyzer), nil
}

func bench(name string, fn func()) {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)

	opsPerSec := float64(iterations) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)

	// Truncate name if too long
	displayName := name
	if len(displayName) > 26 {
		displayName = displayName[:26]
	}

	// Format with colors - build plain string for padding, colored for display
	plain := fmt.Sprintf("  %-26s %10.0f ops/sec %8.0f ns", displayName, opsPerSec, nsPerOp)
	padded := padLine(plain)

	// Now colorize the padded string
	colored := fmt.Sprintf("  %-26s %s%10.0f%s ops/sec %s%8.0f%s ns",
		displayName,
		colorGreen, opsPerSec, colorReset,
		colorYellow, nsPerOp, colorReset)

	// Calculate how much padding we added
	extraPad := len(padded) - len(plain)
	if extraPad > 0 {
		colored += strings.Repeat(" ", extraPad)
	}

	fmt.Println(colorDim + "│" + colorReset + colored + colorDim + "│" + colorReset)
}

func padLine(content string) string {
	if len(content) >= boxWidth {
		return content[:boxWidth]
	}
	return content + strings.Repeat(" ", boxWidth-len(content))
}

func printHeader(title string) {
	fmt.Println(colorDim + "┌" + line + "┐" + colorReset)
	printTitleRow("  " + title)
	fmt.Println(colorDim + "├" + line + "┤" + colorReset)
}

func printFooter() {
	fmt.Println(colorDim + "└" + line + "┘" + colorReset)
}

func printTitleRow(content string) {
	fmt.Println(colorDim + "│" + colorReset + colorCyan + padLine(content) + colorReset + colorDim + "│" + colorReset)
}
