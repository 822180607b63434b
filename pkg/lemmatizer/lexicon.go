package lemmatizer

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/vellum"
)

// maxAnalysesPerWord bounds the count packed into the low bits of an FST
// output.
const maxAnalysesPerWord = 1<<16 - 1

// LexiconAnalyzer answers lookups from a precomputed analysis lexicon: a
// tab-separated listing of surface form, analysis and optional weight, such
// as the output of dumping a transducer's paths. Surfaces are matched
// exactly (case-sensitive, like a transducer) and held in an FST whose
// output packs the offset and count of their analyses.
type LexiconAnalyzer struct {
	fst      *vellum.FST
	analyses []string
	words    int
}

type weightedAnalysis struct {
	analysis string
	weight   float64
}

// OpenLexicon loads a lexicon file; names ending in ".gz" are decompressed.
func OpenLexicon(path string) (*LexiconAnalyzer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open lexicon %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	lex, err := ParseLexicon(r)
	if err != nil {
		return nil, fmt.Errorf("open lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon reads lexicon lines from r. Blank lines and lines starting
// with "#" are skipped; any other line must have two or three tab-separated
// fields. Analyses of one surface are ordered by ascending weight, ties kept
// in file order.
func ParseLexicon(r io.Reader) (*LexiconAnalyzer, error) {
	bySurface := make(map[string][]weightedAnalysis)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || len(fields) > 3 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("line %d: want surface<TAB>analysis[<TAB>weight]", lineNo)
		}
		var weight float64
		if len(fields) == 3 && strings.TrimSpace(fields[2]) != "" {
			w, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad weight: %w", lineNo, err)
			}
			weight = w
		}
		bySurface[fields[0]] = append(bySurface[fields[0]], weightedAnalysis{fields[1], weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return buildLexicon(bySurface)
}

func buildLexicon(bySurface map[string][]weightedAnalysis) (*LexiconAnalyzer, error) {
	lex := &LexiconAnalyzer{words: len(bySurface)}
	if len(bySurface) == 0 {
		return lex, nil
	}

	surfaces := make([]string, 0, len(bySurface))
	for surface := range bySurface {
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	for _, surface := range surfaces {
		candidates := bySurface[surface]
		if len(candidates) > maxAnalysesPerWord {
			builder.Close()
			return nil, fmt.Errorf("%q has %d analyses, limit is %d", surface, len(candidates), maxAnalysesPerWord)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].weight < candidates[j].weight
		})
		offset := uint64(len(lex.analyses))
		for _, c := range candidates {
			lex.analyses = append(lex.analyses, c.analysis)
		}
		if err := builder.Insert([]byte(surface), offset<<16|uint64(len(candidates))); err != nil {
			builder.Close()
			return nil, fmt.Errorf("insert %q: %w", surface, err)
		}
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	lex.fst = fst
	return lex, nil
}

// Analyze returns the analyses recorded for word; unknown words yield none.
func (l *LexiconAnalyzer) Analyze(word string) ([]string, error) {
	if l.fst == nil {
		return nil, nil
	}
	packed, exists, err := l.fst.Get([]byte(word))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	offset, count := packed>>16, packed&maxAnalysesPerWord
	end := offset + count
	if end > uint64(len(l.analyses)) {
		return nil, fmt.Errorf("lexicon entry for %q out of range", word)
	}
	out := make([]string, count)
	copy(out, l.analyses[offset:end])
	return out, nil
}

// WordCount returns the number of distinct surface forms.
func (l *LexiconAnalyzer) WordCount() int {
	return l.words
}

// Close releases FST resources.
func (l *LexiconAnalyzer) Close() error {
	if l.fst == nil {
		return nil
	}
	return l.fst.Close()
}
