package lemmatizer

import (
	"sort"
	"strings"
)

// extractFunc derives a lemma from an analysis known to contain marker.
type extractFunc func(marker, surface, analysis string) (string, bool)

// languageRules binds a language's analysis markers to its extractor.
type languageRules struct {
	markers map[Category]string
	extract extractFunc
}

var languages = map[string]languageRules{
	"en": {
		markers: map[Category]string{
			Noun: "[N]+N",
			Verb: "[V]+V",
			Adj:  "[ADJ]+ADJ",
			Adv:  "[ADV]+ADV",
		},
		extract: extractTruncated,
	},
	"it": {
		markers: map[Category]string{
			Noun:  "#NOUN",
			Verb:  "#VER",
			Adj:   "#ADJ",
			Adv:   "#ADV",
			CConj: "#CON",
		},
		extract: extractTruncated,
	},
	"fr": {
		markers: map[Category]string{
			Noun:  "+commonNoun",
			Verb:  "+verb+",
			Adj:   "+adjective",
			Adv:   "+adverb",
			Pron:  "+functionWord",
			CConj: "+functionWord",
		},
		extract: extractTruncated,
	},
	"de": {
		markers: map[Category]string{
			Noun:  "<+NN>",
			Verb:  "<+V>",
			Adj:   "<+ADJ>",
			Adv:   "<+ADV>",
			CConj: "<+KONJ>",
		},
		extract: extractGerman,
	},
}

// SupportedLanguages returns the language codes that have extraction rules.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Marker returns the analysis marker for cat in lang, if any.
func Marker(lang string, cat Category) (string, bool) {
	rules, ok := languages[strings.ToLower(lang)]
	if !ok {
		return "", false
	}
	marker, ok := rules.markers[cat]
	return marker, ok
}

// Extract derives a lemma for surface from one analyzer output string.
// It returns false when the analysis does not carry the marker for cat, when
// the language has no rules, or when the analysis is degenerate. Extract is
// pure and safe for concurrent use.
func Extract(lang string, cat Category, surface, analysis string) (string, bool) {
	rules, ok := languages[strings.ToLower(lang)]
	if !ok {
		return "", false
	}
	marker, ok := rules.markers[cat]
	if !ok || !strings.Contains(analysis, marker) {
		return "", false
	}
	return rules.extract(marker, surface, analysis)
}

// truncateAt drops marker and everything after its first occurrence.
func truncateAt(analysis, marker string) string {
	if i := strings.Index(analysis, marker); i >= 0 {
		return analysis[:i]
	}
	return analysis
}

// extractTruncated is shared by English, Italian and French, whose analyses
// spell the lemma before the category marker.
func extractTruncated(marker, surface, analysis string) (string, bool) {
	lemma := truncateAt(analysis, marker)
	return strings.ToLower(joinLikeSurface(lemma, surface)), true
}

// joinLikeSurface rewrites the analyzer's "+" compound joints so they agree
// with the surface form: hyphens when the surface is hyphenated, nothing
// when the surface has no joint at all.
func joinLikeSurface(lemma, surface string) string {
	if !strings.Contains(lemma, "+") {
		return lemma
	}
	if !strings.Contains(lemma, "-") && strings.Contains(surface, "-") && !strings.Contains(surface, "+") {
		return strings.ReplaceAll(lemma, "+", "-")
	}
	if !strings.Contains(surface, "+") {
		return strings.ReplaceAll(lemma, "+", "")
	}
	return lemma
}
