package lemmatizer

import (
	"fmt"
	"strings"
)

// Category is the coarse part-of-speech class used to pick a dictionary or an
// analysis marker.
type Category int

const (
	Unhandled Category = iota
	Noun
	Verb
	Adj
	Adv
	Det
	Adp
	Pron
	Part
	// CConj never has a dictionary; it only selects conjunction markers in
	// analyzer output.
	CConj
)

var categoryNames = [...]string{
	Unhandled: "UNHANDLED",
	Noun:      "NOUN",
	Verb:      "VERB",
	Adj:       "ADJ",
	Adv:       "ADV",
	Det:       "DET",
	Adp:       "ADP",
	Pron:      "PRON",
	Part:      "PART",
	CConj:     "CCONJ",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// DictionaryCategories lists the categories backed by a lookup list.
var DictionaryCategories = []Category{Adj, Adp, Adv, Det, Noun, Part, Pron, Verb}

// HasDictionary reports whether c is one of DictionaryCategories.
func (c Category) HasDictionary() bool {
	return c >= Noun && c <= Part
}

// Tagset selects how raw POS tags are mapped to categories.
type Tagset int

const (
	// TagsetPenn matches Penn Treebank tags by prefix (NN, NNS, VBD, ...).
	TagsetPenn Tagset = iota
	// TagsetUniversal matches Universal Dependencies tags by name (NOUN, VERB, ...).
	TagsetUniversal
)

// ParseTagset accepts "ptb", "penn", "upos" or "universal" (any case).
// An empty string selects TagsetPenn.
func ParseTagset(s string) (Tagset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ptb", "penn":
		return TagsetPenn, nil
	case "upos", "universal", "ud":
		return TagsetUniversal, nil
	}
	return TagsetPenn, fmt.Errorf("%w: unknown tagset %q", ErrConfig, s)
}

func (t Tagset) String() string {
	if t == TagsetUniversal {
		return "upos"
	}
	return "ptb"
}

type tagRule struct {
	tag string
	cat Category
}

// The order of the Penn tables matters only for overlapping prefixes, which
// the Penn tagset does not have.
var (
	pennDictionaryRules = []tagRule{
		{"JJ", Adj},
		{"IN", Adp},
		{"RB", Adv},
		{"DT", Det},
		{"NN", Noun},
		{"RP", Part},
		{"PR", Pron},
		{"VB", Verb},
	}
	pennAnalyzerRules = []tagRule{
		{"NN", Noun},
		{"VB", Verb},
		{"JJ", Adj},
		{"RB", Adv},
		{"CC", CConj},
		{"PR", Pron},
	}
	universalDictionaryRules = []tagRule{
		{"ADJ", Adj},
		{"ADP", Adp},
		{"ADV", Adv},
		{"DET", Det},
		{"NOUN", Noun},
		{"PART", Part},
		{"PRON", Pron},
		{"VERB", Verb},
	}
	universalAnalyzerRules = []tagRule{
		{"NOUN", Noun},
		{"VERB", Verb},
		{"ADJ", Adj},
		{"ADV", Adv},
		{"CCONJ", CConj},
		{"PRON", Pron},
	}
)

// DictionaryCategory maps a raw tag to the category whose dictionary is
// consulted. Tags without a dictionary map to Unhandled.
func (t Tagset) DictionaryCategory(tag string) Category {
	if t == TagsetUniversal {
		return matchName(universalDictionaryRules, tag)
	}
	return matchPrefix(pennDictionaryRules, tag)
}

// AnalyzerCategory maps a raw tag to the category used to select the
// analysis marker. This is independent of DictionaryCategory: conjunctions
// have markers but no dictionary, determiners the other way round.
func (t Tagset) AnalyzerCategory(tag string) Category {
	if t == TagsetUniversal {
		return matchName(universalAnalyzerRules, tag)
	}
	return matchPrefix(pennAnalyzerRules, tag)
}

func matchPrefix(rules []tagRule, tag string) Category {
	for _, r := range rules {
		if strings.HasPrefix(tag, r.tag) {
			return r.cat
		}
	}
	return Unhandled
}

func matchName(rules []tagRule, tag string) Category {
	tag = strings.TrimSpace(tag)
	for _, r := range rules {
		if strings.EqualFold(tag, r.tag) {
			return r.cat
		}
	}
	return Unhandled
}
