package annotation

import (
	"strings"
	"unicode"
)

// Token kinds derived from the characters of a token.
const (
	KindWord   = "word"
	KindNumber = "number"
	KindPunct  = "punct"
)

// tagSeparator joins a word and its tag in tagged text ("dogs/NNS").
const tagSeparator = "/"

// ParseTagged builds a document from POS-tagged text: whitespace-separated
// "word/TAG" items, one sentence per line. The tag is taken after the last
// "/", so "1/2/CD" is the word "1/2" tagged CD; an item without a separator
// gets no category feature. Each item becomes a Token annotation in the
// default set with string, kind and category features, and each non-empty
// line a Sentence annotation. The document text keeps only the words.
func ParseTagged(name, tagged string) *Document {
	var text strings.Builder
	type item struct {
		word, tag  string
		start, end int
		hasTag     bool
	}
	var items []item
	var sentences [][2]int

	pos := 0
	for _, line := range strings.Split(tagged, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if pos > 0 {
			text.WriteString("\n")
			pos++
		}
		sentenceStart := pos
		for i, field := range fields {
			if i > 0 {
				text.WriteString(" ")
				pos++
			}
			word, tag, hasTag := splitTagged(field)
			n := len([]rune(word))
			items = append(items, item{word: word, tag: tag, start: pos, end: pos + n, hasTag: hasTag})
			text.WriteString(word)
			pos += n
		}
		sentences = append(sentences, [2]int{sentenceStart, pos})
	}

	doc := NewDocument(name, text.String())
	for _, s := range sentences {
		doc.Add("", TypeSentence, s[0], s[1], nil)
	}
	for _, it := range items {
		features := map[string]string{
			FeatureString: it.word,
			FeatureKind:   KindOf(it.word),
		}
		if it.hasTag {
			features[FeatureCategory] = it.tag
		}
		doc.Add("", TypeToken, it.start, it.end, features)
	}
	return doc
}

func splitTagged(field string) (word, tag string, ok bool) {
	i := strings.LastIndex(field, tagSeparator)
	if i <= 0 || i == len(field)-1 {
		return field, "", false
	}
	return field[:i], field[i+1:], true
}

// KindOf classifies a token: number when every rune is a digit or a
// numeric separator and at least one is a digit, punct when no rune is a
// letter or digit, word otherwise.
func KindOf(s string) string {
	digits, letters := 0, 0
	numeric := true
	for _, r := range s {
		switch {
		case unicode.IsNumber(r):
			digits++
		case unicode.IsLetter(r):
			letters++
			numeric = false
		case r == '.' || r == ',' || r == '-' || r == '+':
		default:
			numeric = false
		}
	}
	switch {
	case digits > 0 && numeric:
		return KindNumber
	case digits == 0 && letters == 0 && s != "":
		return KindPunct
	}
	return KindWord
}
