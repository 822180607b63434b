package lemmatizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizerFunc defines a single surface preparation step.
type NormalizerFunc func(string) string

// Normalizer applies a pipeline of steps to token text before resolution.
// It never lowercases: lemmas fall back to the surface form verbatim.
type Normalizer struct {
	steps []NormalizerFunc
}

// NewNormalizer creates a normalizer with the default pipeline, which only
// cleans whitespace.
func NewNormalizer() *Normalizer {
	return &Normalizer{steps: []NormalizerFunc{CleanWhitespace}}
}

// NewNormalizerWithSteps creates a normalizer with a custom pipeline.
func NewNormalizerWithSteps(steps ...NormalizerFunc) *Normalizer {
	return &Normalizer{steps: steps}
}

// Normalize applies all configured steps in order.
func (n *Normalizer) Normalize(s string) string {
	if n == nil {
		return s
	}
	for _, step := range n.steps {
		s = step(s)
	}
	return s
}

// CleanWhitespace trims s and collapses inner whitespace runs to one space,
// which is how span text is turned into a token string.
func CleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RemoveControlChars removes Unicode control characters.
func RemoveControlChars(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// NFC composes s to Unicode normalization form C, so "a" followed by a
// combining diaeresis matches dictionary entries spelled with "ä".
func NFC(s string) string {
	return norm.NFC.String(s)
}
