package lemmatizer

import (
	"strings"
	"unicode/utf8"
)

// German analyses are a ">"-separated chain of morphemes, each followed by
// its own "<...>" annotation, e.g. "Haus<NN>Tür<+NN><Fem><Nom><Sg>". The
// lemma is rebuilt from the compound parts plus the final morpheme, then
// checked against the surface form to recover linking and inflection letters
// the analysis does not spell out.
const (
	capMarker    = "<CAP"
	suffixMarker = "<SUFF"
)

var braceStripper = strings.NewReplacer("{", "", "}", "")

func extractGerman(marker, surface, analysis string) (string, bool) {
	parts := splitDropTrailing(truncateAt(analysis, marker), ">")
	if len(parts) == 0 {
		return "", false
	}

	var b strings.Builder
	for _, part := range parts[:len(parts)-1] {
		if strings.HasPrefix(part, capMarker) {
			continue
		}
		b.WriteString(strings.ToLower(cutAnnotation(part)))
	}
	stem := b.String()

	lastRaw := parts[len(parts)-1]
	lastWord := cutAnnotation(lastRaw)
	var suffix string
	if strings.HasSuffix(lastRaw, suffixMarker) {
		suffix = strings.ToLower(lastWord)
	}

	lowerSurface := strings.ToLower(surface)
	if lowerSurface == stem {
		return lowerSurface, true
	}

	// The grammar occasionally ends the chain on a bare annotation.
	if lastWord == "" {
		return "", false
	}

	candidate := stem + lastRunes(lastWord, 1)
	if strings.EqualFold(candidate, surface) {
		return candidate, true
	}
	if utf8.RuneCountInString(lastWord) > 2 {
		candidate = stem + lastRunes(lastWord, 2)
		if strings.EqualFold(candidate, surface) {
			return candidate, true
		}
	}

	lowerLast := strings.ToLower(lastWord)
	var result string
	switch {
	case strings.TrimSpace(stem) != "" && strings.HasPrefix(lowerSurface, stem):
		rest := strings.ReplaceAll(lowerSurface, stem, "")
		rest = strings.ReplaceAll(rest, lowerLast, "")
		trimmed := strings.TrimSpace(rest)
		if trimmed != "" && utf8.RuneCountInString(trimmed) <= 2 {
			if suffix != "" {
				result = stem + rest
			} else if joined := stem + lowerLast; strings.HasPrefix(lowerSurface, joined) {
				result = joined
			} else {
				result = stem + rest + lowerLast
			}
		} else {
			result = stem + lowerLast
		}
	case strings.TrimSpace(stem) == "":
		result = cutAnnotation(stem + strings.ToLower(lastRaw))
	default:
		return "", false
	}

	return braceStripper.Replace(result), true
}

// cutAnnotation removes everything from the first "<" onward.
func cutAnnotation(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		return s[:i]
	}
	return s
}

// lastRunes returns the final n runes of s, or s itself when shorter.
func lastRunes(s string, n int) string {
	i := len(s)
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return s[i:]
}
