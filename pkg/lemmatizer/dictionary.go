package lemmatizer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/vellum"
)

// Dictionary maps lowercased surface forms to lemmas. Forms are held in an
// FST whose output is an index into a deduplicated lemma table.
//
// A Dictionary is immutable after construction and safe for concurrent use.
type Dictionary struct {
	fst    *vellum.FST
	lemmas []string
	size   int
}

// EmptyDictionary returns a dictionary that never matches.
func EmptyDictionary() *Dictionary {
	return &Dictionary{}
}

// NewDictionary builds a dictionary from entries in order. When a form
// appears in several entries the last one wins.
func NewDictionary(entries []Entry) (*Dictionary, error) {
	forms := make(map[string]string)
	for _, e := range entries {
		lemma := strings.TrimSpace(e.Lemma)
		for _, form := range e.Forms {
			forms[strings.ToLower(form)] = lemma
		}
	}
	if len(forms) == 0 {
		return EmptyDictionary(), nil
	}

	sortedForms := make([]string, 0, len(forms))
	for form := range forms {
		sortedForms = append(sortedForms, form)
	}
	sort.Strings(sortedForms)

	d := &Dictionary{size: len(sortedForms)}
	lemmaIDs := make(map[string]uint64)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}
	for _, form := range sortedForms {
		lemma := forms[form]
		id, ok := lemmaIDs[lemma]
		if !ok {
			id = uint64(len(d.lemmas))
			lemmaIDs[lemma] = id
			d.lemmas = append(d.lemmas, lemma)
		}
		if err := builder.Insert([]byte(form), id); err != nil {
			builder.Close()
			return nil, fmt.Errorf("insert %q: %w", form, err)
		}
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	d.fst = fst
	return d, nil
}

// LoadDictionary reads a gzip-compressed dictionary file. A missing file is
// reported with an error wrapping fs.ErrNotExist so callers can decide
// whether absence is fatal.
func LoadDictionary(path string) (*Dictionary, error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}
	return NewDictionary(entries)
}

// Lookup returns the lemma for form, compared case-insensitively.
func (d *Dictionary) Lookup(form string) (string, bool) {
	if d == nil || d.fst == nil {
		return "", false
	}
	id, exists, err := d.fst.Get([]byte(strings.ToLower(form)))
	if err != nil || !exists || id >= uint64(len(d.lemmas)) {
		return "", false
	}
	return d.lemmas[id], true
}

// Len returns the number of distinct forms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

// Close releases FST resources.
func (d *Dictionary) Close() error {
	if d == nil || d.fst == nil {
		return nil
	}
	return d.fst.Close()
}
