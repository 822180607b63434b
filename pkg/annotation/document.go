// Package annotation is a minimal standoff annotation model: a document
// text plus named sets of typed, featured spans. It is the host the
// lemmatizer reads tokens from and writes lemmas to.
//
// Offsets count Unicode code points, not bytes.
package annotation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Conventional annotation types and feature names.
const (
	TypeToken    = "Token"
	TypeSentence = "Sentence"

	FeatureString   = "string"
	FeatureCategory = "category"
	FeatureKind     = "kind"
)

// Annotation is a typed span over the document text with string features.
type Annotation struct {
	ID       int               `json:"id" yaml:"id"`
	Type     string            `json:"type" yaml:"type"`
	Start    int               `json:"start" yaml:"start"`
	End      int               `json:"end" yaml:"end"`
	Features map[string]string `json:"features,omitempty" yaml:"features,omitempty"`
}

// Feature returns the named feature.
func (a *Annotation) Feature(name string) (string, bool) {
	v, ok := a.Features[name]
	return v, ok
}

// SetFeature sets the named feature.
func (a *Annotation) SetFeature(name, value string) {
	if a.Features == nil {
		a.Features = make(map[string]string)
	}
	a.Features[name] = value
}

// Set is a named group of annotations.
type Set struct {
	Annotations []*Annotation `json:"annotations" yaml:"annotations"`
}

// Get returns the annotations of type typ in document order (by start,
// then end, then ID).
func (s *Set) Get(typ string) []*Annotation {
	if s == nil {
		return nil
	}
	var out []*Annotation
	for _, a := range s.Annotations {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	sortByOffset(out)
	return out
}

// Contained returns the annotations of anns lying entirely inside container.
func Contained(anns []*Annotation, container *Annotation) []*Annotation {
	var out []*Annotation
	for _, a := range anns {
		if a.Start >= container.Start && a.End <= container.End {
			out = append(out, a)
		}
	}
	return out
}

func sortByOffset(anns []*Annotation) {
	sort.SliceStable(anns, func(i, j int) bool {
		if anns[i].Start != anns[j].Start {
			return anns[i].Start < anns[j].Start
		}
		if anns[i].End != anns[j].End {
			return anns[i].End < anns[j].End
		}
		return anns[i].ID < anns[j].ID
	})
}

// Document is a text with annotation sets. The set named "" is the default
// set. A Document is not safe for concurrent use.
type Document struct {
	Name string          `json:"name" yaml:"name"`
	Text string          `json:"text" yaml:"text"`
	Sets map[string]*Set `json:"sets" yaml:"sets"`

	runes  []rune
	nextID int
}

// NewDocument creates an empty document.
func NewDocument(name, text string) *Document {
	return &Document{Name: name, Text: text, Sets: make(map[string]*Set)}
}

// Set returns the named annotation set, creating it when absent.
func (d *Document) Set(name string) *Set {
	if d.Sets == nil {
		d.Sets = make(map[string]*Set)
	}
	s, ok := d.Sets[name]
	if !ok {
		s = &Set{}
		d.Sets[name] = s
	}
	return s
}

// Add creates an annotation in the named set and returns it.
func (d *Document) Add(setName, typ string, start, end int, features map[string]string) (*Annotation, error) {
	if start < 0 || end < start || end > d.length() {
		return nil, fmt.Errorf("annotation %s [%d,%d) outside document of length %d", typ, start, end, d.length())
	}
	a := &Annotation{ID: d.nextID, Type: typ, Start: start, End: end, Features: features}
	d.nextID++
	s := d.Set(setName)
	s.Annotations = append(s.Annotations, a)
	return a, nil
}

// Span returns the text covered by a.
func (d *Document) Span(a *Annotation) string {
	runes := d.textRunes()
	start, end := a.Start, a.End
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func (d *Document) textRunes() []rune {
	if d.runes == nil {
		d.runes = []rune(d.Text)
	}
	return d.runes
}

func (d *Document) length() int {
	return len(d.textRunes())
}

// ReadDocument decodes a JSON document.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	if d.Sets == nil {
		d.Sets = make(map[string]*Set)
	}
	for name, s := range d.Sets {
		if s == nil {
			d.Sets[name] = &Set{}
			continue
		}
		for _, a := range s.Annotations {
			if a.ID >= d.nextID {
				d.nextID = a.ID + 1
			}
		}
	}
	return &d, nil
}

// WriteDocument encodes d as indented JSON.
func WriteDocument(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
