package annotation

import (
	"bytes"
	"strings"
	"testing"
)

func TestDocument_AddAndSpan(t *testing.T) {
	doc := NewDocument("test", "Häuser stehen")

	a, err := doc.Add("", TypeToken, 0, 6, map[string]string{"category": "NNS"})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if got := doc.Span(a); got != "Häuser" {
		t.Errorf("Span() = %q, want %q (offsets are code points)", got, "Häuser")
	}

	b, err := doc.Add("", TypeToken, 7, 13, nil)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if got := doc.Span(b); got != "stehen" {
		t.Errorf("Span() = %q, want %q", got, "stehen")
	}
	if a.ID == b.ID {
		t.Error("annotations share an ID")
	}

	for _, r := range [][2]int{{-1, 2}, {5, 4}, {0, 14}} {
		if _, err := doc.Add("", TypeToken, r[0], r[1], nil); err == nil {
			t.Errorf("Add(%d, %d) succeeded, want error", r[0], r[1])
		}
	}

	b.SetFeature("category", "VBP")
	if v, ok := b.Feature("category"); !ok || v != "VBP" {
		t.Errorf("Feature() = %q, %v", v, ok)
	}
}

func TestSet_GetOrdersByOffset(t *testing.T) {
	doc := NewDocument("test", "a b c")
	doc.Add("", TypeToken, 4, 5, nil)
	doc.Add("", TypeSentence, 0, 5, nil)
	doc.Add("", TypeToken, 0, 1, nil)
	doc.Add("", TypeToken, 2, 3, nil)

	tokens := doc.Set("").Get(TypeToken)
	if len(tokens) != 3 {
		t.Fatalf("Get(Token) returned %d annotations, want 3", len(tokens))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := doc.Span(tokens[i]); got != want {
			t.Errorf("token %d = %q, want %q", i, got, want)
		}
	}

	var missing *Set
	if got := missing.Get(TypeToken); got != nil {
		t.Errorf("nil Set Get() = %v, want nil", got)
	}

	sentence := doc.Set("").Get(TypeSentence)[0]
	if got := Contained(tokens, &Annotation{Start: 1, End: 5}); len(got) != 2 {
		t.Errorf("Contained() = %d annotations, want 2", len(got))
	}
	if got := Contained(tokens, sentence); len(got) != 3 {
		t.Errorf("Contained(sentence) = %d annotations, want 3", len(got))
	}
}

func TestReadWriteDocument(t *testing.T) {
	doc := NewDocument("roundtrip", "dogs bark")
	doc.Add("", TypeToken, 0, 4, map[string]string{"category": "NNS"})
	doc.Add("pos", TypeToken, 5, 9, nil)

	var buf bytes.Buffer
	if err := WriteDocument(&buf, doc); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}
	got, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}
	if got.Name != "roundtrip" || got.Text != "dogs bark" {
		t.Errorf("ReadDocument() = %q/%q", got.Name, got.Text)
	}
	tok := got.Set("").Get(TypeToken)[0]
	if v, _ := tok.Feature("category"); v != "NNS" {
		t.Errorf("category = %q, want NNS", v)
	}

	// New annotations continue after the highest stored ID.
	a, err := got.Add("", TypeToken, 0, 4, nil)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if a.ID != 2 {
		t.Errorf("new ID = %d, want 2", a.ID)
	}
}

func TestReadDocument_NullSets(t *testing.T) {
	got, err := ReadDocument(strings.NewReader(`{"name":"x","text":"abc","sets":{"":null}}`))
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}
	if got.Sets[""] == nil {
		t.Error("null set not replaced")
	}
	if _, err := ReadDocument(strings.NewReader("{")); err == nil {
		t.Error("ReadDocument(truncated) succeeded, want error")
	}
}
