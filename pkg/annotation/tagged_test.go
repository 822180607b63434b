package annotation

import (
	"testing"
)

func TestParseTagged(t *testing.T) {
	doc := ParseTagged("t", "The/DT dogs/NNS barked/VBD ./.\n\n  1/2/CD über/APPR x")

	if doc.Text != "The dogs barked .\n1/2 über x" {
		t.Errorf("Text = %q", doc.Text)
	}

	sentences := doc.Set("").Get(TypeSentence)
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}
	if got := doc.Span(sentences[1]); got != "1/2 über x" {
		t.Errorf("second sentence = %q", got)
	}

	tokens := doc.Set("").Get(TypeToken)
	expected := []struct {
		text   string
		tag    string
		hasTag bool
		kind   string
	}{
		{"The", "DT", true, KindWord},
		{"dogs", "NNS", true, KindWord},
		{"barked", "VBD", true, KindWord},
		{".", ".", true, KindPunct},
		{"1/2", "CD", true, KindWord},
		{"über", "APPR", true, KindWord},
		{"x", "", false, KindWord},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		tok := tokens[i]
		if got := doc.Span(tok); got != want.text {
			t.Errorf("token %d span = %q, want %q", i, got, want.text)
		}
		if got, _ := tok.Feature(FeatureString); got != want.text {
			t.Errorf("token %d string = %q, want %q", i, got, want.text)
		}
		tag, ok := tok.Feature(FeatureCategory)
		if ok != want.hasTag || tag != want.tag {
			t.Errorf("token %d category = %q, %v; want %q, %v", i, tag, ok, want.tag, want.hasTag)
		}
		if got, _ := tok.Feature(FeatureKind); got != want.kind {
			t.Errorf("token %d kind = %q, want %q", i, got, want.kind)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dogs", KindWord},
		{"1984", KindNumber},
		{"3.14", KindNumber},
		{"-1,000", KindNumber},
		{"1/2", KindWord},
		{"B2B", KindWord},
		{".", KindPunct},
		{"--", KindPunct},
		{"«", KindPunct},
		{"", KindWord},
	}

	for _, tt := range tests {
		if got := KindOf(tt.input); got != tt.expected {
			t.Errorf("KindOf(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
