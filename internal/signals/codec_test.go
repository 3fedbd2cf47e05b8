package signals

import (
	"testing"
)

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AI Agents", "ai_agents"},
		{"  Spaced   Out  ", "spaced_out"},
		{"What's New?", "whats_new"},
		{"semi-structured", "semi-structured"},
		{"C++/Rust", "crust"},
		{"", ""},
		{"   ", ""},
		{"Tabs\tand\nnewlines", "tabs_and_newlines"},
	}
	for _, c := range cases {
		if got := NormalizeValue(c.in); got != c.want {
			t.Fatalf("NormalizeValue(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIsStable(t *testing.T) {
	first := Normalize(TypeEntity, "Hugging Face")
	second := Normalize(TypeEntity, "Hugging Face")
	if first != second {
		t.Fatalf("Normalize not stable: %v vs %v", first, second)
	}
	if first.String() != "entity:hugging_face" {
		t.Fatalf("unexpected key %q", first.String())
	}
}

func TestParseKeyRoundTrip(t *testing.T) {
	cases := []struct {
		typ SignalType
		raw string
	}{
		{TypeCategory, "Security & Privacy"},
		{TypeEntity, "Grok"},
		{TypeTool, "  LangChain  "},
		{TypeConcept, "fine tuning"},
	}
	for _, c := range cases {
		k := Normalize(c.typ, c.raw)
		parsed, err := ParseKey(k.String())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", k, k.String(), parsed)
		}
		for _, r := range parsed.Value {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
			if !valid {
				t.Fatalf("value %q contains invalid rune %q", parsed.Value, r)
			}
		}
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "novalue", ":leading"} {
		if _, err := ParseKey(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestContextKeyRoundTrip(t *testing.T) {
	subject := Normalize(TypeEntity, "grok")
	concept := Normalize(TypeConcept, "undress")
	ctx := MakeContextKey(subject, concept)

	if ctx.String() != "context:entity:grok|concept:undress" {
		t.Fatalf("unexpected context key %q", ctx.String())
	}

	parsed, err := ParseKey(ctx.String())
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if parsed != ctx {
		t.Fatalf("context key does not round trip: %v vs %v", ctx, parsed)
	}

	gotSubject, gotConcept, ok := SplitContextKey(parsed)
	if !ok {
		t.Fatalf("SplitContextKey failed for %q", parsed.String())
	}
	if gotSubject != subject || gotConcept != concept {
		t.Fatalf("split mismatch: %v / %v", gotSubject, gotConcept)
	}
}

func TestDisplayLabel(t *testing.T) {
	ctx := MakeContextKey(Normalize(TypeEntity, "grok"), Normalize(TypeConcept, "voice cloning"))
	if got := DisplayLabel(ctx); got != "Grok · Voice Cloning" {
		t.Fatalf("context label = %q", got)
	}
	if got := DisplayLabel(Normalize(TypeTool, "langchain")); got != "Langchain" {
		t.Fatalf("plain label = %q", got)
	}
}
