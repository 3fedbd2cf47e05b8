package signals

import (
	"reflect"
	"strings"
	"testing"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewExtractor(d)
}

func keysOf(ks []SignalKey) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.String()
	}
	return out
}

func TestExtractBasic(t *testing.T) {
	e := newTestExtractor(t)
	set := e.Extract(ExtractInput{
		Title:      "Grok adds an undress feature to image editing",
		Categories: "AI Safety, Image Tools",
	})

	if got := keysOf(set.Entities); !reflect.DeepEqual(got, []string{"entity:grok"}) {
		t.Fatalf("entities = %v", got)
	}
	if got := keysOf(set.Concepts); !reflect.DeepEqual(got, []string{"concept:undress"}) {
		t.Fatalf("concepts = %v", got)
	}
	if got := keysOf(set.Categories); !reflect.DeepEqual(got, []string{"category:ai_safety", "category:image_tools"}) {
		t.Fatalf("categories = %v", got)
	}
	if got := keysOf(set.Contexts); !reflect.DeepEqual(got, []string{"context:entity:grok|concept:undress"}) {
		t.Fatalf("contexts = %v", got)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	e := newTestExtractor(t)
	in := ExtractInput{
		Title:   "Running Llama locally with Ollama and LangChain",
		Summary: "A guide to open source inference on Kubernetes",
	}
	first := e.Extract(in)
	second := e.Extract(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not idempotent:\n%v\n%v", first, second)
	}
}

func TestExtractContextsCappedAtTwo(t *testing.T) {
	e := newTestExtractor(t)
	set := e.Extract(ExtractInput{
		Title: "OpenAI and Anthropic respond to privacy and security criticism",
	})

	if len(set.Entities) != 2 || len(set.Concepts) != 2 {
		t.Fatalf("setup: entities=%v concepts=%v", keysOf(set.Entities), keysOf(set.Concepts))
	}
	if len(set.Contexts) != 2 {
		t.Fatalf("contexts = %v, want exactly 2", keysOf(set.Contexts))
	}
	// Dictionary order: the first subject pairs with both concepts before
	// the second subject gets a turn.
	want := []string{
		"context:entity:openai|concept:privacy",
		"context:entity:openai|concept:security",
	}
	if got := keysOf(set.Contexts); !reflect.DeepEqual(got, want) {
		t.Fatalf("contexts = %v, want %v", got, want)
	}
}

func TestExtractContextHalvesComeFromSameItem(t *testing.T) {
	e := newTestExtractor(t)
	set := e.Extract(ExtractInput{
		Title:   "Deepfake detection with PyTorch",
		Summary: "Benchmark results for video models",
	})

	subjects := map[string]bool{}
	for _, k := range append(append([]SignalKey{}, set.Entities...), set.Tools...) {
		subjects[k.String()] = true
	}
	concepts := map[string]bool{}
	for _, k := range set.Concepts {
		concepts[k.String()] = true
	}
	if len(set.Contexts) == 0 {
		t.Fatalf("expected at least one context")
	}
	for _, ctx := range set.Contexts {
		s, c, ok := SplitContextKey(ctx)
		if !ok {
			t.Fatalf("bad context key %q", ctx.String())
		}
		if !subjects[s.String()] {
			t.Fatalf("context subject %q not extracted from item", s.String())
		}
		if !concepts[c.String()] {
			t.Fatalf("context concept %q not extracted from item", c.String())
		}
	}
}

func TestExtractFirstSynonymWinsOncePerEntry(t *testing.T) {
	e := newTestExtractor(t)
	set := e.Extract(ExtractInput{
		Title: "OpenAI ships ChatGPT updates", // two synonyms, one entry
	})
	if got := keysOf(set.Entities); !reflect.DeepEqual(got, []string{"entity:openai"}) {
		t.Fatalf("entities = %v, want single entity:openai", got)
	}
}

func TestExtractExcerptBounded(t *testing.T) {
	e := newTestExtractor(t)
	padding := strings.Repeat("x", excerptLimit)
	set := e.Extract(ExtractInput{
		Title:   "Weekly digest",
		Excerpt: padding + " ollama",
	})
	if len(set.Tools) != 0 {
		t.Fatalf("synonym beyond excerpt limit should not match, got %v", keysOf(set.Tools))
	}

	set = e.Extract(ExtractInput{
		Title:   "Weekly digest",
		Excerpt: "ollama " + padding,
	})
	if got := keysOf(set.Tools); !reflect.DeepEqual(got, []string{"tool:ollama"}) {
		t.Fatalf("tools = %v", got)
	}
}

func TestExtractEmptyOptionalFields(t *testing.T) {
	e := newTestExtractor(t)
	set := e.Extract(ExtractInput{Title: "Nothing notable here"})
	if !set.Empty() {
		t.Fatalf("expected empty set, got %v", keysOf(set.All()))
	}
}

func TestExtractNoConceptsNoContexts(t *testing.T) {
	e := newTestExtractor(t)
	set := e.Extract(ExtractInput{Title: "Mistral releases a new model"})
	if len(set.Entities) == 0 {
		t.Fatalf("setup: expected an entity match")
	}
	if len(set.Contexts) != 0 {
		t.Fatalf("no concepts means no contexts, got %v", keysOf(set.Contexts))
	}
}
