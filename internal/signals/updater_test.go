package signals

import (
	"errors"
	"math"
	"testing"

	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
)

func approx(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}

func deltaFor(t *testing.T, deltas []WeightDelta, key string) float64 {
	t.Helper()
	for _, d := range deltas {
		if d.Key.String() == key {
			return d.Delta
		}
	}
	t.Fatalf("no delta for %q in %v", key, deltas)
	return 0
}

func TestParseAction(t *testing.T) {
	for _, raw := range []string{"ignore", "monitor", "experiment", "integrate"} {
		if _, err := ParseAction(raw); err != nil {
			t.Fatalf("ParseAction(%q): %v", raw, err)
		}
	}
	for _, raw := range []string{"", "archive", "IGNORE", "delete"} {
		_, err := ParseAction(raw)
		if err == nil {
			t.Fatalf("ParseAction(%q) should fail", raw)
		}
		if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
			t.Fatalf("ParseAction(%q) error = %v, want ErrInvalidArgument", raw, err)
		}
	}
}

func TestComputeDeltasRejectsUnknownActionBeforeMath(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	set := SignalSet{Entities: []SignalKey{Normalize(TypeEntity, "grok")}}
	if _, err := ComputeDeltas(set, Action("promote"), d); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestComputeDeltasToxicProtection(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	subject := Normalize(TypeEntity, "grok")
	concept := Normalize(TypeConcept, "undress")
	set := SignalSet{
		Entities: []SignalKey{subject},
		Concepts: []SignalKey{concept},
		Contexts: []SignalKey{MakeContextKey(subject, concept)},
	}

	deltas, err := ComputeDeltas(set, ActionIgnore, d)
	if err != nil {
		t.Fatalf("ComputeDeltas: %v", err)
	}

	// Full punishment on the narrow pattern, a sliver on the broad entity.
	approx(t, deltaFor(t, deltas, "context:entity:grok|concept:undress"), -1.4, "context delta")
	approx(t, deltaFor(t, deltas, "concept:undress"), -0.8, "concept delta")
	approx(t, deltaFor(t, deltas, "entity:grok"), -0.10, "entity delta")
}

func TestComputeDeltasNonToxicFullMultipliers(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	subject := Normalize(TypeEntity, "grok")
	concept := Normalize(TypeConcept, "privacy")
	set := SignalSet{
		Entities: []SignalKey{subject},
		Concepts: []SignalKey{concept},
		Contexts: []SignalKey{MakeContextKey(subject, concept)},
	}

	deltas, err := ComputeDeltas(set, ActionMonitor, d)
	if err != nil {
		t.Fatalf("ComputeDeltas: %v", err)
	}

	approx(t, deltaFor(t, deltas, "entity:grok"), 0.075, "entity delta")
	approx(t, deltaFor(t, deltas, "concept:privacy"), 0.2, "concept delta")
	approx(t, deltaFor(t, deltas, "context:entity:grok|concept:privacy"), 0.35, "context delta")
}

func TestComputeDeltasCategoryAndToolMultipliers(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	set := SignalSet{
		Categories: []SignalKey{Normalize(TypeCategory, "security")},
		Tools:      []SignalKey{Normalize(TypeTool, "langchain")},
	}

	deltas, err := ComputeDeltas(set, ActionIntegrate, d)
	if err != nil {
		t.Fatalf("ComputeDeltas: %v", err)
	}
	approx(t, deltaFor(t, deltas, "category:security"), 3*0.05, "category delta")
	approx(t, deltaFor(t, deltas, "tool:langchain"), 3*0.15, "tool delta")

	// Toxic concept present: broad signals shrink, narrow ones do not.
	set.Concepts = []SignalKey{Normalize(TypeConcept, "deepfake")}
	deltas, err = ComputeDeltas(set, ActionIntegrate, d)
	if err != nil {
		t.Fatalf("ComputeDeltas: %v", err)
	}
	approx(t, deltaFor(t, deltas, "category:security"), 3*0.02, "toxic category delta")
	approx(t, deltaFor(t, deltas, "tool:langchain"), 3*0.05, "toxic tool delta")
	approx(t, deltaFor(t, deltas, "concept:deepfake"), 3*0.40, "toxic concept delta")
}

func TestComputeDeltasCoversEveryExtractedKey(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e := NewExtractor(d)
	set := e.Extract(ExtractInput{
		Title:      "Anthropic publishes Claude security benchmark results",
		Categories: "Research",
	})
	deltas, err := ComputeDeltas(set, ActionExperiment, d)
	if err != nil {
		t.Fatalf("ComputeDeltas: %v", err)
	}
	if len(deltas) != len(set.All()) {
		t.Fatalf("deltas cover %d keys, set has %d", len(deltas), len(set.All()))
	}
}
