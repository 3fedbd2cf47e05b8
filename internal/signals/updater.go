package signals

import (
	"fmt"

	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
)

// Action is a triage decision on an item. Each action carries a base delta
// that per-type multipliers scale down before it reaches the weight store.
type Action string

const (
	ActionIgnore     Action = "ignore"
	ActionMonitor    Action = "monitor"
	ActionExperiment Action = "experiment"
	ActionIntegrate  Action = "integrate"
)

var baseDeltas = map[Action]float64{
	ActionIgnore:     -2,
	ActionMonitor:    0.5,
	ActionExperiment: 1.5,
	ActionIntegrate:  3,
}

// ParseAction validates a raw action string. Unknown actions are rejected
// here, before any delta math: silently substituting a default delta would
// corrupt learned weights invisibly.
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if _, ok := baseDeltas[a]; !ok {
		return "", fmt.Errorf("unknown decision action %q: %w", raw, pkgerrors.ErrInvalidArgument)
	}
	return a, nil
}

// Per-type multipliers. The toxic column protects broad signals (entities,
// tools, categories) from collateral punishment when the decision's true
// cause is a narrow flagged pattern: the context and concept keep their full
// share while everything broader is cut to a sliver.
func multiplier(t SignalType, toxic bool) float64 {
	switch t {
	case TypeContext:
		return 0.70
	case TypeConcept:
		return 0.40
	case TypeEntity, TypeTool:
		if toxic {
			return 0.05
		}
		return 0.15
	case TypeCategory:
		if toxic {
			return 0.02
		}
		return 0.05
	default:
		return 0
	}
}

// WeightDelta is one pending (or applied) weight increment for one key.
type WeightDelta struct {
	Key   SignalKey `json:"key"`
	Delta float64   `json:"delta"`
}

// ComputeDeltas turns an item's signal set and a decision action into the
// per-key increments to fan out to the store. The toxic flag is set when any
// extracted concept is in the dictionary's flagged set, and switches the
// multiplier table for the whole item.
func ComputeDeltas(set SignalSet, action Action, dict *Dictionary) ([]WeightDelta, error) {
	base, ok := baseDeltas[action]
	if !ok {
		return nil, fmt.Errorf("unknown decision action %q: %w", action, pkgerrors.ErrInvalidArgument)
	}

	toxic := false
	for _, c := range set.Concepts {
		if dict.IsToxic(c.String()) {
			toxic = true
			break
		}
	}

	keys := set.All()
	out := make([]WeightDelta, 0, len(keys))
	for _, k := range keys {
		out = append(out, WeightDelta{Key: k, Delta: base * multiplier(k.Type, toxic)})
	}
	return out, nil
}
