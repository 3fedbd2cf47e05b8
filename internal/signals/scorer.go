package signals

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	// overallScale damps the combined group contribution before it reaches
	// the base score.
	overallScale = 0.5

	// Each muted match contributes a fixed penalty; the total muted
	// contribution per item is capped regardless of how many keys match.
	mutePenalty      = -10.0
	muteCapMagnitude = 20.0

	maxReasons = 2
)

// WeightRecord is the read-side view of one stored weight.
type WeightRecord struct {
	Weight float64 `json:"weight"`
	Muted  bool    `json:"muted"`
}

// Reason is one matched signal surfaced for explainability.
type Reason struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// ScoreResult is one item's personalized score with its explanation.
type ScoreResult struct {
	BaseScore       float64  `json:"base_score"`
	PreferenceDelta float64  `json:"preference_delta"`
	AdjustedScore   float64  `json:"adjusted_score"`
	Boosted         []Reason `json:"boosted,omitempty"`
	Suppressed      []Reason `json:"suppressed,omitempty"`
}

// ScoreItem applies a user's weight map to one item. Matched active weights
// are summed per type group, scaled by the same multiplier table the updater
// writes with (intentionally squared end to end: a narrow rejected pattern
// separates much faster than the broad signals it co-occurred with), then
// damped and added to the base score together with the capped mute penalty.
// Deterministic for a fixed weight map; the result is clamped to [0,100].
func ScoreItem(baseScore float64, set SignalSet, weights map[string]WeightRecord) ScoreResult {
	groups := map[SignalType]float64{}
	muteTotal := 0.0
	var matched []Reason

	for _, k := range set.All() {
		rec, ok := weights[k.String()]
		if !ok {
			continue
		}
		if rec.Muted {
			muteTotal += mutePenalty
			if muteTotal < -muteCapMagnitude {
				muteTotal = -muteCapMagnitude
			}
			continue
		}
		groups[groupOf(k.Type)] += rec.Weight
		matched = append(matched, Reason{
			Key:    k.String(),
			Label:  DisplayLabel(k),
			Weight: rec.Weight,
		})
	}

	sum := 0.0
	for typ, groupSum := range groups {
		sum += groupSum * multiplier(typ, false)
	}
	delta := sum*overallScale + muteTotal

	adjusted := baseScore + delta
	if adjusted < 0 {
		adjusted = 0
	} else if adjusted > 100 {
		adjusted = 100
	}

	boosted, suppressed := pickReasons(matched)
	return ScoreResult{
		BaseScore:       baseScore,
		PreferenceDelta: delta,
		AdjustedScore:   adjusted,
		Boosted:         boosted,
		Suppressed:      suppressed,
	}
}

// groupOf folds entities and tools into one accumulation group; they share
// a multiplier.
func groupOf(t SignalType) SignalType {
	if t == TypeTool {
		return TypeEntity
	}
	return t
}

// pickReasons selects the strongest positive and negative matches among the
// non-muted matched signals.
func pickReasons(matched []Reason) (boosted, suppressed []Reason) {
	if len(matched) == 0 {
		return nil, nil
	}
	sorted := make([]Reason, len(matched))
	copy(sorted, matched)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		return sorted[i].Key < sorted[j].Key
	})
	for _, r := range sorted {
		if r.Weight > 0 && len(boosted) < maxReasons {
			boosted = append(boosted, r)
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		r := sorted[i]
		if r.Weight < 0 && len(suppressed) < maxReasons {
			suppressed = append(suppressed, r)
		}
	}
	return boosted, suppressed
}

// ItemSignals is one batch entry for ScoreBatch.
type ItemSignals struct {
	BaseScore float64
	Set       SignalSet
}

// ScoreBatch scores a batch of items against one weight map loaded once for
// the whole batch. Items are independent pure work over a read-only map, so
// they are scored concurrently.
func ScoreBatch(ctx context.Context, items []ItemSignals, weights map[string]WeightRecord) ([]ScoreResult, error) {
	results := make([]ScoreResult, len(items))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range items {
		g.Go(func() error {
			results[i] = ScoreItem(items[i].BaseScore, items[i].Set, weights)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
