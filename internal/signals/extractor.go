package signals

import (
	"strings"
)

// excerptLimit bounds how much article body text participates in matching.
const excerptLimit = 2000

// maxContexts caps derived co-occurrence keys per item. Truncation follows
// dictionary iteration order, not toxicity priority: an item matching three
// concepts where only the third is toxic can drop the toxic context.
const maxContexts = 2

// ExtractInput is the analyzed content handed over by the upstream provider.
// Every field except Title is optional.
type ExtractInput struct {
	Title      string `json:"title"`
	Summary    string `json:"summary,omitempty"`
	Categories string `json:"categories,omitempty"` // comma-separated labels
	Excerpt    string `json:"excerpt,omitempty"`
}

// SignalSet is the typed result of extraction. Contexts pair each matched
// subject (entity or tool) with each matched concept of the same item.
type SignalSet struct {
	Categories []SignalKey `json:"categories"`
	Entities   []SignalKey `json:"entities"`
	Tools      []SignalKey `json:"tools"`
	Concepts   []SignalKey `json:"concepts"`
	Contexts   []SignalKey `json:"contexts"`
}

// All returns every distinct key in the set as one flat list, in extraction
// order. Callers iterate this for weight updates and scoring.
func (s SignalSet) All() []SignalKey {
	out := make([]SignalKey, 0,
		len(s.Categories)+len(s.Entities)+len(s.Tools)+len(s.Concepts)+len(s.Contexts))
	out = append(out, s.Categories...)
	out = append(out, s.Entities...)
	out = append(out, s.Tools...)
	out = append(out, s.Concepts...)
	out = append(out, s.Contexts...)
	return out
}

func (s SignalSet) Empty() bool {
	return len(s.Categories) == 0 && len(s.Entities) == 0 && len(s.Tools) == 0 &&
		len(s.Concepts) == 0 && len(s.Contexts) == 0
}

// Extractor matches item text against the static dictionary. Pure: no I/O,
// no mutable state, identical input always yields an identical set.
type Extractor struct {
	dict *Dictionary
}

func NewExtractor(dict *Dictionary) *Extractor {
	return &Extractor{dict: dict}
}

func (e *Extractor) Extract(in ExtractInput) SignalSet {
	excerpt := in.Excerpt
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}
	haystack := strings.ToLower(in.Title + " " + in.Summary + " " + excerpt)

	set := SignalSet{
		Categories: parseCategories(in.Categories),
		Entities:   matchEntries(haystack, e.dict.Entities(), TypeEntity),
		Tools:      matchEntries(haystack, e.dict.Tools(), TypeTool),
		Concepts:   matchEntries(haystack, e.dict.Concepts(), TypeConcept),
	}
	set.Contexts = deriveContexts(set)
	return set
}

// parseCategories takes the provider's comma-separated label string verbatim
// through the codec; categories are never keyword-matched.
func parseCategories(labels string) []SignalKey {
	if strings.TrimSpace(labels) == "" {
		return nil
	}
	var out []SignalKey
	seen := map[string]bool{}
	for _, part := range strings.Split(labels, ",") {
		k := Normalize(TypeCategory, part)
		if k.Value == "" || seen[k.Value] {
			continue
		}
		seen[k.Value] = true
		out = append(out, k)
	}
	return out
}

// matchEntries walks the dictionary in order; the first synonym found in the
// haystack includes the entry's key and stops scanning that entry.
func matchEntries(haystack string, entries []Entry, typ SignalType) []SignalKey {
	var out []SignalKey
	for _, entry := range entries {
		for _, syn := range entry.Synonyms {
			if strings.Contains(haystack, strings.ToLower(syn)) {
				out = append(out, SignalKey{Type: typ, Value: entry.Key})
				break
			}
		}
	}
	return out
}

// deriveContexts pairs every subject (entities then tools, dictionary order)
// with every concept of the same item, truncated to the first maxContexts.
func deriveContexts(set SignalSet) []SignalKey {
	if len(set.Concepts) == 0 {
		return nil
	}
	var out []SignalKey
	subjects := make([]SignalKey, 0, len(set.Entities)+len(set.Tools))
	subjects = append(subjects, set.Entities...)
	subjects = append(subjects, set.Tools...)
	for _, subject := range subjects {
		for _, concept := range set.Concepts {
			out = append(out, MakeContextKey(subject, concept))
			if len(out) >= maxContexts {
				return out
			}
		}
	}
	return out
}
