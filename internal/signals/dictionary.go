package signals

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var dictionaryYAML []byte

// Entry maps one dictionary key to the synonym substrings that trigger it.
// The first synonym found in an item's haystack matches the entry; there is
// no confidence scoring.
type Entry struct {
	Key      string   `yaml:"key"`
	Synonyms []string `yaml:"synonyms"`
}

type dictionaryFile struct {
	Concepts []Entry  `yaml:"concepts"`
	Entities []Entry  `yaml:"entities"`
	Tools    []Entry  `yaml:"tools"`
	Toxic    []string `yaml:"toxic"`
}

// Dictionary is the static keyword configuration the extractor matches
// against. Read-only after Load; entry order is the file order and is part
// of observable behavior (context truncation follows it).
type Dictionary struct {
	concepts []Entry
	entities []Entry
	tools    []Entry
	toxic    map[string]bool
}

// Load parses the embedded dictionary. Keys are validated to already be in
// normalized form so that dictionary keys and extracted keys always agree.
func Load() (*Dictionary, error) {
	var f dictionaryFile
	if err := yaml.Unmarshal(dictionaryYAML, &f); err != nil {
		return nil, fmt.Errorf("parse signal dictionary: %w", err)
	}

	d := &Dictionary{
		concepts: f.Concepts,
		entities: f.Entities,
		tools:    f.Tools,
		toxic:    make(map[string]bool, len(f.Toxic)),
	}

	for _, group := range [][]Entry{d.concepts, d.entities, d.tools} {
		for _, e := range group {
			if e.Key == "" || len(e.Synonyms) == 0 {
				return nil, fmt.Errorf("signal dictionary entry %q has no key or synonyms", e.Key)
			}
			if got := NormalizeValue(e.Key); got != e.Key {
				return nil, fmt.Errorf("signal dictionary key %q is not normalized (want %q)", e.Key, got)
			}
		}
	}

	for _, k := range f.Toxic {
		if got := NormalizeValue(k); got != k {
			return nil, fmt.Errorf("toxic concept %q is not normalized (want %q)", k, got)
		}
		d.toxic[Normalize(TypeConcept, k).String()] = true
	}
	return d, nil
}

func (d *Dictionary) Concepts() []Entry { return d.concepts }
func (d *Dictionary) Entities() []Entry { return d.entities }
func (d *Dictionary) Tools() []Entry    { return d.tools }

// IsToxic reports whether a concept key (full "concept:value" form) is in
// the flagged sensitive set.
func (d *Dictionary) IsToxic(conceptKey string) bool {
	return d.toxic[conceptKey]
}
