package signals

import (
	"encoding/json"
)

// BundleSchemaVersion is the current cached-bundle schema. Version 1 bundles
// predate context derivation; they are backfilled at read time.
const BundleSchemaVersion = 2

// SignalBundle is the JSON shape persisted alongside an item so scoring does
// not re-run extraction per request. Keys are stored in "type:value" form.
type SignalBundle struct {
	SchemaVersion int      `json:"schema_version"`
	Categories    []string `json:"categories,omitempty"`
	Entities      []string `json:"entities,omitempty"`
	Tools         []string `json:"tools,omitempty"`
	Concepts      []string `json:"concepts,omitempty"`
	Contexts      []string `json:"contexts,omitempty"`
}

// NewBundle snapshots an extracted set at the current schema version.
func NewBundle(set SignalSet) SignalBundle {
	return SignalBundle{
		SchemaVersion: BundleSchemaVersion,
		Categories:    keyStrings(set.Categories),
		Entities:      keyStrings(set.Entities),
		Tools:         keyStrings(set.Tools),
		Concepts:      keyStrings(set.Concepts),
		Contexts:      keyStrings(set.Contexts),
	}
}

func (b SignalBundle) Encode() ([]byte, error) {
	return json.Marshal(b)
}

// DecodeBundle parses a stored bundle and migrates older schemas forward.
// ok=false means the payload is unusable and the caller should fall back to
// full re-extraction.
func DecodeBundle(raw []byte) (SignalBundle, bool) {
	if len(raw) == 0 {
		return SignalBundle{}, false
	}
	var b SignalBundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return SignalBundle{}, false
	}
	switch {
	case b.SchemaVersion == BundleSchemaVersion:
		return b, true
	case b.SchemaVersion <= 1:
		// v1 (or unversioned legacy) rows carry no contexts; derive them
		// from the stored keys in stored order and bump the version.
		set, err := b.Set()
		if err != nil {
			return SignalBundle{}, false
		}
		set.Contexts = deriveContexts(set)
		return NewBundle(set), true
	default:
		// Newer than this binary understands.
		return SignalBundle{}, false
	}
}

// Set parses the stored key strings back into a typed SignalSet.
func (b SignalBundle) Set() (SignalSet, error) {
	var set SignalSet
	var err error
	if set.Categories, err = parseKeys(b.Categories); err != nil {
		return SignalSet{}, err
	}
	if set.Entities, err = parseKeys(b.Entities); err != nil {
		return SignalSet{}, err
	}
	if set.Tools, err = parseKeys(b.Tools); err != nil {
		return SignalSet{}, err
	}
	if set.Concepts, err = parseKeys(b.Concepts); err != nil {
		return SignalSet{}, err
	}
	if set.Contexts, err = parseKeys(b.Contexts); err != nil {
		return SignalSet{}, err
	}
	return set, nil
}

func keyStrings(keys []SignalKey) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func parseKeys(raw []string) ([]SignalKey, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]SignalKey, len(raw))
	for i, s := range raw {
		k, err := ParseKey(s)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}
