package signals

import (
	"fmt"
	"strings"

	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
)

// SignalType is the closed set of feature types the preference loop knows
// about. The multiplier tables in updater.go and scorer.go are exhaustive
// over these values.
type SignalType string

const (
	TypeCategory SignalType = "category"
	TypeEntity   SignalType = "entity"
	TypeTool     SignalType = "tool"
	TypeConcept  SignalType = "concept"
	TypeContext  SignalType = "context"
)

// ParseType validates a raw type string against the closed set.
func ParseType(raw string) (SignalType, error) {
	t := SignalType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TypeCategory, TypeEntity, TypeTool, TypeConcept, TypeContext:
		return t, nil
	}
	return "", fmt.Errorf("unknown signal type %q: %w", raw, pkgerrors.ErrInvalidArgument)
}

// SignalKey is a typed, normalized feature key. Values produced by Normalize
// contain only [a-z0-9_-]; context values additionally carry the ':' and '|'
// of their two component keys.
type SignalKey struct {
	Type  SignalType `json:"type"`
	Value string     `json:"value"`
}

func (k SignalKey) String() string {
	return string(k.Type) + ":" + k.Value
}

// Normalize canonicalizes a (type, raw value) pair. Total function: any
// input yields a key, repeated calls on the same input yield the same key.
func Normalize(typ SignalType, raw string) SignalKey {
	t := SignalType(strings.ToLower(strings.TrimSpace(string(typ))))
	return SignalKey{Type: t, Value: NormalizeValue(raw)}
}

// NormalizeValue lowercases and trims, collapses internal whitespace runs to
// a single underscore, and strips every character outside [a-z0-9_-].
func NormalizeValue(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte('_')
			inSpace = false
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseKey splits a stored "type:value" key back into a SignalKey. The split
// is on the first colon only, so context values keep their embedded keys.
func ParseKey(s string) (SignalKey, error) {
	idx := strings.Index(s, ":")
	if idx <= 0 {
		return SignalKey{}, fmt.Errorf("malformed signal key %q: %w", s, pkgerrors.ErrInvalidArgument)
	}
	return SignalKey{Type: SignalType(s[:idx]), Value: s[idx+1:]}, nil
}

// MakeContextKey builds the composite co-occurrence key for a subject
// (entity or tool) and a concept found on the same item.
func MakeContextKey(subject, concept SignalKey) SignalKey {
	return SignalKey{
		Type:  TypeContext,
		Value: subject.String() + "|" + concept.String(),
	}
}

// SplitContextKey recovers the subject and concept halves of a context key.
func SplitContextKey(k SignalKey) (subject, concept SignalKey, ok bool) {
	if k.Type != TypeContext {
		return SignalKey{}, SignalKey{}, false
	}
	left, right, found := strings.Cut(k.Value, "|")
	if !found {
		return SignalKey{}, SignalKey{}, false
	}
	s, err := ParseKey(left)
	if err != nil {
		return SignalKey{}, SignalKey{}, false
	}
	c, err := ParseKey(right)
	if err != nil {
		return SignalKey{}, SignalKey{}, false
	}
	return s, c, true
}

// DisplayLabel renders a key for UI reason lists. Context keys become
// "Subject · Concept"; plain keys become their title-cased value.
func DisplayLabel(k SignalKey) string {
	if k.Type == TypeContext {
		if s, c, ok := SplitContextKey(k); ok {
			return humanize(s.Value) + " · " + humanize(c.Value)
		}
	}
	return humanize(k.Value)
}

func humanize(v string) string {
	words := strings.Split(strings.ReplaceAll(v, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
