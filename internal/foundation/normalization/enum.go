// Package normalization maps loosely written configuration values onto
// their canonical typed form.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Enum normalizes raw strings to one of a fixed set of typed values.
// Matching ignores case and surrounding whitespace.
type Enum[T ~string] struct {
	name   string
	values map[string]T
	keys   []string
}

// NewEnum builds an Enum. name is used in error messages only.
func NewEnum[T ~string](name string, values map[string]T) *Enum[T] {
	e := &Enum[T]{name: name, values: make(map[string]T, len(values))}
	for k, v := range values {
		key := clean(k)
		e.values[key] = v
		e.keys = append(e.keys, key)
	}
	slices.Sort(e.keys)
	return e
}

// Lookup returns the canonical value for raw.
func (e *Enum[T]) Lookup(raw string) (T, bool) {
	v, ok := e.values[clean(raw)]
	return v, ok
}

// Parse is Lookup with an error listing the accepted values.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if v, ok := e.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (valid: %s)", e.name, raw, strings.Join(e.keys, ", "))
}

// Values returns the accepted names, sorted.
func (e *Enum[T]) Values() []string { return slices.Clone(e.keys) }

// Result describes a single normalization.
type Result[T ~string] struct {
	Value   T
	Changed bool
	Known   bool
}

// Normalize canonicalizes raw. Unknown values yield fallback with Known false.
func (e *Enum[T]) Normalize(raw T, fallback T) Result[T] {
	v, ok := e.Lookup(string(raw))
	if !ok {
		return Result[T]{Value: fallback, Changed: raw != fallback}
	}
	return Result[T]{Value: v, Changed: v != raw, Known: true}
}

func clean(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
