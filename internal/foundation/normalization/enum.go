// Package normalization parses loosely written configuration values into
// typed string enums.
package normalization

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrUnknownValue is returned by Enum.Parse for values outside the enum.
var ErrUnknownValue = errors.New("unknown value")

// Enum maps spellings, compared case-insensitively after trimming, to values.
type Enum[T ~string] struct {
	values   map[string]T
	fallback T
}

// NewEnum builds an Enum. Every value also accepts its own spelling, so
// aliases are only needed for alternative names.
func NewEnum[T ~string](fallback T, values ...T) *Enum[T] {
	e := &Enum[T]{values: make(map[string]T, len(values)), fallback: fallback}
	for _, v := range values {
		e.values[fold(string(v))] = v
	}
	return e
}

// Alias registers an alternative spelling for v.
func (e *Enum[T]) Alias(spelling string, v T) *Enum[T] {
	e.values[fold(spelling)] = v
	return e
}

// Parse returns the value for raw. Blank input yields the fallback.
func (e *Enum[T]) Parse(raw string) (T, error) {
	key := fold(raw)
	if key == "" {
		return e.fallback, nil
	}
	if v, ok := e.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w %q (one of %s)", ErrUnknownValue, raw, strings.Join(e.Spellings(), ", "))
}

// Spellings returns every accepted spelling in sorted order.
func (e *Enum[T]) Spellings() []string {
	return slices.Sorted(maps.Keys(e.values))
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
