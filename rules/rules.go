package rules

import (
	"fmt"
	"reflect"

	verity "github.com/verity-go/verity"
)

// Guards and bodies compose into verity.Rule values over the validated
// output, which for map schemas is always map[string]any. Pointers are JSON
// Pointers like "/user/name"; a leading slash is expected but tolerated
// when missing by verity.ParsePointer.

// New assembles a named rule from a guard and a body.
func New(name string, guard func(any) bool, body func(any) error) verity.Rule {
	return verity.Rule{Name: name, Guard: guard, Body: body}
}

// ---- guards ----

// Always never skips.
func Always(any) bool { return true }

// KeyPresent holds when pointer resolves to a value, nil included.
func KeyPresent(pointer string) func(any) bool {
	path := verity.ParsePointer(pointer)
	return func(v any) bool {
		_, ok := lookup(v, path)
		return ok
	}
}

// KeyEquals holds when pointer resolves to a value equal to want. Integer
// and float kinds compare by numeric value.
func KeyEquals(pointer string, want any) func(any) bool {
	path := verity.ParsePointer(pointer)
	return func(v any) bool {
		got, ok := lookup(v, path)
		return ok && equalValues(got, want)
	}
}

// AllNil holds when every pointer is present and bound to nil. An absent
// key does not count as nil.
func AllNil(pointers ...string) func(any) bool {
	paths := make([]verity.Path, len(pointers))
	for i, p := range pointers {
		paths[i] = verity.ParsePointer(p)
	}
	return func(v any) bool {
		for _, path := range paths {
			got, ok := lookup(v, path)
			if !ok || got != nil {
				return false
			}
		}
		return true
	}
}

// Not inverts a guard.
func Not(g func(any) bool) func(any) bool {
	return func(v any) bool { return !g(v) }
}

// All holds when every guard holds.
func All(guards ...func(any) bool) func(any) bool {
	return func(v any) bool {
		for _, g := range guards {
			if !g(v) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one guard holds.
func Any(guards ...func(any) bool) func(any) bool {
	return func(v any) bool {
		for _, g := range guards {
			if g(v) {
				return true
			}
		}
		return false
	}
}

// ---- bodies ----

// Fail reports text at the root.
func Fail(text string) func(any) error {
	return func(any) error { return &verity.RuleViolation{Text: text} }
}

// Failf formats the violation text.
func Failf(format string, args ...any) func(any) error {
	text := fmt.Sprintf(format, args...)
	return func(any) error { return &verity.RuleViolation{Text: text} }
}

// FailAt reports text under the given pointer.
func FailAt(pointer, text string) func(any) error {
	path := verity.ParsePointer(pointer)
	return func(any) error { return &verity.RuleViolation{Path: path, Text: text} }
}

// FailWith reports text under pointer with extra metadata attached.
func FailWith(pointer, text string, meta map[string]any) func(any) error {
	path := verity.ParsePointer(pointer)
	return func(any) error { return &verity.RuleViolation{Path: path, Text: text, Meta: meta} }
}

// ---- helpers ----

func lookup(v any, path verity.Path) (any, bool) {
	cur := v
	for _, seg := range path {
		if seg.IsIndex {
			list, ok := cur.([]any)
			if !ok || seg.Index < 0 || seg.Index >= len(list) {
				return nil, false
			}
			cur = list[seg.Index]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg.Key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func equalValues(a, b any) bool {
	if fa, ok := numeric(a); ok {
		fb, ok := numeric(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}
