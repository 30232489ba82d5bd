package dsl

import (
	verity "github.com/verity-go/verity"
)

// Schema assembles a map spec from key declarations. Declaration order is
// preserved and drives failure ordering.
func Schema(keys ...verity.KeySpec) verity.Spec {
	out := make([]verity.KeySpec, len(keys))
	copy(out, keys)
	return verity.MapSpec{Keys: out}
}

// Required declares a key that must be present.
func Required(name string, value verity.Spec) verity.KeySpec {
	return verity.KeySpec{Name: name, Presence: verity.Required, Value: value}
}

// Optional declares a key that may be absent; when absent, nothing about it
// is checked and it does not appear in the output.
func Optional(name string, value verity.Spec) verity.KeySpec {
	return verity.KeySpec{Name: name, Presence: verity.Optional, Value: value}
}

// Key declares a key with the schema's default presence.
func Key(name string, value verity.Spec) verity.KeySpec {
	return verity.KeySpec{Name: name, Value: value}
}

// List declares a homogeneous list with optional list-level constraints.
func List(member verity.Spec, preds ...verity.Predicate) verity.Spec {
	return verity.ListSpec{Member: member, Predicates: clonePreds(preds)}
}

// Union declares ordered alternatives. More than two fold to the right, so
// Union(a, b, c) tries a, then b, then c.
func Union(first, second verity.Spec, rest ...verity.Spec) verity.Spec {
	if len(rest) == 0 {
		return verity.UnionSpec{Left: first, Right: second}
	}
	return verity.UnionSpec{Left: first, Right: Union(second, rest[0], rest[1:]...)}
}

// CastOption tweaks a cast declaration.
type CastOption func(*verity.CastOpts)

// WithCaster overrides the registered caster for this node only.
func WithCaster(fn verity.CasterFunc) CastOption {
	return func(o *verity.CastOpts) { o.Caster = fn }
}

// WithUnit selects the epoch unit for integer to date_time casts.
func WithUnit(unit string) CastOption {
	return func(o *verity.CastOpts) { o.Unit = unit }
}

// Cast declares input validation, conversion, then output validation.
func Cast(input, output verity.Spec, opts ...CastOption) verity.Spec {
	var co verity.CastOpts
	for _, opt := range opts {
		opt(&co)
	}
	return verity.CastSpec{Input: input, Output: output, Opts: co}
}

func clonePreds(preds []verity.Predicate) []verity.Predicate {
	if len(preds) == 0 {
		return nil
	}
	out := make([]verity.Predicate, len(preds))
	copy(out, preds)
	return out
}
