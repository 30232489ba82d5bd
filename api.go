package verity

// Option adjusts how a Spec is compiled.
type Option func(*compileConfig)

type compileConfig struct {
	atomize         bool
	defaultPresence Presence
	casting         bool
}

func defaultCompileConfig() compileConfig {
	return compileConfig{defaultPresence: Required, casting: true}
}

// Atomize normalizes non-canonical map containers (for example map[any]any
// from decoders that do not produce string keys) into map[string]any before
// key lookup, keeping only declared field names.
func Atomize(on bool) Option {
	return func(cfg *compileConfig) { cfg.atomize = on }
}

// DefaultPresence sets the presence applied to keys that do not declare one.
// The compiled default is Required.
func DefaultPresence(p Presence) Option {
	return func(cfg *compileConfig) { cfg.defaultPresence = p }
}

// Casting toggles cast nodes. When disabled, every CastSpec compiles to its
// input type alone and no caster ever runs.
func Casting(on bool) Option {
	return func(cfg *compileConfig) { cfg.casting = on }
}

// Compile translates a declarative Spec into an immutable Type tree. All
// authoring mistakes (unknown primitives, unknown predicates, bad arity,
// duplicate keys, missing casters) surface here as *ProgrammerError; a
// compiled tree validates any input without panicking.
func Compile(spec Spec, opts ...Option) (Type, error) {
	cfg := defaultCompileConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := compiler{cfg: cfg}
	return c.compile(spec)
}

// MustCompile is Compile that panics on error. Intended for package-level
// schema variables where a bad spec should fail at init.
func MustCompile(spec Spec, opts ...Option) Type {
	t, err := Compile(spec, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks value against a compiled type tree starting at the root
// path. It is pure: no I/O, no shared state mutation, safe for concurrent
// use with the same tree.
func Validate(value any, t Type) Outcome {
	return validateAt(value, t, nil)
}
