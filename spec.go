package verity

// Spec is the raw, author-written schema description before compilation.
// Specs are plain data: construct them with the dsl package, decode them
// from schema documents, or build the variant structs directly.
type Spec interface {
	spec()
}

// KeySpec is one declared entry of a MapSpec. PresenceDefault resolves to
// the DefaultPresence compile option.
type KeySpec struct {
	Name     string
	Presence Presence
	Value    Spec
}

// MapSpec declares a map shape as an ordered key list. Order is preserved
// through compilation and drives error ordering.
type MapSpec struct {
	Keys []KeySpec
}

// TypeSpec declares a primitive with an ordered predicate list. The type
// check itself is implicit and always runs first.
type TypeSpec struct {
	Primitive  string
	Predicates []Predicate
}

// ListSpec declares a homogeneous list. Predicates apply to the list as a
// whole; Member applies per element.
type ListSpec struct {
	Member     Spec
	Predicates []Predicate
}

// UnionSpec declares a left-biased two-way alternative.
type UnionSpec struct {
	Left  Spec
	Right Spec
}

// CastSpec declares input validation, transformation, then output
// validation. Input and output must describe primitives; the caster is
// resolved from the (input, output) primitive pair unless Opts overrides it.
type CastSpec struct {
	Input  Spec
	Output Spec
	Opts   CastOpts
}

func (MapSpec) spec()   {}
func (TypeSpec) spec()  {}
func (ListSpec) spec()  {}
func (UnionSpec) spec() {}
func (CastSpec) spec()  {}

// typeRef passes an already-compiled Type through compilation unchanged,
// enabling named sub-schema sharing.
type typeRef struct {
	t Type
}

func (typeRef) spec() {}

// FromType wraps a compiled Type so it can be embedded in a larger Spec
// without recompilation.
func FromType(t Type) Spec { return typeRef{t: t} }
