package verity

// Type is a node of the compiled, immutable type tree. The closed set of
// variants is Primitive, MapType, ListType, SumType and CastType. A compiled
// tree is safe for unbounded concurrent Validate calls.
type Type interface {
	typeNode()
}

// Predicate is a named constraint with its declared arguments. Arity is
// fixed by the registry and checked during compilation.
type Predicate struct {
	Name string
	Args []any
}

// Primitive checks a scalar against an ordered, AND-joined constraint list.
// Evaluation stops at the first failing predicate.
type Primitive struct {
	Name        string
	Constraints []Predicate
}

// Key is a compiled map entry. Path is non-empty and names where the value
// lives relative to the enclosing map.
type Key struct {
	Path     Path
	Presence Presence
	Type     Type
}

// MapType validates every declared key independently. Constraints hold the
// map type check and run before any key is inspected. Atomize enables
// normalization of non-canonical containers against the declared-name
// allowlist; unknown input fields are dropped, never errored.
type MapType struct {
	Keys        []Key
	Atomize     bool
	Constraints []Predicate
}

// ListType applies Constraints to the whole collection first, then Member to
// every element.
type ListType struct {
	Member      Type
	Constraints []Predicate
}

// SumType is an ordered alternation; Left is always attempted first and any
// success wins.
type SumType struct {
	Left  Type
	Right Type
}

// CastType validates Input, transforms the value, then validates Output.
// The caster is resolved from the (input, output) primitive pair at
// validation time unless Opts carries an override.
type CastType struct {
	Input  Type
	Output Type
	Opts   CastOpts
}

func (*Primitive) typeNode() {}
func (*MapType) typeNode()   {}
func (*ListType) typeNode()  {}
func (*SumType) typeNode()   {}
func (*CastType) typeNode()  {}

// Known primitive names. Compilation rejects anything else.
const (
	PrimAny      = "any"
	PrimNil      = "nil"
	PrimString   = "string"
	PrimInteger  = "integer"
	PrimFloat    = "float"
	PrimNumber   = "number"
	PrimBoolean  = "boolean"
	PrimMap      = "map"
	PrimList     = "list"
	PrimDateTime = "date_time"
)

func knownPrimitive(name string) bool {
	switch name {
	case PrimAny, PrimNil, PrimString, PrimInteger, PrimFloat,
		PrimNumber, PrimBoolean, PrimMap, PrimList, PrimDateTime:
		return true
	default:
		return false
	}
}

// primitiveName reports the primitive a type tree represents at its surface;
// cast ends must resolve to one.
func primitiveName(t Type) (string, bool) {
	switch n := t.(type) {
	case *Primitive:
		return n.Name, true
	case *MapType:
		return PrimMap, true
	case *ListType:
		return PrimList, true
	default:
		return "", false
	}
}
