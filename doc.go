package verity

// Package verity provides:
//
// - Declarative schemas compiled once (Compile/MustCompile) into immutable type trees
// - A recursive validator (Validate) returning a success value or a structured error tree
// - A stable error model (Leaf/Group/OrError/CastError/RuleError, JSON Pointer paths)
// - Contracts pairing a schema with named cross-field rules (Conform/ConformJSON/ConformYAML)
// - Extensible predicate and caster registries shared process-wide
//
// Design policy:
// - Keep only public APIs in the root package; helpers stay unexported.
// - Place schema builders under dsl/, rule combinators under rules/, rendering under message/.
// - Compile reports authoring mistakes as *ProgrammerError; validation never panics on data.
//
// Typical usage:
//
//	t := verity.MustCompile(spec)
//	out := verity.Validate(value, t)
//	if !out.OK() {
//		for _, n := range verity.Flatten(out.Err) { ... }
//	}
//
//	c := verity.NewContract().Schema(spec).Rules(rs...).MustBuild()
//	out, err := c.ConformJSON(data)
