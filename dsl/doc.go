// Package dsl builds verity specs as plain data.
//
// Overview
//   - Schema/Required/Optional/Key declare maps; declaration order is kept
//     and drives both validation and failure ordering.
//   - String()/Integer()/Float()/Number()/Boolean()/Nil()/Any()/DateTime()
//     declare primitives; predicates attach as arguments.
//   - List(member), Union(a, b, ...), Cast(in, out, ...) compose nodes.
//   - Filled()/Empty()/Gt()/Size()/Match()/... build predicate references;
//     Check(name, args...) reaches registered custom predicates.
//
// Builders only assemble data. Nothing is resolved or checked until
// verity.Compile, which reports authoring mistakes as *ProgrammerError.
//
// Example
//
//	spec := dsl.Schema(
//	    dsl.Required("name", dsl.String(dsl.Filled())),
//	    dsl.Required("age", dsl.Integer()),
//	)
//	t := verity.MustCompile(spec)
//	out := verity.Validate(input, t)
//
// Example (nesting and alternatives)
//
//	spec := dsl.Schema(
//	    dsl.Required("user", dsl.Schema(
//	        dsl.Required("name", dsl.String(dsl.Filled())),
//	    )),
//	    dsl.Optional("tags", dsl.List(dsl.String(), dsl.MinSize(1))),
//	    dsl.Optional("contact", dsl.Union(dsl.String(), dsl.Schema(
//	        dsl.Required("email", dsl.String()),
//	    ))),
//	)
//
// Example (casting)
//
//	spec := dsl.Schema(
//	    dsl.Required("age", dsl.Cast(dsl.String(), dsl.Integer(dsl.Gteq(0)))),
//	    dsl.Required("since", dsl.Cast(dsl.Integer(), dsl.DateTime(),
//	        dsl.WithUnit(verity.UnitMillisecond))),
//	)
package dsl
