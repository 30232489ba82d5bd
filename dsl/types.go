package dsl

import (
	verity "github.com/verity-go/verity"
)

// Type declares a primitive check with extra constraints. Prefer the named
// helpers below; Type is the escape hatch for less common primitives.
func Type(primitive string, preds ...verity.Predicate) verity.Spec {
	return verity.TypeSpec{Primitive: primitive, Predicates: clonePreds(preds)}
}

// String matches string values.
func String(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimString, preds...) }

// Integer matches integer kinds. Floats never qualify, 21.0 included.
func Integer(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimInteger, preds...) }

// Float matches float kinds.
func Float(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimFloat, preds...) }

// Number matches integer or float kinds.
func Number(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimNumber, preds...) }

// Boolean matches bools.
func Boolean(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimBoolean, preds...) }

// Nil matches only nil.
func Nil() verity.Spec { return Type(verity.PrimNil) }

// Any matches everything; constraints still apply.
func Any(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimAny, preds...) }

// DateTime matches time.Time values.
func DateTime(preds ...verity.Predicate) verity.Spec { return Type(verity.PrimDateTime, preds...) }

// Maybe accepts nil or the given spec, nil winning first.
func Maybe(value verity.Spec) verity.Spec { return Union(Nil(), value) }
