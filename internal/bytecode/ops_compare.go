package bytecode

import (
	"math"

	"github.com/gnashcore/avm1/internal/value"
)

// opEquals/opLess implement the legacy SWF<=4 numeric comparisons
// (spec 4.5): both operands coerce straight to Number, no string or
// abstract-equality fallback.
func (f *frame) opEquals() {
	b := f.toNumber(f.pop("ActionEquals"))
	a := f.toNumber(f.pop("ActionEquals"))
	f.push(value.Bool(a == b))
}

func (f *frame) opLess() {
	b := f.toNumber(f.pop("ActionLess"))
	a := f.toNumber(f.pop("ActionLess"))
	f.push(value.Bool(a < b))
}

func (f *frame) opGreater() {
	b := f.toNumber(f.pop("ActionGreater"))
	a := f.toNumber(f.pop("ActionGreater"))
	f.push(value.Bool(a > b))
}

func (f *frame) opAnd() {
	b := f.toBool(f.pop("ActionAnd"))
	a := f.toBool(f.pop("ActionAnd"))
	f.push(value.Bool(a && b))
}

func (f *frame) opOr() {
	b := f.toBool(f.pop("ActionOr"))
	a := f.toBool(f.pop("ActionOr"))
	f.push(value.Bool(a || b))
}

func (f *frame) opNot() {
	f.push(value.Bool(!f.toBool(f.pop("ActionNot"))))
}

func (f *frame) opStringEquals() {
	b := f.toString(f.pop("ActionStringEquals"))
	a := f.toString(f.pop("ActionStringEquals"))
	f.push(value.Bool(a == b))
}

func (f *frame) opStringLess() {
	b := f.toString(f.pop("ActionStringLess"))
	a := f.toString(f.pop("ActionStringLess"))
	f.push(value.Bool(a < b))
}

func (f *frame) opStringGreater() {
	b := f.toString(f.pop("ActionStringGreater"))
	a := f.toString(f.pop("ActionStringGreater"))
	f.push(value.Bool(a > b))
}

func (f *frame) opEquals2() {
	b := f.pop("ActionEquals2")
	a := f.pop("ActionEquals2")
	f.push(value.Bool(value.Equals(a, b, f.env.Version(), f.interp.Arena)))
}

func (f *frame) opStrictEquals() {
	b := f.pop("ActionStrictEquals")
	a := f.pop("ActionStrictEquals")
	f.push(value.Bool(f.strictEquals(a, b)))
}

func (f *frame) strictEquals(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.KindUndefined, value.KindNull:
		return true
	case value.KindBool:
		return a.AsBool() == b.AsBool()
	case value.KindNumber:
		return a.AsNumber() == b.AsNumber()
	case value.KindString:
		return a.AsString() == b.AsString()
	case value.KindObject, value.KindFunction:
		return a.AsObjectID() == b.AsObjectID()
	case value.KindDisplayRef:
		ra, rb := a.AsDisplayRef(), b.AsDisplayRef()
		return ra.Path == rb.Path && ra.Generation == rb.Generation
	default:
		return false
	}
}

// opLess2 implements the spec 4.1 relational comparison used by
// ActionLess2: a string comparison if both primitives are strings,
// otherwise a numeric one where either side being NaN makes the
// comparison false (the usual ECMA-262 < semantics, distinct from
// Equals2's NaN==NaN quirk).
func (f *frame) opLess2() {
	bv := f.pop("ActionLess2")
	av := f.pop("ActionLess2")
	f.push(value.Bool(f.lessThan(av, bv)))
}

func (f *frame) lessThan(a, b value.Value) bool {
	pa, okA := f.toPrimitiveOrUndef(a, value.HintNumber)
	pb, okB := f.toPrimitiveOrUndef(b, value.HintNumber)
	if !okA || !okB {
		return false
	}
	if pa.Kind() == value.KindString && pb.Kind() == value.KindString {
		return pa.AsString() < pb.AsString()
	}
	an, bn := f.toNumber(pa), f.toNumber(pb)
	if math.IsNaN(an) || math.IsNaN(bn) {
		return false
	}
	return an < bn
}
