package value

import (
	"math"

	"github.com/gnashcore/avm1/internal/swfver"
)

// Equals implements spec 4.1 value equality (the "==" operator's
// abstract-equality semantics, not strict/"===" equality). NaN==NaN is
// true here, diverging from IEEE 754 comparison and from ECMA-262
// itself: ActionScript's own abstract-equality table treats two NaN
// operands as equal once both sides have coerced to Number, which is
// what callers of this function already did by this point.
func Equals(a, b Value, ver swfver.Version, host Host) bool {
	if a.Kind() == b.Kind() {
		return sameKindEquals(a, b)
	}

	// SWF <= 5: an undefined/null operand compared against a Function
	// is comparable (both sides treated as "no value"), per the
	// reference player's looser pre-v6 equality.
	if ver <= swfver.V5 {
		if isNullish(a) && b.Kind() == KindFunction {
			return true
		}
		if isNullish(b) && a.Kind() == KindFunction {
			return true
		}
	}

	if isNullish(a) && isNullish(b) {
		return true
	}
	if isNullish(a) || isNullish(b) {
		return false
	}

	// Mixed-kind comparison: coerce both sides to Number, following the
	// reference player's abstract-equality fallback (spec 4.1).
	an := ToNumber(a, ver, host)
	bn := ToNumber(b, ver, host)
	if math.IsNaN(an) && math.IsNaN(bn) {
		return true
	}
	return an == bn
}

func isNullish(v Value) bool {
	return v.IsUndefined() || v.IsNull()
}

func sameKindEquals(a, b Value) bool {
	switch a.Kind() {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.AsBool() == b.AsBool()
	case KindNumber:
		an, bn := a.AsNumber(), b.AsNumber()
		if math.IsNaN(an) && math.IsNaN(bn) {
			return true
		}
		return an == bn
	case KindString:
		return a.AsString() == b.AsString()
	case KindObject, KindFunction:
		return a.AsObjectID() == b.AsObjectID()
	case KindDisplayRef:
		ra, rb := a.AsDisplayRef(), b.AsDisplayRef()
		return ra.Path == rb.Path && ra.Generation == rb.Generation
	default:
		return false
	}
}
