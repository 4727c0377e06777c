package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/gnashcore/avm1/internal/swfver"
)

// Host is the minimal callback surface coercion needs in order to re-enter
// user code (valueOf/toString probes, Date-relay detection, display-graph
// resolution) without this package importing the object/runtime packages.
// internal/runtime implements this interface over its Object arena.
type Host interface {
	// GetMember looks up a named property on obj, following the
	// prototype chain and invoking getters (spec 4.2 read path).
	GetMember(obj ObjectID, name string) (Value, bool)

	// Call invokes a callable object (obj must be callable) with the
	// given `this` and arguments, returning its result.
	Call(obj ObjectID, this ObjectID, args []Value) (Value, error)

	// IsCallable reports whether obj is a Function object.
	IsCallable(obj ObjectID) bool

	// ClassName returns the relay class name ("Object", "Function",
	// "Date", ...) used for default to_string fallbacks.
	ClassName(obj ObjectID) string

	// IsDateRelay reports whether obj carries a Date native relay,
	// which changes to_primitive/to_number probe order under SWF > 5.
	IsDateRelay(obj ObjectID) bool

	// ResolveDisplay dereferences a DisplayRef against the live display
	// graph. ok is false if the node no longer exists.
	ResolveDisplay(ref DisplayRef) (obj ObjectID, isMovieClip bool, ok bool)
}

// CoercionError is returned by ToPrimitive when neither valueOf nor
// toString resolves to a callable, or a probe's return is itself an
// object (spec 4.1 to_primitive, 7 CoercionError).
type CoercionError struct {
	Hint string
}

func (e *CoercionError) Error() string {
	return "cannot convert value to primitive (hint " + e.Hint + ")"
}

// Hint selects the probe order for ToPrimitive.
type Hint int

const (
	HintNumber Hint = iota
	HintString
)

// ToPrimitive implements spec 4.1 to_primitive. Non-object values are
// returned unchanged. Re-entrancy (a probe that itself triggers more
// coercion) is allowed and simply flows through Host.Call.
func ToPrimitive(v Value, hint Hint, host Host) (Value, error) {
	if !v.IsObjectLike() {
		return v, nil
	}
	probes := []string{"valueOf", "toString"}
	if hint == HintString {
		probes = []string{"toString", "valueOf"}
	}
	id := v.AsObjectID()
	for _, name := range probes {
		fnVal, ok := host.GetMember(id, name)
		if !ok || !fnVal.IsObjectLike() || !host.IsCallable(fnVal.AsObjectID()) {
			continue
		}
		result, err := host.Call(fnVal.AsObjectID(), id, nil)
		if err != nil {
			return Undefined(), err
		}
		if result.IsObjectLike() {
			return Undefined(), &CoercionError{Hint: hintName(hint)}
		}
		return result, nil
	}
	return Undefined(), &CoercionError{Hint: hintName(hint)}
}

func hintName(h Hint) string {
	if h == HintString {
		return "string"
	}
	return "number"
}

// ToNumber implements spec 4.1 to_number.
func ToNumber(v Value, ver swfver.Version, host Host) float64 {
	switch v.Kind() {
	case KindNumber:
		return v.AsNumber()
	case KindBool:
		if v.AsBool() {
			return 1
		}
		return 0
	case KindUndefined, KindNull:
		if ver.NullCoercesToZero() {
			return 0
		}
		return math.NaN()
	case KindString:
		return stringToNumber(v.AsString(), ver)
	case KindDisplayRef:
		return math.NaN()
	case KindObject, KindFunction:
		if host != nil && host.IsDateRelay(v.AsObjectID()) && ver > swfver.V5 {
			prim, err := ToPrimitive(v, HintString, host)
			if err != nil {
				return math.NaN()
			}
			return ToNumber(prim, ver, host)
		}
		if host == nil {
			return math.NaN()
		}
		prim, err := ToPrimitive(v, HintNumber, host)
		if err != nil {
			return math.NaN()
		}
		return ToNumber(prim, ver, host)
	default:
		return math.NaN()
	}
}

// ToInt32 implements the ECMA-262 ToInt32 abstract operation used by
// the bitwise/shift opcode family and ActionToInteger (spec 4.5
// "Logical / bitwise": "integer ops coerce to int32 per 4.1"). NaN and
// infinities coerce to 0.
func ToInt32(v Value, ver swfver.Version, host Host) int32 {
	n := ToNumber(v, ver, host)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	trunc := math.Trunc(n)
	const twoPow32 = 4294967296.0
	mod := math.Mod(trunc, twoPow32)
	if mod < 0 {
		mod += twoPow32
	}
	if mod >= twoPow32/2 {
		mod -= twoPow32
	}
	return int32(mod)
}

func failureValue(ver swfver.Version) float64 {
	if ver <= swfver.V4 {
		return 0
	}
	return math.NaN()
}

// stringToNumber parses a trimmed decimal literal, a "0x"-prefixed hex
// literal (SWF >= 5), or an exactly-8-hex-digit color literal treated as
// a decimal integer. Failure yields 0 under SWF <= 4, NaN otherwise.
func stringToNumber(s string, ver swfver.Version) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		if ver <= swfver.V6 {
			return 0
		}
		return failureValue(ver)
	}
	if ver.AcceptsHexLiterals() {
		neg := false
		rest := trimmed
		if strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, "+") {
			neg = rest[0] == '-'
			rest = rest[1:]
		}
		if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
			hex := rest[2:]
			if len(hex) == 8 {
				if n, err := strconv.ParseInt(hex, 16, 64); err == nil {
					if neg {
						n = -n
					}
					return float64(n)
				}
			}
			if n, err := strconv.ParseUint(hex, 16, 64); err == nil {
				v := float64(n)
				if neg {
					v = -v
				}
				return v
			}
			return failureValue(ver)
		}
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return failureValue(ver)
	}
	return n
}

// ToString implements spec 4.1 to_string.
func ToString(v Value, ver swfver.Version, host Host) string {
	switch v.Kind() {
	case KindString:
		return v.AsString()
	case KindNumber:
		return FormatNumber(v.AsNumber())
	case KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case KindUndefined:
		if ver <= swfver.V6 {
			return ""
		}
		return "undefined"
	case KindNull:
		return "null"
	case KindDisplayRef:
		return v.AsDisplayRef().Path
	case KindFunction:
		if host != nil {
			prim, err := ToPrimitive(v, HintString, host)
			if err == nil {
				return ToString(prim, ver, host)
			}
		}
		return "[type Function]"
	case KindObject:
		if host != nil {
			prim, err := ToPrimitive(v, HintString, host)
			if err == nil {
				return ToString(prim, ver, host)
			}
		}
		return "[type Object]"
	default:
		return ""
	}
}

// ToBool implements spec 4.1 to_bool under the three version-gated
// tables (v5, v6, v7+).
func ToBool(v Value, ver swfver.Version) bool {
	switch v.Kind() {
	case KindUndefined, KindNull:
		return false
	case KindBool:
		return v.AsBool()
	case KindNumber:
		n := v.AsNumber()
		if math.IsNaN(n) {
			return false
		}
		if ver >= swfver.V7 {
			return n != 0
		}
		if math.IsInf(n, 0) {
			return ver == swfver.V5
		}
		return n != 0
	case KindString:
		s := v.AsString()
		if ver >= swfver.V7 {
			return s != ""
		}
		if s == "true" {
			return true
		}
		if s == "false" {
			return false
		}
		n := stringToNumber(s, ver)
		if math.IsNaN(n) {
			return false
		}
		if math.IsInf(n, 0) {
			return ver == swfver.V5
		}
		return n != 0
	case KindObject, KindFunction, KindDisplayRef:
		return true
	default:
		return false
	}
}

// TypeOf implements spec 4.1 typeof. isSuper marks a Function value that
// is acting as a "super" reference (reports "object" instead of
// "function"). isMovieClip marks a DisplayRef that currently resolves to
// a MovieClip node (reports "movieclip"); any other DisplayRef reports
// "object".
func TypeOf(v Value, isSuper bool, isMovieClip bool) string {
	switch v.Kind() {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindFunction:
		if isSuper {
			return "object"
		}
		return "function"
	case KindObject:
		return "object"
	case KindDisplayRef:
		if isMovieClip {
			return "movieclip"
		}
		return "object"
	default:
		return "undefined"
	}
}
