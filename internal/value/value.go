// Package value implements the tagged dynamic value type at the heart of
// the AVM1 core: the discriminated union described as component A
// ("Value") — Undefined, Null, Bool, Number, String, Object, Function and
// DisplayRef.
//
// Unlike the Object/Function machinery above it, Value is deliberately a
// plain struct with an explicit Kind discriminator rather than an
// interface with virtual methods: coercion is a property of the *value*,
// not of some type hierarchy, and every ActionScript quirk (NaN==NaN,
// version-gated to-number, ...) is a flat match on Kind. Object and
// Function references are stored as arena indices (ObjectID), never heap
// pointers, so this package never imports the object/runtime package —
// callers that need to dereference an ObjectID go through the Host
// interface in coerce.go.
package value

import "fmt"

// Kind discriminates the alternatives a Value may hold.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindObject
	KindFunction
	KindDisplayRef
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindDisplayRef:
		return "movieclip"
	default:
		return "unknown"
	}
}

// ObjectID is an arena index for an Object record (see internal/runtime).
// Zero is never a valid allocated object; it is used as a sentinel.
type ObjectID uint32

// DisplayRef is a soft reference to a display-graph node identified by its
// original path plus a generation counter. Dereferencing re-walks the live
// graph through Host.ResolveDisplay and may yield "not found" if the node
// was unloaded — this is how ActionScript can hold a "movieclip" value
// past the node's unload without keeping it alive and without dangling.
type DisplayRef struct {
	Path       string
	Generation uint32
}

// Value is the tagged dynamic value. The zero Value is Undefined.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	obj  ObjectID
	ref  DisplayRef
}

// Undefined returns the Undefined value.
func Undefined() Value { return Value{kind: KindUndefined} }

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a Number value. NaN, +/-Inf and signed zero are preserved
// verbatim; callers must not pre-round or normalize.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Object returns an Object value referencing the given arena slot.
func Object(id ObjectID) Value { return Value{kind: KindObject, obj: id} }

// Function returns a Function value. Functions are Objects (spec 3.4);
// the same arena slot backs both, distinguished only by Kind.
func Function(id ObjectID) Value { return Value{kind: KindFunction, obj: id} }

// Display returns a DisplayRef value.
func Display(ref DisplayRef) Value { return Value{kind: KindDisplayRef, ref: ref} }

// Kind reports which alternative this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether v is the Undefined value.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObjectLike reports whether v carries an ObjectID (Object or Function).
func (v Value) IsObjectLike() bool { return v.kind == KindObject || v.kind == KindFunction }

// AsBool returns the raw bool payload; only meaningful when Kind()==KindBool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the raw float64 payload; only meaningful when Kind()==KindNumber.
func (v Value) AsNumber() float64 { return v.num }

// AsString returns the raw string payload; only meaningful when Kind()==KindString.
func (v Value) AsString() string { return v.str }

// AsObjectID returns the arena index; only meaningful for Object/Function kinds.
func (v Value) AsObjectID() ObjectID { return v.obj }

// AsDisplayRef returns the soft reference payload; only meaningful for KindDisplayRef.
func (v Value) AsDisplayRef() DisplayRef { return v.ref }

// GoString supports %#v / debugger printing without going through to_string
// coercion rules (which may re-enter the interpreter).
func (v Value) GoString() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return fmt.Sprintf("%v", v.num)
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindObject:
		return fmt.Sprintf("object#%d", v.obj)
	case KindFunction:
		return fmt.Sprintf("function#%d", v.obj)
	case KindDisplayRef:
		return fmt.Sprintf("movieclip(%s#%d)", v.ref.Path, v.ref.Generation)
	default:
		return "?"
	}
}
