package runtime

import (
	"github.com/gnashcore/avm1/internal/value"
)

// Object is a scripted object record (component D): a PropertyStore plus
// the links that make prototype-based inheritance and instanceof work.
// Object never holds a Go pointer to another Object — every link is a
// value.ObjectID resolved through the owning Arena, so the object graph
// can contain cycles (prototype loops, self-referential constructors)
// without any cycle-aware reference counting.
type Object struct {
	Store PropertyStore

	// Prototype is the __proto__ link (0 = none).
	Prototype value.ObjectID
	// Constructor is the function that produced this object via `new`
	// (0 = none, e.g. for the literal {} / [] forms).
	Constructor value.ObjectID
	// Interfaces lists additional prototypes instanceof must also walk
	// (AS2 "implements"); empty for ordinary objects.
	Interfaces []value.ObjectID

	// NativeRelay is an opaque handle identifying this object as an
	// instance of a host-provided native class (Date, Sound, XML, ...).
	// ActionScript never sees it directly; built-in methods type-assert
	// it to reach native state. nil for plain scripted objects.
	NativeRelay any
	// ClassName names the relay class ("Object" by default) for
	// to_primitive fallback strings and typeof-adjacent diagnostics.
	ClassName string

	// Fn is non-nil when this object is also callable (spec 3.4:
	// "Functions are Objects"). A Function's own prototype/constructor
	// fields above are its `.prototype` / `.prototype.constructor` slots.
	Fn *Function

	// watchers holds this object's TriggerTable (component J), created
	// lazily on first Watch call; most objects never have one.
	watchers map[propKey]*Trigger
}

// NewObject returns a fresh plain object with no prototype and an empty
// property store.
func NewObject() *Object {
	return &Object{Store: newPropertyStore(), ClassName: "Object"}
}

// NewFunctionObject returns a fresh callable object wrapping fn. Its own
// PropertyStore carries the eventual `prototype` slot; NewFunctionObject
// adds no `prototype` slot and sets no `constructor` back-pointer itself,
// so callers wire those up.
func NewFunctionObject(fn *Function) *Object {
	return &Object{Store: newPropertyStore(), ClassName: "Function", Fn: fn}
}
