// Package builtins implements spec 6's "numeric semantics worth
// pinning": the global functions parseInt, parseFloat, escape,
// unescape, and ASSetPropFlags. Each is plain Go free functions
// (numeric.go, encoding.go, propflags.go) operating on primitive Go
// values or a narrow Arena slice, wired to AVM1-callable
// runtime.NativeFunc wrappers only in this file — the actual logic
// carries no dependency on value.Value or the object graph beyond what
// each built-in's own argument coercion needs.
//
// Grounded on the teacher's internal/bytecode/vm_builtins.go: one
// registerXBuiltins per concern, all invoked from a single Register
// entry point, with the implementation itself split across
// concern-named files.
package builtins

import (
	"math"

	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/swfver"
	"github.com/gnashcore/avm1/internal/value"
)

// arena is the full capability this file's registration needs beyond
// propFlagsArena: installing a native function as a member of the
// global object.
type arena interface {
	propFlagsArena
	New(obj *runtime.Object) value.ObjectID
	SetMember(obj value.ObjectID, name string, v value.Value, foldCase bool) error
}

// Register installs parseInt, parseFloat, escape, unescape, and
// ASSetPropFlags as DontEnum|DontDelete members of global (spec 4.2
// "Property initialization", runtime.BuiltinDefault). ver decides the
// ToNumber/ToString coercion rules arguments go through, matching the
// declaring movie's SWF version exactly as every other built-in in
// this core does.
func Register(a arena, global value.ObjectID, ver swfver.Version) {
	registerNumericBuiltins(a, global, ver)
	registerEncodingBuiltins(a, global, ver)
	registerPropFlagsBuiltins(a, global, ver)
}

func installNative(a arena, global value.ObjectID, name string, fn runtime.NativeFunc) {
	fnObj := runtime.NewFunctionObject(runtime.NewNativeFunction(fn))
	id := a.New(fnObj)
	_ = a.SetMember(global, name, value.Object(id), false)
	a.SetPropertyFlags(global, name, runtime.BuiltinDefault, 0)
}

func registerNumericBuiltins(a arena, global value.ObjectID, ver swfver.Version) {
	installNative(a, global, "parseInt", func(ar *runtime.Arena, this value.ObjectID, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.NaN()), nil
		}
		s := value.ToString(args[0], ver, ar)
		base, hasBase := 0, false
		if len(args) > 1 {
			base, hasBase = int(value.ToNumber(args[1], ver, ar)), true
		}
		return value.Number(ParseInt(s, base, hasBase)), nil
	})
	installNative(a, global, "parseFloat", func(ar *runtime.Arena, this value.ObjectID, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.NaN()), nil
		}
		return value.Number(ParseFloat(value.ToString(args[0], ver, ar))), nil
	})
}

func registerEncodingBuiltins(a arena, global value.ObjectID, ver swfver.Version) {
	installNative(a, global, "escape", func(ar *runtime.Arena, this value.ObjectID, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(Escape(value.ToString(args[0], ver, ar))), nil
	})
	installNative(a, global, "unescape", func(ar *runtime.Arena, this value.ObjectID, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(Unescape(value.ToString(args[0], ver, ar))), nil
	})
}

func registerPropFlagsBuiltins(a arena, global value.ObjectID, ver swfver.Version) {
	installNative(a, global, "ASSetPropFlags", func(ar *runtime.Arena, this value.ObjectID, args []value.Value) (value.Value, error) {
		if len(args) < 3 {
			return value.Undefined(), nil
		}
		if !args[0].IsObjectLike() {
			return value.Undefined(), nil
		}
		obj := args[0].AsObjectID()
		setTrue := runtime.Flags(value.ToInt32(args[2], ver, ar))
		var setFalse runtime.Flags
		if len(args) > 3 {
			setFalse = runtime.Flags(value.ToInt32(args[3], ver, ar))
		}
		ASSetPropFlags(ar, obj, args[1], setTrue, setFalse)
		return value.Undefined(), nil
	})
}
