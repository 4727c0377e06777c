package bytecode

import (
	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/value"
)

// toNumber/toString/toBool/toInt32 thread this frame's Environment
// version and the Arena (as value.Host) through the coercion rules in
// internal/value, so every opcode handler gets re-entrant valueOf/
// toString coercion for free (spec 4.1).
func (f *frame) toNumber(v value.Value) float64 {
	return value.ToNumber(v, f.env.Version(), f.interp.Arena)
}

func (f *frame) toString(v value.Value) string {
	return value.ToString(v, f.env.Version(), f.interp.Arena)
}

func (f *frame) toBool(v value.Value) bool {
	return value.ToBool(v, f.env.Version())
}

func (f *frame) toInt32(v value.Value) int32 {
	return value.ToInt32(v, f.env.Version(), f.interp.Arena)
}

func (f *frame) foldCase() bool { return f.env.Version().FoldsCase() }

// getRegister/setRegister resolve a register number against the current
// CallFrame's own register bank if one exists (a function2 invocation),
// falling back to the Environment's fixed 4-slot bank otherwise (plain
// DefineFunction bodies and top-level timeline code, spec 3.5).
func (f *frame) getRegister(n int) value.Value {
	if cf := f.env.CurrentFrame(); cf != nil && cf.Registers != nil {
		if n >= 0 && n < len(cf.Registers) {
			return cf.Registers[n]
		}
		return value.Undefined()
	}
	v, ok := f.env.GetGlobalRegister(n)
	if !ok {
		return value.Undefined()
	}
	return v
}

func (f *frame) setRegister(n int, v value.Value) {
	if cf := f.env.CurrentFrame(); cf != nil && cf.Registers != nil {
		if n >= 0 && n < len(cf.Registers) {
			cf.Registers[n] = v
		}
		return
	}
	f.env.SetGlobalRegister(n, v)
}

// objAndRef splits an operand that names an "object" for GetMember/
// SetMember/CallMethod-family opcodes into the ObjectID member lookups
// need and, when the operand is a movieclip reference, the DisplayRef
// magic-property resolution needs alongside it.
func (f *frame) objAndRef(v value.Value) (objID value.ObjectID, ref value.DisplayRef, isDisplay bool) {
	switch v.Kind() {
	case value.KindDisplayRef:
		ref = v.AsDisplayRef()
		objID, _, _ = f.interp.Arena.ResolveDisplay(ref)
		isDisplay = true
	case value.KindObject, value.KindFunction:
		objID = v.AsObjectID()
	}
	return
}

// callValue invokes fnVal (native or scripted) with the given this/args,
// swallowing every failure into a diagnostic and Undefined rather than
// propagating a Go error: per spec 4.6, a failed call (not callable, a
// coercion error inside it, a call-stack overflow attempting to push the
// callee's frame) unwinds only the call itself, never the caller's own
// dispatch loop.
func (f *frame) callValue(fnVal value.Value, this value.ObjectID, args []value.Value) value.Value {
	if !fnVal.IsObjectLike() || !f.interp.Arena.IsCallable(fnVal.AsObjectID()) {
		f.interp.Diag.Emit(diag.ASCoding, "call to a non-function value")
		return value.Undefined()
	}
	fnObjID := fnVal.AsObjectID()
	obj := f.interp.Arena.Get(fnObjID)
	if obj == nil || obj.Fn == nil {
		f.interp.Diag.Emit(diag.ASCoding, "call to a non-function value")
		return value.Undefined()
	}

	var result value.Value
	var err error
	if obj.Fn.Kind == runtime.FuncNative {
		result, err = f.interp.Arena.Call(fnObjID, this, args)
	} else {
		result, err = f.interp.call(f.env, obj.Fn, fnObjID, this, args)
	}
	if err != nil {
		f.interp.Diag.Emit(diag.ASError, "call failed: %v", err)
		return value.Undefined()
	}
	return result
}

// construct implements `new` (spec 4.4 "Construction"): allocate a
// fresh Object whose prototype is the constructor's own `prototype`
// slot, invoke the constructor with `this` bound to it, and return
// whatever the constructor returned if that was itself an Object,
// otherwise the freshly allocated one.
func (f *frame) construct(ctorVal value.Value, args []value.Value) value.Value {
	if !ctorVal.IsObjectLike() || !f.interp.Arena.IsCallable(ctorVal.AsObjectID()) {
		f.interp.Diag.Emit(diag.ASCoding, "new applied to a non-function value")
		return value.Undefined()
	}
	ctorID := ctorVal.AsObjectID()
	newID := f.interp.Arena.New(runtime.NewObject())

	protoVal, _ := f.interp.Arena.GetMember(ctorID, "prototype")
	if protoVal.Kind() == value.KindObject {
		if newObj := f.interp.Arena.Get(newID); newObj != nil {
			newObj.Prototype = protoVal.AsObjectID()
		}
	}
	if newObj := f.interp.Arena.Get(newID); newObj != nil {
		newObj.Constructor = ctorID
	}

	result := f.callValue(ctorVal, newID, args)
	if result.Kind() == value.KindObject {
		return result
	}
	return value.Object(newID)
}

// instanceOf reports whether ctorID's `prototype` appears anywhere on
// objID's prototype chain or its interface list (spec 4.4's
// ActionInstanceOf/ActionCastOp contract).
func (f *frame) instanceOf(objID, ctorID value.ObjectID) bool {
	protoVal, _ := f.interp.Arena.GetMember(ctorID, "prototype")
	if !protoVal.IsObjectLike() {
		return false
	}
	return f.onPrototypeChain(objID, protoVal.AsObjectID(), make(map[value.ObjectID]bool))
}

func (f *frame) onPrototypeChain(cur, target value.ObjectID, seen map[value.ObjectID]bool) bool {
	if cur == 0 || seen[cur] {
		return false
	}
	seen[cur] = true
	obj := f.interp.Arena.Get(cur)
	if obj == nil {
		return false
	}
	if obj.Prototype == target {
		return true
	}
	for _, iface := range obj.Interfaces {
		if iface == target || f.onPrototypeChain(iface, target, seen) {
			return true
		}
	}
	if obj.Prototype != 0 {
		return f.onPrototypeChain(obj.Prototype, target, seen)
	}
	return false
}
