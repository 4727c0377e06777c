package bytecode

import (
	"github.com/gnashcore/avm1/internal/env"
	"github.com/gnashcore/avm1/internal/errors"
	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/value"
)

// opCallFunction implements ActionCallFunction (spec 4.4/4.5): pop the
// name, then the argument count, then that many arguments (popN's
// reverse-index fill already restores push order), look the name up
// through the scope view, and invoke it with `this` bound to the
// current target.
func (f *frame) opCallFunction() {
	name := f.toString(f.pop("ActionCallFunction"))
	argc := int(f.toNumber(f.pop("ActionCallFunction")))
	if argc < 0 {
		argc = 0
	}
	args := f.popN("ActionCallFunction", argc)

	fnVal := f.interp.Resolver.LookupName(f.env, name, f.foldCase())
	thisID, _, _ := f.interp.Arena.ResolveDisplay(f.env.Target())
	f.push(f.callValue(fnVal, thisID, args))
}

// opCallMethod implements ActionCallMethod (spec 4.4/4.5): pop the
// method name, then the object, then the argument count and that many
// arguments. An empty name calls the object value itself rather than a
// member of it (the `obj.apply`-style "call the expression result"
// form the reference player also supports here).
func (f *frame) opCallMethod() {
	nameV := f.pop("ActionCallMethod")
	objV := f.pop("ActionCallMethod")
	argc := int(f.toNumber(f.pop("ActionCallMethod")))
	if argc < 0 {
		argc = 0
	}
	args := f.popN("ActionCallMethod", argc)

	objID, _, _ := f.objAndRef(objV)
	name := f.toString(nameV)
	if name == "" {
		f.push(f.callValue(objV, objID, args))
		return
	}
	fnVal, _ := f.interp.Arena.GetMember(objID, name)
	f.push(f.callValue(fnVal, objID, args))
}

// opNewObject implements ActionNewObject (spec 4.4/4.5): same pop
// pattern as CallFunction, routed through construct rather than
// callValue.
func (f *frame) opNewObject() {
	name := f.toString(f.pop("ActionNewObject"))
	argc := int(f.toNumber(f.pop("ActionNewObject")))
	if argc < 0 {
		argc = 0
	}
	args := f.popN("ActionNewObject", argc)

	ctorVal := f.interp.Resolver.LookupName(f.env, name, f.foldCase())
	f.push(f.construct(ctorVal, args))
}

// opNewMethod implements ActionNewMethod (spec 4.4/4.5): same pop
// pattern as CallMethod, routed through construct.
func (f *frame) opNewMethod() {
	nameV := f.pop("ActionNewMethod")
	objV := f.pop("ActionNewMethod")
	argc := int(f.toNumber(f.pop("ActionNewMethod")))
	if argc < 0 {
		argc = 0
	}
	args := f.popN("ActionNewMethod", argc)

	objID, _, _ := f.objAndRef(objV)
	name := f.toString(nameV)
	ctorVal := objV
	if name != "" {
		ctorVal, _ = f.interp.Arena.GetMember(objID, name)
	}
	f.push(f.construct(ctorVal, args))
}

func (f *frame) opReturn() {
	f.returnValue = f.pop("ActionReturn")
	f.returned = true
}

// captureScope snapshots the scope chain a DefineFunction/
// DefineFunction2 declared right here will close over (spec 4.4): the
// enclosing function's own captured scope, its locals object, and any
// with-stack entries active at the declaration site, outer-to-inner —
// the same order findOwner walks in reverse when the new function is
// later invoked.
func (f *frame) captureScope() []value.ObjectID {
	var scope []value.ObjectID
	if cf := f.env.CurrentFrame(); cf != nil {
		if cf.Fn != nil {
			scope = append(scope, cf.Fn.Scope...)
		}
		scope = append(scope, cf.Locals)
	}
	for _, w := range f.env.WithEntries() {
		scope = append(scope, w.Object)
	}
	return scope
}

// defineFunction shares DefineFunction/DefineFunction2's tail: allocate
// the Function object, bind it by name on the locals target if named,
// or push it anonymously if not (spec 4.4 "Declaration").
func (f *frame) defineFunction(name string, fn *runtime.Function) {
	fnObjID := f.interp.Arena.New(runtime.NewFunctionObject(fn))
	if name == "" {
		f.push(value.Object(fnObjID))
		return
	}
	_ = f.interp.Arena.SetMember(f.localsTarget(), name, value.Object(fnObjID), f.foldCase())
}

// opDefineFunction implements ActionDefineFunction (spec 4.4): the
// header (name, parameter names, body length) is read directly out of
// the code buffer rather than the operand stack, and nextPC is
// advanced past the body so the dispatch loop does not try to execute
// it inline — it only runs when called.
func (f *frame) opDefineFunction(inst *instruction) {
	off := inst.payloadOff
	name := f.code.ReadString(off)
	off += uint32(len(name)) + 1

	numParams := int(uint16(f.code.ReadInt16(off)))
	off += 2
	params := make([]runtime.Param, numParams)
	for i := range params {
		pname := f.code.ReadString(off)
		off += uint32(len(pname)) + 1
		params[i] = runtime.Param{Name: pname}
	}

	bodySize := uint32(uint16(f.code.ReadInt16(off)))
	off += 2
	bodyStart := off
	inst.nextPC = bodyStart + bodySize

	fn := runtime.NewScriptedFunction(f.code.Bytes(), bodyStart, bodySize, f.captureScope(), params, 0, 0, f.env.Version())
	f.defineFunction(name, fn)
}

// opDefineFunction2 implements ActionDefineFunction2 (spec 4.4): adds a
// local-register count, a preload/suppress flags word, and a register
// assignment per parameter, otherwise the same header-then-body shape
// as DefineFunction.
func (f *frame) opDefineFunction2(inst *instruction) {
	off := inst.payloadOff
	name := f.code.ReadString(off)
	off += uint32(len(name)) + 1

	numParams := int(uint16(f.code.ReadInt16(off)))
	off += 2
	localRegCount := int(f.code.ReadByte(off))
	off++
	flags := runtime.FunctionFlags(uint16(f.code.ReadInt16(off)))
	off += 2

	params := make([]runtime.Param, numParams)
	for i := range params {
		reg := int(f.code.ReadByte(off))
		off++
		pname := f.code.ReadString(off)
		off += uint32(len(pname)) + 1
		params[i] = runtime.Param{Name: pname, Register: reg}
	}

	bodySize := uint32(uint16(f.code.ReadInt16(off)))
	off += 2
	bodyStart := off
	inst.nextPC = bodyStart + bodySize

	fn := runtime.NewScriptedFunction(f.code.Bytes(), bodyStart, bodySize, f.captureScope(), params, localRegCount, flags, f.env.Version())
	f.defineFunction(name, fn)
}

// opWith implements ActionWith (spec 4.5): the payload carries only the
// enclosed block's length; the object to scope it to comes off the
// operand stack. The WithEntry expires automatically once the dispatch
// loop's pc reaches the block's end (Environment.ExpireWith).
func (f *frame) opWith(inst *instruction) {
	blockLen := uint16(f.code.ReadInt16(inst.payloadOff))
	objV := f.pop("ActionWith")
	objID, _, _ := f.objAndRef(objV)
	f.env.PushWith(env.WithEntry{Object: objID, EndPC: inst.end() + uint32(blockLen)})
}

// opThrow implements ActionThrow (spec 4.5): the popped value becomes a
// ThrownValue, unwound by the nearest enclosing ActionTry's catch
// clause or, absent one, returned as Run's error.
func (f *frame) opThrow() error {
	return &errors.ThrownValue{Value: f.pop("ActionThrow")}
}

// opTry implements ActionTry (spec 4.5): runs the try block as a nested
// invocation sharing this frame's Environment (operand stack and call
// stack included, spec 4.7's "nested calls share one operand stack");
// a ThrownValue surfacing from it is caught (bound to the declared
// local or register) only if a catch block was declared; the finally
// block, if any, always runs last and its own outcome supersedes
// whatever the try/catch did. nextPC skips the whole try/catch/finally
// region, since none of it is meant to execute inline.
func (f *frame) opTry(inst *instruction) error {
	off := inst.payloadOff
	flags := f.code.ReadByte(off)
	off++
	trySize := uint32(uint16(f.code.ReadInt16(off)))
	off += 2
	catchSize := uint32(uint16(f.code.ReadInt16(off)))
	off += 2
	finallySize := uint32(uint16(f.code.ReadInt16(off)))
	off += 2

	catchInRegister := flags&0x01 != 0
	var catchName string
	var catchRegister int
	if catchInRegister {
		catchRegister = int(f.code.ReadByte(off))
		off++
	} else {
		catchName = f.code.ReadString(off)
		off += uint32(len(catchName)) + 1
	}

	tryStart := off
	catchStart := tryStart + trySize
	finallyStart := catchStart + catchSize
	inst.nextPC = finallyStart + finallySize

	// runRegion runs one region like Run does, but carries an
	// ActionReturn inside it out to this frame.
	runRegion := func(start, size uint32) error {
		sub := &frame{interp: f.interp, env: f.env, code: f.code, pc: start, stopPC: start + size, initialDepth: f.env.Size()}
		rerr := sub.dispatch()
		f.env.TruncateTo(sub.initialDepth)
		if sub.returned {
			f.returned, f.returnValue = true, sub.returnValue
		}
		return rerr
	}

	err := runRegion(tryStart, trySize)

	if thrown, ok := err.(*errors.ThrownValue); ok && catchSize > 0 {
		if catchInRegister {
			f.setRegister(catchRegister, thrown.Value)
		} else {
			_ = f.interp.Arena.SetMember(f.localsTarget(), catchName, thrown.Value, f.foldCase())
		}
		err = runRegion(catchStart, catchSize)
	}

	if finallySize > 0 {
		if ferr := runRegion(finallyStart, finallySize); ferr != nil {
			err = ferr
		}
	}

	return err
}
