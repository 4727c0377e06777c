package env

import (
	"strconv"

	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/value"
)

// CallRequest bundles the collaborators PrepareCall needs beyond the
// Function itself and its arguments, since each is an independent
// ObjectID that may legitimately be 0 (absent).
type CallRequest struct {
	Callee value.ObjectID // the Function's own object, for arguments.callee
	This   value.ObjectID
	Super  value.ObjectID // 0 if this invocation has no super
	Root   value.ObjectID // resolved _root, 0 if unavailable
	Parent value.ObjectID // resolved _parent, 0 if unavailable
	Global value.ObjectID // the single global object, 0 under SWF < 6
}

// PrepareCall builds the CallFrame for invoking fn (spec 4.4
// "Invocation", steps 2-4): allocates local registers for a function2,
// preloads this/arguments/super/root/parent/global into the next free
// register in flag-declaration order, binds this/arguments/super as a
// named local unless its SUPPRESS_* bit says otherwise, binds explicit
// parameters by register or name, and constructs the `arguments`
// object. root/parent/global have no suppress bit because they are
// never bound as ordinary named locals — only their register slot is
// preloaded. It does not push the frame or touch the scope view — that
// is Environment.PushFrame plus the interpreter's own scope-walk (spec
// 4.5), composed from CallFrame.Fn.Scope and CallFrame.Locals by the
// caller.
func PrepareCall(a *runtime.Arena, fn *runtime.Function, args []value.Value, req CallRequest) *CallFrame {
	locals := a.New(runtime.NewObject())
	frame := &CallFrame{Fn: fn, Locals: locals}

	if fn.IsFunction2() {
		frame.Registers = make([]value.Value, fn.LocalRegisterCount+1) // 1-based; index 0 unused
		argumentsObj := buildArguments(a, args, req.Callee)

		next := 1
		next = preloadSuppressible(a, frame, &next, fn.Flags, runtime.PreloadThis, runtime.SuppressThis, locals, "this", value.Object(req.This))
		next = preloadSuppressible(a, frame, &next, fn.Flags, runtime.PreloadArguments, runtime.SuppressArguments, locals, "arguments", value.Object(argumentsObj))
		next = preloadSuppressible(a, frame, &next, fn.Flags, runtime.PreloadSuper, runtime.SuppressSuper, locals, "super", value.Object(req.Super))
		next = preloadRegisterOnly(frame, &next, fn.Flags, runtime.PreloadRoot, value.Object(req.Root))
		next = preloadRegisterOnly(frame, &next, fn.Flags, runtime.PreloadParent, value.Object(req.Parent))
		_ = preloadRegisterOnly(frame, &next, fn.Flags, runtime.PreloadGlobal, value.Object(req.Global))
	} else {
		setLocal(a, locals, "this", value.Object(req.This))
		setLocal(a, locals, "arguments", value.Object(buildArguments(a, args, req.Callee)))
	}

	bindParams(a, frame, locals, fn, args)
	return frame
}

// preloadSuppressible occupies the next register for name if preloadBit
// is set, and separately binds the named local unless suppressBit is
// set (the two are independent: a this/arguments/super can be preloaded
// into a register and still have its named local bound).
func preloadSuppressible(a *runtime.Arena, frame *CallFrame, next *int, flags, preloadBit, suppressBit runtime.FunctionFlags, locals value.ObjectID, name string, v value.Value) int {
	if !flags.Has(preloadBit) {
		return *next
	}
	if *next < len(frame.Registers) {
		frame.Registers[*next] = v
		*next++
	}
	if !flags.Has(suppressBit) {
		setLocal(a, locals, name, v)
	}
	return *next
}

// preloadRegisterOnly handles root/parent/global: once PreloadX is set
// the value occupies the next register, but (unlike this/arguments/
// super) it is never bound as a named local — there is no suppress bit
// for these three because there is nothing to suppress.
func preloadRegisterOnly(frame *CallFrame, next *int, flags, preloadBit runtime.FunctionFlags, v value.Value) int {
	if !flags.Has(preloadBit) {
		return *next
	}
	if *next < len(frame.Registers) {
		frame.Registers[*next] = v
		*next++
	}
	return *next
}

func setLocal(a *runtime.Arena, locals value.ObjectID, name string, v value.Value) {
	_ = a.SetMember(locals, name, v, false)
}

// buildArguments constructs an Object with indexed properties 0..n-1,
// a `length`, and, when callee is non-zero, a `callee` back-pointer
// (spec 4.4 step 4).
func buildArguments(a *runtime.Arena, args []value.Value, callee value.ObjectID) value.ObjectID {
	obj := a.New(runtime.NewObject())
	for i, v := range args {
		_ = a.SetMember(obj, strconv.Itoa(i), v, false)
	}
	_ = a.SetMember(obj, "length", value.Number(float64(len(args))), false)
	if callee != 0 {
		_ = a.SetMember(obj, "callee", value.Object(callee), false)
	}
	return obj
}

// bindParams binds each declared parameter either to its preassigned
// register (DefineFunction2) or as a named local, creating named locals
// even for arguments the caller did not supply (spec 4.4 step 3).
func bindParams(a *runtime.Arena, frame *CallFrame, locals value.ObjectID, fn *runtime.Function, args []value.Value) {
	for i, p := range fn.Params {
		var v value.Value
		if i < len(args) {
			v = args[i]
		} else {
			v = value.Undefined()
		}
		if p.Register != 0 && p.Register < len(frame.Registers) {
			frame.Registers[p.Register] = v
			continue
		}
		setLocal(a, locals, p.Name, v)
	}
}
