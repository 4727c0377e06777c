package env

import (
	"testing"

	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/swfver"
	"github.com/gnashcore/avm1/internal/value"
)

func newTestArena() *runtime.Arena {
	return runtime.NewArena(strtab.New())
}

func TestPrepareCallPlainFunctionBindsThisAndArguments(t *testing.T) {
	a := newTestArena()
	calleeObj := a.New(runtime.NewObject())
	thisObj := a.New(runtime.NewObject())
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, []runtime.Param{{Name: "x"}}, 0, 0, swfver.V6)

	frame := PrepareCall(a, fn, []value.Value{value.Number(7)}, CallRequest{Callee: calleeObj, This: thisObj})

	if v, ok := a.GetMember(frame.Locals, "this"); !ok || v.AsObjectID() != thisObj {
		t.Errorf("this = (%v, %v), want (%v, true)", v.GoString(), ok, thisObj)
	}
	if v, ok := a.GetMember(frame.Locals, "x"); !ok || v.AsNumber() != 7 {
		t.Errorf("x = (%v, %v), want (7, true)", v.GoString(), ok)
	}
	argsVal, ok := a.GetMember(frame.Locals, "arguments")
	if !ok {
		t.Fatal("expected arguments local to be bound")
	}
	length, _ := a.GetMember(argsVal.AsObjectID(), "length")
	if length.AsNumber() != 1 {
		t.Errorf("arguments.length = %v, want 1", length.AsNumber())
	}
}

func TestPrepareCallMissingArgumentBindsUndefined(t *testing.T) {
	a := newTestArena()
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, []runtime.Param{{Name: "a"}, {Name: "b"}}, 0, 0, swfver.V6)

	frame := PrepareCall(a, fn, []value.Value{value.Number(1)}, CallRequest{})

	v, ok := a.GetMember(frame.Locals, "b")
	if !ok || !v.IsUndefined() {
		t.Errorf("b = (%v, %v), want (Undefined, true)", v.GoString(), ok)
	}
}

func TestPrepareCallFunction2RegisterParam(t *testing.T) {
	a := newTestArena()
	params := []runtime.Param{{Name: "a", Register: 1}}
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, params, 4, 0, swfver.V7)

	frame := PrepareCall(a, fn, []value.Value{value.Number(9)}, CallRequest{})

	if frame.Registers == nil {
		t.Fatal("expected a function2 to allocate local registers")
	}
	if frame.Registers[1].AsNumber() != 9 {
		t.Errorf("register 1 = %v, want 9", frame.Registers[1].AsNumber())
	}
	if _, ok := a.GetMember(frame.Locals, "a"); ok {
		t.Error("a register-bound parameter should not also be bound as a named local")
	}
}

func TestPrepareCallFunction2PreloadThisIntoRegisterAndLocal(t *testing.T) {
	a := newTestArena()
	thisObj := a.New(runtime.NewObject())
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, nil, 2, runtime.PreloadThis, swfver.V7)

	frame := PrepareCall(a, fn, nil, CallRequest{This: thisObj})

	if frame.Registers[1].AsObjectID() != thisObj {
		t.Errorf("register 1 (preloaded this) = %v, want %v", frame.Registers[1].AsObjectID(), thisObj)
	}
	if v, ok := a.GetMember(frame.Locals, "this"); !ok || v.AsObjectID() != thisObj {
		t.Error("this should also be bound as a named local since SuppressThis was not set")
	}
}

func TestPrepareCallFunction2SuppressThisOmitsNamedLocal(t *testing.T) {
	a := newTestArena()
	thisObj := a.New(runtime.NewObject())
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, nil, 2, runtime.PreloadThis|runtime.SuppressThis, swfver.V7)

	frame := PrepareCall(a, fn, nil, CallRequest{This: thisObj})

	if frame.Registers[1].AsObjectID() != thisObj {
		t.Error("this should still occupy its preload register")
	}
	if _, ok := a.GetMember(frame.Locals, "this"); ok {
		t.Error("SuppressThis should omit the named local")
	}
}

func TestPrepareCallFunction2RootIsRegisterOnly(t *testing.T) {
	a := newTestArena()
	root := a.New(runtime.NewObject())
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, nil, 2, runtime.PreloadRoot, swfver.V7)

	frame := PrepareCall(a, fn, nil, CallRequest{Root: root})

	if frame.Registers[1].AsObjectID() != root {
		t.Error("_root should occupy its preload register")
	}
	if _, ok := a.GetMember(frame.Locals, "_root"); ok {
		t.Error("_root has no suppress bit because it is never bound as a named local, only preloaded into a register")
	}
}

func TestPrepareCallArgumentsCalleeBackpointer(t *testing.T) {
	a := newTestArena()
	calleeObj := a.New(runtime.NewObject())
	fn := runtime.NewScriptedFunction(nil, 0, 0, nil, nil, 0, 0, swfver.V6)

	frame := PrepareCall(a, fn, nil, CallRequest{Callee: calleeObj})

	argsVal, _ := a.GetMember(frame.Locals, "arguments")
	callee, ok := a.GetMember(argsVal.AsObjectID(), "callee")
	if !ok || callee.AsObjectID() != calleeObj {
		t.Errorf("arguments.callee = (%v, %v), want (%v, true)", callee.GoString(), ok, calleeObj)
	}
}
