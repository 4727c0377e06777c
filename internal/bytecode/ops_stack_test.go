package bytecode

import "testing"

func TestOpPushTaggedRecords(t *testing.T) {
	vm := newTestVM()
	a := &asm{}

	rec := &asm{}
	rec.u8(pushString).cstr("hi")
	rec.u8(pushBool).u8(1)
	rec.u8(pushNull)
	rec.u8(pushUndefined)
	rec.u8(pushInteger).u8(7).u8(0).u8(0).u8(0)
	a.op(ActionPush, rec.bytes())
	a.end()

	if _, err := vm.run(a.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// records pushed in order: string, bool, null, undefined, integer
	if v, ok := vm.env.Pop(); !ok || v.AsNumber() != 7 {
		t.Errorf("top = (%v, %v), want (7, true)", v.GoString(), ok)
	}
	if v, ok := vm.env.Pop(); !ok || !v.IsUndefined() {
		t.Errorf("next = (%v, %v), want undefined", v.GoString(), ok)
	}
	if v, ok := vm.env.Pop(); !ok || !v.IsNull() {
		t.Errorf("next = (%v, %v), want null", v.GoString(), ok)
	}
	if v, ok := vm.env.Pop(); !ok || !v.AsBool() {
		t.Errorf("next = (%v, %v), want true", v.GoString(), ok)
	}
	if v, ok := vm.env.Pop(); !ok || v.AsString() != "hi" {
		t.Errorf("bottom = (%v, %v), want %q", v.GoString(), ok, "hi")
	}
}

func TestOpPushUnknownTagStopsDecodingRemainingRecords(t *testing.T) {
	vm := newTestVM()
	a := &asm{}

	rec := &asm{}
	rec.u8(pushString).cstr("first")
	rec.u8(0xEE) // unrecognized tag
	rec.u8(pushString).cstr("never decoded")
	a.op(ActionPush, rec.bytes())
	a.end()

	if _, err := vm.run(a.bytes()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if vm.env.Size() != 1 {
		t.Fatalf("stack size = %d, want 1 (decoding should have stopped at the bad tag)", vm.env.Size())
	}
	if v, ok := vm.env.Pop(); !ok || v.AsString() != "first" {
		t.Errorf("pushed value = (%v, %v), want %q", v.GoString(), ok, "first")
	}
}

func TestOpConstantPoolFeedsPushConstant(t *testing.T) {
	vm := newTestVM()
	a := &asm{}

	pool := &asm{}
	pool.u16(2)
	pool.cstr("alpha")
	pool.cstr("beta")
	a.op(ActionConstantPool, pool.bytes())

	rec := &asm{}
	rec.u8(pushConstant8).u8(1)
	a.op(ActionPush, rec.bytes())
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsString() != "beta" {
		t.Errorf("dictionary[1] = %q, want %q", result.AsString(), "beta")
	}
}

func TestOpPopDiscardsTop(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushDoublePayload(1))
	a.op(ActionPush, pushDoublePayload(2))
	a.op0(ActionPop)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsNumber() != 1 {
		t.Errorf("result = %v, want 1 (top was popped and discarded)", result.GoString())
	}
}

func TestOpPushDuplicateLeavesCopyOnTop(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushDoublePayload(9))
	a.op0(ActionPushDuplicate)
	a.op0(ActionAdd)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsNumber() != 18 {
		t.Errorf("9 duplicated and added = %v, want 18", result.GoString())
	}
}

func TestOpStackSwapExchangesTopTwo(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushDoublePayload(1))
	a.op(ActionPush, pushDoublePayload(2))
	a.op0(ActionStackSwap)
	a.op0(ActionReturn) // Return pops the new top
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsNumber() != 1 {
		t.Errorf("top after swap = %v, want 1", result.GoString())
	}
}

func TestOpStoreRegisterDoesNotPop(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushDoublePayload(5))
	a.op(ActionStoreRegister, []byte{0})
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsNumber() != 5 {
		t.Errorf("Return after StoreRegister = %v, want 5 (value must stay on the stack)", result.GoString())
	}

	a2 := &asm{}
	rec := &asm{}
	rec.u8(pushRegister).u8(1)
	a2.op(ActionPush, rec.bytes())
	a2.op0(ActionReturn)
	a2.end()

	// global registers are 1-based (env.GetGlobalRegister)
	vm2 := newTestVM()
	combined := &asm{}
	combined.op(ActionPush, pushDoublePayload(11))
	combined.op(ActionStoreRegister, []byte{1})
	combined.op0(ActionPop)
	combined.b = append(combined.b, a2.bytes()...)
	result2, err := vm2.run(combined.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result2.AsNumber() != 11 {
		t.Errorf("register 1 readback = %v, want 11", result2.GoString())
	}
}
