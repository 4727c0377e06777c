package bytecode

import "testing"

func runCompareNumbers(t *testing.T, op OpCode, a, b float64) bool {
	t.Helper()
	vm := newTestVM()
	asmb := &asm{}
	asmb.op(ActionPush, pushDoublePayload(a))
	asmb.op(ActionPush, pushDoublePayload(b))
	asmb.op0(op)
	asmb.op0(ActionReturn)
	asmb.end()
	result, err := vm.run(asmb.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result.AsBool()
}

func TestOpEqualsLessGreaterAreNumeric(t *testing.T) {
	if !runCompareNumbers(t, ActionEquals, 3, 3) {
		t.Error("3 == 3 should be true")
	}
	if runCompareNumbers(t, ActionEquals, 3, 4) {
		t.Error("3 == 4 should be false")
	}
	if !runCompareNumbers(t, ActionLess, 2, 5) {
		t.Error("2 < 5 should be true")
	}
	if !runCompareNumbers(t, ActionGreater, 5, 2) {
		t.Error("5 > 2 should be true")
	}
}

func TestOpAndOrNot(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushDoublePayload(1))
	a.op(ActionPush, pushDoublePayload(0))
	a.op0(ActionAnd)
	a.op0(ActionNot)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.AsBool() {
		t.Errorf("!(1 && 0) = %v, want true", result.AsBool())
	}
}

func TestOpOrShortCircuitValue(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushDoublePayload(0))
	a.op(ActionPush, pushDoublePayload(1))
	a.op0(ActionOr)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.AsBool() {
		t.Errorf("0 || 1 = %v, want true", result.AsBool())
	}
}

func TestOpStringEqualsLessGreater(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushStringPayload("abc"))
	a.op(ActionPush, pushStringPayload("abd"))
	a.op0(ActionStringLess)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.AsBool() {
		t.Error(`"abc" < "abd" should be true`)
	}
}

func TestOpEquals2AbstractEquality(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushStringPayload("5"))
	a.op(ActionPush, pushDoublePayload(5))
	a.op0(ActionEquals2)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.AsBool() {
		t.Error(`"5" == 5 should be true under abstract equality`)
	}
}

func TestOpStrictEqualsRejectsTypeMismatch(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushStringPayload("5"))
	a.op(ActionPush, pushDoublePayload(5))
	a.op0(ActionStrictEquals)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsBool() {
		t.Error(`"5" === 5 should be false (different kinds)`)
	}
}

func TestOpLess2StringComparisonWhenBothStrings(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushStringPayload("10"))
	a.op(ActionPush, pushStringPayload("9"))
	a.op0(ActionLess2)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// lexicographic: "10" < "9" is true, unlike the numeric comparison
	if !result.AsBool() {
		t.Error(`"10" < "9" (string compare) should be true`)
	}
}

func TestOpLess2NaNIsNeverLess(t *testing.T) {
	vm := newTestVM()
	a := &asm{}
	a.op(ActionPush, pushStringPayload("not-a-number"))
	a.op(ActionPush, pushDoublePayload(5))
	a.op0(ActionLess2)
	a.op0(ActionReturn)
	a.end()

	result, err := vm.run(a.bytes())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsBool() {
		t.Error("NaN < 5 should be false")
	}
}
