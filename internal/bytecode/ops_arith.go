package bytecode

import (
	"math"
	"math/rand"

	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/value"
)

func (f *frame) opAdd() {
	b := f.toNumber(f.pop("ActionAdd"))
	a := f.toNumber(f.pop("ActionAdd"))
	f.push(value.Number(a + b))
}

func (f *frame) opSubtract() {
	b := f.toNumber(f.pop("ActionSubtract"))
	a := f.toNumber(f.pop("ActionSubtract"))
	f.push(value.Number(a - b))
}

func (f *frame) opMultiply() {
	b := f.toNumber(f.pop("ActionMultiply"))
	a := f.toNumber(f.pop("ActionMultiply"))
	f.push(value.Number(a * b))
}

func (f *frame) opDivide() {
	b := f.toNumber(f.pop("ActionDivide"))
	a := f.toNumber(f.pop("ActionDivide"))
	f.push(value.Number(a / b))
}

func (f *frame) opModulo() {
	b := f.toNumber(f.pop("ActionModulo"))
	a := f.toNumber(f.pop("ActionModulo"))
	f.push(value.Number(math.Mod(a, b)))
}

// toPrimitiveOrUndef coerces v to a primitive, logging and reporting
// failure rather than propagating a Go error: per spec 4.6, a
// CoercionError is caught by the individual opcode handler that
// triggered it, which substitutes Undefined and continues.
func (f *frame) toPrimitiveOrUndef(v value.Value, hint value.Hint) (value.Value, bool) {
	p, err := value.ToPrimitive(v, hint, f.interp.Arena)
	if err != nil {
		f.interp.Diag.Emit(diag.ASCoding, "%v", err)
		return value.Undefined(), false
	}
	return p, true
}

// opAdd2 implements ActionAdd2 (spec 4.5 "Arithmetic"): string
// concatenation if either operand's primitive form is a string,
// otherwise numeric addition.
func (f *frame) opAdd2() {
	bv := f.pop("ActionAdd2")
	av := f.pop("ActionAdd2")
	pb, okB := f.toPrimitiveOrUndef(bv, value.HintNumber)
	pa, okA := f.toPrimitiveOrUndef(av, value.HintNumber)
	if !okA || !okB {
		f.push(value.Undefined())
		return
	}
	if pa.Kind() == value.KindString || pb.Kind() == value.KindString {
		f.push(value.String(f.toString(pa) + f.toString(pb)))
		return
	}
	f.push(value.Number(f.toNumber(pa) + f.toNumber(pb)))
}

func (f *frame) opStringAdd() {
	b := f.toString(f.pop("ActionStringAdd"))
	a := f.toString(f.pop("ActionStringAdd"))
	f.push(value.String(a + b))
}

func (f *frame) opIncrement() {
	f.push(value.Number(f.toNumber(f.pop("ActionIncrement")) + 1))
}

func (f *frame) opDecrement() {
	f.push(value.Number(f.toNumber(f.pop("ActionDecrement")) - 1))
}

func (f *frame) opBitAnd() {
	b := f.toInt32(f.pop("ActionBitAnd"))
	a := f.toInt32(f.pop("ActionBitAnd"))
	f.push(value.Number(float64(a & b)))
}

func (f *frame) opBitOr() {
	b := f.toInt32(f.pop("ActionBitOr"))
	a := f.toInt32(f.pop("ActionBitOr"))
	f.push(value.Number(float64(a | b)))
}

func (f *frame) opBitXor() {
	b := f.toInt32(f.pop("ActionBitXor"))
	a := f.toInt32(f.pop("ActionBitXor"))
	f.push(value.Number(float64(a ^ b)))
}

func (f *frame) opBitLShift() {
	shift := uint(f.toInt32(f.pop("ActionBitLShift"))) & 0x1F
	a := f.toInt32(f.pop("ActionBitLShift"))
	f.push(value.Number(float64(a << shift)))
}

func (f *frame) opBitRShift() {
	shift := uint(f.toInt32(f.pop("ActionBitRShift"))) & 0x1F
	a := f.toInt32(f.pop("ActionBitRShift"))
	f.push(value.Number(float64(a >> shift)))
}

func (f *frame) opBitURShift() {
	shift := uint(f.toInt32(f.pop("ActionBitURShift"))) & 0x1F
	a := uint32(f.toInt32(f.pop("ActionBitURShift")))
	f.push(value.Number(float64(a >> shift)))
}

func (f *frame) opToInteger() {
	f.push(value.Number(float64(f.toInt32(f.pop("ActionToInteger")))))
}

func (f *frame) opToNumber() {
	f.push(value.Number(f.toNumber(f.pop("ActionToNumber"))))
}

func (f *frame) opToString() {
	f.push(value.String(f.toString(f.pop("ActionToString"))))
}

func (f *frame) opRandomNumber() {
	max := int(f.toNumber(f.pop("ActionRandomNumber")))
	if max <= 0 {
		f.push(value.Number(0))
		return
	}
	f.push(value.Number(float64(rand.Intn(max))))
}
