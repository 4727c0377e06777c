package bytecode

import (
	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/value"
)

// Push-record type tags (spec 4.5 "Stack": a tagged-record sequence).
const (
	pushString     = 0
	pushFloat      = 1
	pushNull       = 2
	pushUndefined  = 3
	pushRegister   = 4
	pushBool       = 5
	pushDouble     = 6
	pushInteger    = 7
	pushConstant8  = 8
	pushConstant16 = 9
)

// opPush decodes ActionPush's tagged-record payload and pushes each
// decoded value in turn (spec 4.5). An unrecognized tag byte aborts the
// remaining records as malformed rather than guessing a width.
func (f *frame) opPush(inst *instruction) {
	off, end := inst.payloadOff, inst.end()
	for off < end {
		tag := f.code.ReadByte(off)
		off++
		switch tag {
		case pushString:
			s := f.code.ReadString(off)
			off += uint32(len(s)) + 1
			f.push(value.String(s))
		case pushFloat:
			f.push(value.Number(float64(f.code.ReadFloatLE(off))))
			off += 4
		case pushNull:
			f.push(value.Null())
		case pushUndefined:
			f.push(value.Undefined())
		case pushRegister:
			reg := int(f.code.ReadByte(off))
			off++
			f.push(f.getRegister(reg))
		case pushBool:
			f.push(value.Bool(f.code.ReadByte(off) != 0))
			off++
		case pushDouble:
			f.push(value.Number(f.code.ReadDoubleWacky(off)))
			off += 8
		case pushInteger:
			f.push(value.Number(float64(f.code.ReadInt32(off))))
			off += 4
		case pushConstant8:
			idx := int(f.code.ReadByte(off))
			off++
			f.push(value.String(f.code.DictionaryGet(idx)))
		case pushConstant16:
			idx := int(uint16(f.code.ReadInt16(off)))
			off += 2
			f.push(value.String(f.code.DictionaryGet(idx)))
		default:
			f.interp.Diag.Emit(diag.MalformedSWF, "ActionPush: unknown record type %d at offset %d", tag, off-1)
			return
		}
	}
}

// opConstantPool installs the code buffer's constant pool: a uint16
// count followed by that many null-terminated strings (spec 4.5).
func (f *frame) opConstantPool(inst *instruction) {
	off := inst.payloadOff
	count := int(uint16(f.code.ReadInt16(off)))
	off += 2
	pool := make([]string, 0, count)
	for i := 0; i < count; i++ {
		s := f.code.ReadString(off)
		off += uint32(len(s)) + 1
		pool = append(pool, s)
	}
	f.code.SetDictionary(pool)
}

func (f *frame) opPop() { f.pop("ActionPop") }

func (f *frame) opPushDuplicate() {
	v, ok := f.env.Top()
	if !ok {
		f.interp.Diag.Emit(diag.ASCoding, "stack underrun in ActionPushDuplicate")
	}
	f.push(v)
}

func (f *frame) opStackSwap() {
	top := f.pop("ActionStackSwap")
	under := f.pop("ActionStackSwap")
	f.push(top)
	f.push(under)
}

// opStoreRegister stores the top of the operand stack into a register
// WITHOUT popping it (spec 4.5): the value stays available to whatever
// opcode follows, e.g. a chained assignment expression.
func (f *frame) opStoreRegister(inst *instruction) {
	reg := int(f.code.ReadByte(inst.payloadOff))
	v, ok := f.env.Top()
	if !ok {
		f.interp.Diag.Emit(diag.ASCoding, "stack underrun in ActionStoreRegister")
	}
	f.setRegister(reg, v)
}
