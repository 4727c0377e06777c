package bytecode

import (
	"fmt"
	"strings"

	"github.com/gnashcore/avm1/internal/host"
)

// Disassemble walks code from pc to stopPC one instruction at a time and
// renders each as "<offset>: <name> <payload summary>", one per line.
// It never executes anything — a malformed length (the same condition
// that would abort a live Run with MalformedCode) just stops the
// listing early with a trailing "; truncated" note, since there is no
// Environment here to report the error against.
func Disassemble(code host.CodeBuffer, pc, stopPC uint32) string {
	var b strings.Builder
	for pc < stopPC {
		inst, overflow := fetch(code, pc)
		fmt.Fprintf(&b, "%04x: %s", pc, inst.op)
		if inst.op.HasPayload() {
			fmt.Fprintf(&b, " %s", disasmPayload(code, inst))
		}
		b.WriteByte('\n')
		if overflow {
			b.WriteString("; truncated: payload runs past end of buffer\n")
			break
		}
		if inst.op == ActionEnd {
			break
		}
		pc = inst.nextPC
	}
	return b.String()
}

// disasmPayload renders one instruction's payload as a short, opcode-
// appropriate summary. Opcodes this function does not special-case
// still get a correct listing — just the raw byte length.
func disasmPayload(code host.CodeBuffer, inst instruction) string {
	switch inst.op {
	case ActionPush:
		return disasmPush(code, inst)
	case ActionJump, ActionIf:
		return fmt.Sprintf("offset=%d", code.ReadInt16(inst.payloadOff))
	case ActionGotoFrame:
		return fmt.Sprintf("frame=%d", uint16(code.ReadInt16(inst.payloadOff)))
	case ActionSetTarget, ActionGotoLabel:
		return fmt.Sprintf("%q", code.ReadString(inst.payloadOff))
	case ActionConstantPool:
		return fmt.Sprintf("(%d bytes)", inst.payloadLen)
	default:
		return fmt.Sprintf("(%d bytes)", inst.payloadLen)
	}
}

// disasmPush renders an ActionPush payload's tagged-record sequence,
// one value per comma-separated entry, in the same order opPush pushes
// them (spec 4.5 "Stack").
func disasmPush(code host.CodeBuffer, inst instruction) string {
	var parts []string
	off, end := inst.payloadOff, inst.end()
	for off < end {
		tag := code.ReadByte(off)
		off++
		switch tag {
		case pushString:
			s := code.ReadString(off)
			off += uint32(len(s)) + 1
			parts = append(parts, fmt.Sprintf("%q", s))
		case pushFloat:
			parts = append(parts, fmt.Sprintf("%g", code.ReadFloatLE(off)))
			off += 4
		case pushNull:
			parts = append(parts, "null")
		case pushUndefined:
			parts = append(parts, "undefined")
		case pushRegister:
			parts = append(parts, fmt.Sprintf("reg[%d]", code.ReadByte(off)))
			off++
		case pushBool:
			parts = append(parts, fmt.Sprintf("%t", code.ReadByte(off) != 0))
			off++
		case pushDouble:
			parts = append(parts, fmt.Sprintf("%g", code.ReadDoubleWacky(off)))
			off += 8
		case pushInteger:
			parts = append(parts, fmt.Sprintf("%d", code.ReadInt32(off)))
			off += 4
		case pushConstant8:
			parts = append(parts, fmt.Sprintf("const[%d]", code.ReadByte(off)))
			off++
		case pushConstant16:
			parts = append(parts, fmt.Sprintf("const[%d]", uint16(code.ReadInt16(off))))
			off += 2
		default:
			parts = append(parts, fmt.Sprintf("<unknown tag %d>", tag))
			return strings.Join(parts, ", ")
		}
	}
	return strings.Join(parts, ", ")
}
