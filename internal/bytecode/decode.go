package bytecode

import "github.com/gnashcore/avm1/internal/host"

// instruction is one fetched opcode: its code, the offset and length of
// its payload within the code buffer (both zero for a bare opcode), and
// the PC the dispatch loop should advance to absent a branch.
type instruction struct {
	op         OpCode
	payloadOff uint32
	payloadLen uint16
	nextPC     uint32
}

// fetch decodes the instruction at pc per spec 4.5's instruction format:
// opcodes below 0x80 are one byte with no payload; opcodes at or above
// 0x80 are followed by a little-endian uint16 payload length and that
// many bytes of payload. A length that would run the payload past the
// buffer's end is reported via overflow so the caller can raise
// MalformedCode without panicking on a slice bound.
func fetch(code host.CodeBuffer, pc uint32) (inst instruction, overflow bool) {
	op := OpCode(code.ReadByte(pc))
	if !op.HasPayload() {
		return instruction{op: op, nextPC: pc + 1}, false
	}
	length := uint16(code.ReadInt16(pc + 1))
	payloadOff := pc + 3
	nextPC := payloadOff + uint32(length)
	if nextPC > uint32(code.Len()) {
		return instruction{op: op, payloadOff: payloadOff, payloadLen: length, nextPC: nextPC}, true
	}
	return instruction{op: op, payloadOff: payloadOff, payloadLen: length, nextPC: nextPC}, false
}

// end returns the offset one past the instruction's last payload byte
// (payloadOff + payloadLen). Handlers read the payload through the
// CodeBuffer directly (ReadInt16/ReadString/etc. against payloadOff)
// rather than copying it, since CodeBuffer is the only thing that knows
// how to decode the SWF wacky-double anomaly.
func (i instruction) end() uint32 { return i.payloadOff + uint32(i.payloadLen) }
