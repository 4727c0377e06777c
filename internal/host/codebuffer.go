package host

import (
	"encoding/binary"
	"fmt"
	"math"
)

// CodeBuffer is the host-provided, byte-addressable view of one tag's
// action bytecode (spec 6): the decode primitives the interpreter's
// fetch stage needs, including the SWF double's anomalous byte order.
type CodeBuffer interface {
	// Len reports the buffer's total length in bytes.
	Len() int

	// ReadByte reads the single byte at offset, or 0 if offset is out
	// of range. The interpreter's fetch stage uses this for the opcode
	// byte itself and for single-byte operands (register numbers,
	// Push-record type tags).
	ReadByte(offset uint32) byte

	// ReadInt16 reads a little-endian signed 16-bit value at offset.
	ReadInt16(offset uint32) int16

	// ReadInt32 reads a little-endian signed 32-bit value at offset.
	ReadInt32(offset uint32) int32

	// ReadFloatLE reads a little-endian IEEE-754 single at offset.
	ReadFloatLE(offset uint32) float32

	// ReadDoubleWacky reads a 64-bit double whose 8 bytes are stored in
	// word-swapped order (4 5 6 7 0 1 2 3, a documented SWF ActionScript
	// anomaly) and reassembles it into a canonical float64.
	ReadDoubleWacky(offset uint32) float64

	// ReadString reads a null-terminated UTF-8 string starting at offset.
	ReadString(offset uint32) string

	// ReadV32 reads a LEB128-like varint: 7 payload bits per byte, high
	// bit set means "more bytes follow", up to 5 bytes. Returns the
	// decoded value and the number of bytes consumed.
	ReadV32(offset uint32) (value uint32, consumed int)

	// DictionaryGet returns the i'th entry of the code buffer's constant
	// pool (populated by a preceding ActionConstantPool), or "" if i is
	// out of range.
	DictionaryGet(i int) string

	// SetDictionary installs the constant pool ActionConstantPool decodes,
	// replacing whatever pool was previously installed.
	SetDictionary(pool []string)

	// Bytes returns the buffer's underlying byte slice, for
	// DefineFunction/DefineFunction2 to capture as a runtime.Function's
	// shared Code: the declared body is a Start/Length pair into the
	// same buffer the defining instruction itself runs against, not a
	// copy of just the body.
	Bytes() []byte
}

// ByteCodeBuffer is a CodeBuffer over an in-memory byte slice, with an
// optional constant pool for DictionaryGet (normally populated by the
// interpreter itself when it executes ActionConstantPool, but settable
// directly here for tests that exercise DictionaryGet in isolation).
type ByteCodeBuffer struct {
	bytes      []byte
	dictionary []string
}

// NewByteCodeBuffer wraps code as a CodeBuffer. The slice is not copied;
// the caller must not mutate it while the buffer is in use.
func NewByteCodeBuffer(code []byte) *ByteCodeBuffer {
	return &ByteCodeBuffer{bytes: code}
}

// SetDictionary installs the constant pool DictionaryGet serves from.
func (b *ByteCodeBuffer) SetDictionary(pool []string) { b.dictionary = pool }

func (b *ByteCodeBuffer) Len() int { return len(b.bytes) }

func (b *ByteCodeBuffer) ReadByte(offset uint32) byte {
	if int(offset) >= len(b.bytes) {
		return 0
	}
	return b.bytes[offset]
}

func (b *ByteCodeBuffer) ReadInt16(offset uint32) int16 {
	if int(offset)+2 > len(b.bytes) {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b.bytes[offset:]))
}

func (b *ByteCodeBuffer) ReadInt32(offset uint32) int32 {
	if int(offset)+4 > len(b.bytes) {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b.bytes[offset:]))
}

func (b *ByteCodeBuffer) ReadFloatLE(offset uint32) float32 {
	if int(offset)+4 > len(b.bytes) {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b.bytes[offset:]))
}

// ReadDoubleWacky un-swaps SWF's word-order anomaly: the low 32 bits of
// the IEEE double are stored in the SECOND 4-byte word and the high 32
// bits in the FIRST, each word itself little-endian. Reassembling means
// swapping the two 4-byte halves before the standard little-endian
// float64 decode.
func (b *ByteCodeBuffer) ReadDoubleWacky(offset uint32) float64 {
	if int(offset)+8 > len(b.bytes) {
		return 0
	}
	var canonical [8]byte
	copy(canonical[0:4], b.bytes[offset+4:offset+8])
	copy(canonical[4:8], b.bytes[offset:offset+4])
	return math.Float64frombits(binary.LittleEndian.Uint64(canonical[:]))
}

func (b *ByteCodeBuffer) ReadString(offset uint32) string {
	end := int(offset)
	for end < len(b.bytes) && b.bytes[end] != 0 {
		end++
	}
	return string(b.bytes[offset:end])
}

func (b *ByteCodeBuffer) ReadV32(offset uint32) (uint32, int) {
	var result uint32
	var shift uint
	consumed := 0
	for consumed < 5 {
		pos := int(offset) + consumed
		if pos >= len(b.bytes) {
			break
		}
		byt := b.bytes[pos]
		consumed++
		result |= uint32(byt&0x7f) << shift
		if byt&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, consumed
}

func (b *ByteCodeBuffer) Bytes() []byte { return b.bytes }

func (b *ByteCodeBuffer) DictionaryGet(i int) string {
	if i < 0 || i >= len(b.dictionary) {
		return ""
	}
	return b.dictionary[i]
}

// String renders the buffer's length and first bytes, for diagnostics.
func (b *ByteCodeBuffer) String() string {
	n := len(b.bytes)
	if n > 16 {
		n = 16
	}
	return fmt.Sprintf("ByteCodeBuffer(%d bytes, starts %x)", len(b.bytes), b.bytes[:n])
}
