// Package bytecode implements the AVM1 interpreter (component H): the
// dispatch loop that walks one code buffer opcode by opcode against an
// Environment (component F), a Resolver (component G) and an Arena
// (components C/D/E/J).
//
// Unlike the teacher's fixed-width 32-bit instruction format, AVM1
// opcodes are a single byte, optionally followed by a little-endian
// uint16 payload length and that many bytes of payload (spec 4.5):
// there is no constant-width decode step to share across opcodes, so
// every handler below reads its own operands out of the payload it was
// given. The switch-on-opcode dispatch loop itself, the per-handler doc
// comment convention ("Stack: [a, b] -> [c]"), and the runtimeError/
// stack-repair idioms are carried over from the teacher's vm_exec.go
// and vm_ops.go.
package bytecode

// OpCode identifies one AVM1 action. Grounded on the reference player's
// SWF::action_type enum (byte values are part of the SWF file format,
// not an implementation choice): every name below is the action tag's
// conventional ActionScript-disassembler spelling.
type OpCode byte

const (
	// ========================================
	// Stream control (no payload)
	// ========================================

	// ActionEnd terminates a code buffer. Never actually dispatched —
	// the fetch stage treats it as "stop" before reaching the switch.
	ActionEnd OpCode = 0x00

	// ========================================
	// Timeline / movieclip (no payload unless noted)
	// ========================================

	ActionNextFrame     OpCode = 0x04 // advance the current target one frame
	ActionPrevFrame     OpCode = 0x05 // retreat the current target one frame
	ActionPlay          OpCode = 0x06 // resume playback of the current target
	ActionStop          OpCode = 0x07 // halt playback of the current target
	ActionToggleQuality OpCode = 0x08 // cycle rendering quality (host delegate)
	ActionStopSounds    OpCode = 0x09 // stop every playing sound (host delegate)

	// ========================================
	// Arithmetic (spec 4.5 "Arithmetic")
	// ========================================

	ActionAdd      OpCode = 0x0A // Stack: [a, b] -> [a + b] (Number)
	ActionSubtract OpCode = 0x0B // Stack: [a, b] -> [a - b] (Number)
	ActionMultiply OpCode = 0x0C // Stack: [a, b] -> [a * b] (Number)
	ActionDivide   OpCode = 0x0D // Stack: [a, b] -> [a / b]; b==0 yields +-Inf or NaN

	// ========================================
	// Comparison and logic
	// ========================================

	ActionEquals   OpCode = 0x0E // Stack: [a, b] -> [a == b] (Number compare, SWF <= 4)
	ActionLess     OpCode = 0x0F // Stack: [a, b] -> [a < b] (Number compare, SWF <= 4)
	ActionAnd      OpCode = 0x10 // Stack: [a, b] -> [a && b] (to_bool)
	ActionOr       OpCode = 0x11 // Stack: [a, b] -> [a || b] (to_bool)
	ActionNot      OpCode = 0x12 // Stack: [a] -> [!a] (to_bool)

	// ========================================
	// Strings
	// ========================================

	ActionStringEquals  OpCode = 0x13 // Stack: [a, b] -> [a == b] (string compare)
	ActionStringLength  OpCode = 0x14 // Stack: [s] -> [length(s)]
	ActionStringExtract OpCode = 0x15 // Stack: [s, index, count] -> [substr]

	// ========================================
	// Stack
	// ========================================

	ActionPop OpCode = 0x17 // Stack: [a] -> [] (discard)

	// ========================================
	// Conversion
	// ========================================

	ActionToInteger OpCode = 0x18 // Stack: [a] -> [to_int32(a)]

	// ========================================
	// Variables and members
	// ========================================

	ActionGetVariable OpCode = 0x1C // Stack: [name] -> [value] (scope-view lookup)
	ActionSetVariable OpCode = 0x1D // Stack: [name, value] -> [] (scope-view write)

	// ========================================
	// Target / drag
	// ========================================

	ActionSetTarget2  OpCode = 0x20 // Stack: [path] -> [] (SetTarget with a computed path)
	ActionStringAdd   OpCode = 0x21 // Stack: [a, b] -> [to_string(a)+to_string(b)]
	ActionGetProperty OpCode = 0x22 // Stack: [path, index] -> [value] (display property by index)
	ActionSetProperty OpCode = 0x23 // Stack: [path, index, value] -> [] (display property by index)
	ActionCloneSprite OpCode = 0x24 // Stack: [target, newName, depth] -> [] (host delegate)
	ActionRemoveSprite OpCode = 0x25 // Stack: [target] -> [] (host delegate)
	ActionTrace       OpCode = 0x26 // Stack: [msg] -> [] (diagnostic sink, category unimpl/aserror)
	ActionStartDrag    OpCode = 0x27 // Stack: [target, lock, ...bounds] -> [] (host delegate)
	ActionEndDrag      OpCode = 0x28 // Stack: [] -> [] (host delegate)
	ActionStringLess   OpCode = 0x29 // Stack: [a, b] -> [a < b] (string compare)

	// ========================================
	// Exceptions (reserved, spec 4.5 "Try/Throw")
	// ========================================

	ActionThrow       OpCode = 0x2A // Stack: [value] -> [] (routed to nearest catch)
	ActionCastOp      OpCode = 0x2B // Stack: [obj, ctor] -> [obj or null] (instanceof-gated cast)
	ActionImplementsOp OpCode = 0x2C // Stack: [ctor, count, ...interfaces] -> []

	// ========================================
	// More conversions / builtins
	// ========================================

	ActionRandomNumber   OpCode = 0x30 // Stack: [max] -> [random int in [0, max)]
	ActionMBStringLength OpCode = 0x31 // Stack: [s] -> [length(s)] (multibyte legacy)
	ActionCharToAscii    OpCode = 0x32 // Stack: [char] -> [code]
	ActionAsciiToChar    OpCode = 0x33 // Stack: [code] -> [char]
	ActionGetTime        OpCode = 0x34 // Stack: [] -> [ms since movie start]
	ActionMBStringExtract OpCode = 0x35 // Stack: [s, index, count] -> [substr] (multibyte legacy)
	ActionMBCharToAscii  OpCode = 0x36 // Stack: [char] -> [code] (multibyte legacy)
	ActionMBAsciiToChar  OpCode = 0x37 // Stack: [code] -> [char] (multibyte legacy)

	// ========================================
	// Locals / delete
	// ========================================

	ActionDelete       OpCode = 0x3A // Stack: [obj, name] -> [success]
	ActionDelete2      OpCode = 0x3B // Stack: [name] -> [success] (scope-view delete)
	ActionDefineLocal  OpCode = 0x3C // Stack: [name, value] -> [] (declare with value)
	ActionCallFunction OpCode = 0x3D // Stack: [name, argc, ...args] -> [result]
	ActionReturn       OpCode = 0x3E // Stack: [value] -> [] (ends this invocation)
	ActionModulo       OpCode = 0x3F // Stack: [a, b] -> [a % b] (Number)
	ActionNewObject    OpCode = 0x40 // Stack: [name, argc, ...args] -> [instance]
	ActionDefineLocal2 OpCode = 0x41 // Stack: [name] -> [] (declare, value Undefined)
	ActionGetMember    OpCode = 0x4E // Stack: [obj, name] -> [value]

	// ========================================
	// Objects / arrays
	// ========================================

	ActionInitArray  OpCode = 0x42 // Stack: [count, ...elems] -> [array]
	ActionInitObject OpCode = 0x43 // Stack: [count, ...(value,name) pairs] -> [object]
	ActionTypeOf     OpCode = 0x44 // Stack: [v] -> [typeof string]
	ActionTargetPath OpCode = 0x45 // Stack: [movieclip] -> [path string]
	ActionEnumerate  OpCode = 0x46 // Stack: [name] -> [null, ...propNames] (GetVariable'd object)
	ActionAdd2       OpCode = 0x47 // Stack: [a, b] -> [a+b]; String concat if either coerces to String
	ActionLess2      OpCode = 0x48 // Stack: [a, b] -> [a < b] (spec 4.1 comparison)
	ActionEquals2    OpCode = 0x49 // Stack: [a, b] -> [a == b] (spec 4.1 abstract equality)
	ActionToNumber   OpCode = 0x4A // Stack: [a] -> [to_number(a)]
	ActionToString   OpCode = 0x4B // Stack: [a] -> [to_string(a)]

	ActionPushDuplicate OpCode = 0x4C // Stack: [a] -> [a, a]
	ActionStackSwap     OpCode = 0x4D // Stack: [a, b] -> [b, a]

	ActionSetMember   OpCode = 0x4F // Stack: [obj, name, value] -> []
	ActionIncrement   OpCode = 0x50 // Stack: [a] -> [a+1]
	ActionDecrement   OpCode = 0x51 // Stack: [a] -> [a-1]
	ActionCallMethod  OpCode = 0x52 // Stack: [obj, name, argc, ...args] -> [result]
	ActionNewMethod   OpCode = 0x53 // Stack: [obj, name, argc, ...args] -> [instance]
	ActionInstanceOf  OpCode = 0x54 // Stack: [obj, ctor] -> [bool]
	ActionEnumerate2  OpCode = 0x55 // Stack: [obj] -> [null, ...propNames]

	// ========================================
	// Bitwise / strict equality / extends
	// ========================================

	ActionBitAnd        OpCode = 0x60
	ActionBitOr         OpCode = 0x61
	ActionBitXor        OpCode = 0x62
	ActionBitLShift     OpCode = 0x63
	ActionBitRShift     OpCode = 0x64
	ActionBitURShift    OpCode = 0x65
	ActionStrictEquals  OpCode = 0x66 // Stack: [a, b] -> [a === b], no coercion
	ActionGreater       OpCode = 0x67 // Stack: [a, b] -> [a > b] (Number compare)
	ActionStringGreater OpCode = 0x68 // Stack: [a, b] -> [a > b] (string compare)
	ActionExtends       OpCode = 0x69 // Stack: [super, sub] -> [] (prototype chain wiring)

	// ========================================
	// Payload-bearing opcodes (>= 0x80)
	// ========================================

	ActionGotoFrame       OpCode = 0x81 // payload: uint16 frame number
	ActionGetURL          OpCode = 0x83 // payload: url, target (null-terminated strings)
	ActionStoreRegister   OpCode = 0x87 // payload: uint8 register number
	ActionConstantPool    OpCode = 0x88 // payload: uint16 count, then that many strings
	ActionWaitForFrame    OpCode = 0x8A // payload: uint16 frame, uint8 skipCount
	ActionSetTarget       OpCode = 0x8B // payload: null-terminated target path
	ActionGotoLabel       OpCode = 0x8C // payload: null-terminated frame label
	ActionWaitForFrame2   OpCode = 0x8D // payload: uint8 skipCount (frame popped from stack)
	ActionDefineFunction2 OpCode = 0x8E // payload: function2 header, params, body length
	ActionTry             OpCode = 0x8F // payload: try/catch/finally region descriptor
	ActionWith            OpCode = 0x94 // payload: uint16 block length
	ActionPush            OpCode = 0x96 // payload: tagged-record sequence (spec 4.5 "Stack")
	ActionJump            OpCode = 0x99 // payload: int16 signed displacement
	ActionGetURL2         OpCode = 0x9A // payload: uint8 send-vars-method/flags byte
	ActionDefineFunction  OpCode = 0x9B // payload: function header, params, body length
	ActionIf              OpCode = 0x9D // payload: int16 signed displacement (conditional on pop())
	ActionCall            OpCode = 0x9E // payload: none meaningful; target popped from stack
	ActionGotoFrame2      OpCode = 0x9F // payload: uint8 flags (play/sceneBias)
)

// String names every opcode by its conventional disassembler spelling,
// falling back to a hex-formatted "Unknown(0xNN)" for a byte this
// interpreter does not recognize (malformed or future-version SWF).
func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return unknownOpcodeName(op)
}

var opcodeNames = map[OpCode]string{
	ActionEnd:             "ActionEnd",
	ActionNextFrame:       "ActionNextFrame",
	ActionPrevFrame:       "ActionPrevFrame",
	ActionPlay:            "ActionPlay",
	ActionStop:            "ActionStop",
	ActionToggleQuality:   "ActionToggleQuality",
	ActionStopSounds:      "ActionStopSounds",
	ActionAdd:             "ActionAdd",
	ActionSubtract:        "ActionSubtract",
	ActionMultiply:        "ActionMultiply",
	ActionDivide:          "ActionDivide",
	ActionEquals:          "ActionEquals",
	ActionLess:            "ActionLess",
	ActionAnd:             "ActionAnd",
	ActionOr:              "ActionOr",
	ActionNot:             "ActionNot",
	ActionStringEquals:    "ActionStringEquals",
	ActionStringLength:    "ActionStringLength",
	ActionStringExtract:   "ActionStringExtract",
	ActionPop:             "ActionPop",
	ActionToInteger:       "ActionToInteger",
	ActionGetVariable:     "ActionGetVariable",
	ActionSetVariable:     "ActionSetVariable",
	ActionSetTarget2:      "ActionSetTarget2",
	ActionStringAdd:       "ActionStringAdd",
	ActionGetProperty:     "ActionGetProperty",
	ActionSetProperty:     "ActionSetProperty",
	ActionCloneSprite:     "ActionCloneSprite",
	ActionRemoveSprite:    "ActionRemoveSprite",
	ActionTrace:           "ActionTrace",
	ActionStartDrag:       "ActionStartDrag",
	ActionEndDrag:         "ActionEndDrag",
	ActionStringLess:      "ActionStringLess",
	ActionThrow:           "ActionThrow",
	ActionCastOp:          "ActionCastOp",
	ActionImplementsOp:    "ActionImplementsOp",
	ActionRandomNumber:    "ActionRandomNumber",
	ActionMBStringLength:  "ActionMBStringLength",
	ActionCharToAscii:     "ActionCharToAscii",
	ActionAsciiToChar:     "ActionAsciiToChar",
	ActionGetTime:         "ActionGetTime",
	ActionMBStringExtract: "ActionMBStringExtract",
	ActionMBCharToAscii:   "ActionMBCharToAscii",
	ActionMBAsciiToChar:   "ActionMBAsciiToChar",
	ActionDelete:          "ActionDelete",
	ActionDelete2:         "ActionDelete2",
	ActionDefineLocal:     "ActionDefineLocal",
	ActionCallFunction:    "ActionCallFunction",
	ActionReturn:          "ActionReturn",
	ActionModulo:          "ActionModulo",
	ActionNewObject:       "ActionNewObject",
	ActionDefineLocal2:    "ActionDefineLocal2",
	ActionGetMember:       "ActionGetMember",
	ActionInitArray:       "ActionInitArray",
	ActionInitObject:      "ActionInitObject",
	ActionTypeOf:          "ActionTypeOf",
	ActionTargetPath:      "ActionTargetPath",
	ActionEnumerate:       "ActionEnumerate",
	ActionAdd2:            "ActionAdd2",
	ActionLess2:           "ActionLess2",
	ActionEquals2:         "ActionEquals2",
	ActionToNumber:        "ActionToNumber",
	ActionToString:        "ActionToString",
	ActionPushDuplicate:   "ActionPushDuplicate",
	ActionStackSwap:       "ActionStackSwap",
	ActionSetMember:       "ActionSetMember",
	ActionIncrement:       "ActionIncrement",
	ActionDecrement:       "ActionDecrement",
	ActionCallMethod:      "ActionCallMethod",
	ActionNewMethod:       "ActionNewMethod",
	ActionInstanceOf:      "ActionInstanceOf",
	ActionEnumerate2:      "ActionEnumerate2",
	ActionBitAnd:          "ActionBitAnd",
	ActionBitOr:           "ActionBitOr",
	ActionBitXor:          "ActionBitXor",
	ActionBitLShift:       "ActionBitLShift",
	ActionBitRShift:       "ActionBitRShift",
	ActionBitURShift:      "ActionBitURShift",
	ActionStrictEquals:    "ActionStrictEquals",
	ActionGreater:         "ActionGreater",
	ActionStringGreater:   "ActionStringGreater",
	ActionExtends:         "ActionExtends",
	ActionGotoFrame:       "ActionGotoFrame",
	ActionGetURL:          "ActionGetURL",
	ActionStoreRegister:   "ActionStoreRegister",
	ActionConstantPool:    "ActionConstantPool",
	ActionWaitForFrame:    "ActionWaitForFrame",
	ActionSetTarget:       "ActionSetTarget",
	ActionGotoLabel:       "ActionGotoLabel",
	ActionWaitForFrame2:   "ActionWaitForFrame2",
	ActionDefineFunction2: "ActionDefineFunction2",
	ActionTry:             "ActionTry",
	ActionWith:            "ActionWith",
	ActionPush:            "ActionPush",
	ActionJump:            "ActionJump",
	ActionGetURL2:         "ActionGetURL2",
	ActionDefineFunction:  "ActionDefineFunction",
	ActionIf:              "ActionIf",
	ActionCall:            "ActionCall",
	ActionGotoFrame2:      "ActionGotoFrame2",
}

func unknownOpcodeName(op OpCode) string {
	const hexDigits = "0123456789ABCDEF"
	return "Unknown(0x" + string([]byte{hexDigits[op>>4], hexDigits[op&0xF]}) + ")"
}

// HasPayload reports whether op is encoded with a length-prefixed
// payload (opcode byte >= 0x80) rather than being a bare one-byte
// instruction, per spec 4.5's instruction format.
func (op OpCode) HasPayload() bool { return op >= 0x80 }
