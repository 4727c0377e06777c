package runtime

import (
	"github.com/gnashcore/avm1/internal/swfver"
	"github.com/gnashcore/avm1/internal/value"
)

// FunctionKind distinguishes Function's two variants (spec 3.4).
type FunctionKind uint8

const (
	FuncNative FunctionKind = iota
	FuncScripted
)

// NativeFunc is a host- or builtin-provided function body. args excludes
// the implicit argument count; this mirrors the Invocation contract in
// spec 4.4 after the interpreter has already popped the count and that
// many operands.
type NativeFunc func(a *Arena, this value.ObjectID, args []value.Value) (value.Value, error)

// Param describes one declared parameter (spec 4.4 "Declaration").
// Register == 0 means "bind as a named local" rather than a register
// slot; this is DefineFunction2's per-argument register assignment.
type Param struct {
	Name     string
	Register int
}

// FunctionFlags is the function2 preload/suppress bitmask (spec 4.4),
// using the exact bit assignments from the SWF8 DefineFunction2 tag:
// root/parent/global have no suppress bit because they are never bound
// as ordinary named locals — only this/arguments/super are.
type FunctionFlags uint16

const (
	PreloadThis FunctionFlags = 1 << iota
	SuppressThis
	PreloadArguments
	SuppressArguments
	PreloadSuper
	SuppressSuper
	PreloadRoot
	PreloadParent
	PreloadGlobal
)

// Has reports whether all bits of want are set in f.
func (f FunctionFlags) Has(want FunctionFlags) bool { return f&want == want }

// Function is component E. Exactly one of the Native/Scripted field
// groups is meaningful, selected by Kind.
type Function struct {
	Kind FunctionKind

	// Native variant.
	Native NativeFunc

	// Scripted variant.
	Code               []byte            // shared, immutable code buffer
	Start              uint32            // start PC of the body within Code
	Length             uint32            // byte length of the body
	Scope              []value.ObjectID  // scope chain snapshot at declaration time (outer-to-inner)
	Params             []Param
	LocalRegisterCount int
	Flags              FunctionFlags     // zero for plain DefineFunction (no function2 behavior)
	Version            swfver.Version    // declaring movie's SWF version
}

// NewNativeFunction wraps a Go function as an AVM1-callable Function.
func NewNativeFunction(fn NativeFunc) *Function {
	return &Function{Kind: FuncNative, Native: fn}
}

// NewScriptedFunction wraps a bytecode slice as an AVM1-callable
// Function, capturing the scope chain in effect at the DefineFunction/
// DefineFunction2 site.
func NewScriptedFunction(code []byte, start, length uint32, scope []value.ObjectID, params []Param, localRegs int, flags FunctionFlags, ver swfver.Version) *Function {
	return &Function{
		Kind:               FuncScripted,
		Code:               code,
		Start:              start,
		Length:             length,
		Scope:              append([]value.ObjectID(nil), scope...),
		Params:             params,
		LocalRegisterCount: localRegs,
		Flags:              flags,
		Version:            ver,
	}
}

// IsFunction2 reports whether this scripted function was declared with
// DefineFunction2 (i.e. has register-aware preload/suppress behavior)
// rather than the simpler DefineFunction.
func (f *Function) IsFunction2() bool {
	return f.Kind == FuncScripted && (f.LocalRegisterCount > 0 || f.Flags != 0 || hasRegisterParam(f.Params))
}

func hasRegisterParam(params []Param) bool {
	for _, p := range params {
		if p.Register != 0 {
			return true
		}
	}
	return false
}
