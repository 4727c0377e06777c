// Package env implements the Environment (component F): the per-
// execution context an interpreter invocation runs against — operand
// stack, global register bank, call stack of CallFrames, with-stack,
// current/original target, and the SWF version gating the code buffer
// currently executing.
//
// Grounded on the teacher's internal/interp/runtime callstack.go (slice
// backed, depth-limited, rich inspection methods) and environment.go
// (nested scope idiom) for shape only: AVM1's Environment is not a
// lexical-scope chain of symbol tables, it is an operand stack plus a
// fixed register bank plus a vector of CallFrames, per spec 3.5.
package env

import (
	"github.com/gnashcore/avm1/internal/errors"
	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/swfver"
	"github.com/gnashcore/avm1/internal/value"
)

// MaxCallDepth is the call-stack depth limit (spec 3.5).
const MaxCallDepth = 255

// GlobalRegisterCount is the size of the fixed global register bank.
const GlobalRegisterCount = 4

// WithEntry is one entry of the with-stack: the object pushed by a
// `With` opcode and the code offset at which it expires. Grounded on
// Gnash's with_stack_entry.h (object + end-pc pair).
type WithEntry struct {
	Object value.ObjectID
	EndPC  uint32
}

// CallFrame is one activation record on the call stack (spec 3.5, 4.4).
type CallFrame struct {
	Fn        *runtime.Function
	Locals    value.ObjectID  // a regular Object used as the frame's scope
	Registers []value.Value   // local registers, nil unless a function2
	Name      string          // declared function name, for diagnostics
}

// Environment is the per-execution context threaded through a single
// interpreter invocation (and every nested call it makes, since the
// operand stack and call stack are shared — spec 4.7).
type Environment struct {
	operand []value.Value

	globalRegisters [GlobalRegisterCount]value.Value

	frames []*CallFrame

	with []WithEntry

	target         value.DisplayRef
	originalTarget value.DisplayRef

	version swfver.Version

	maxCallDepth int
}

// New returns an Environment for a code buffer declared under ver, with
// the given starting target (and original target, identical at entry).
func New(ver swfver.Version, target value.DisplayRef) *Environment {
	return &Environment{
		operand:        make([]value.Value, 0, 32),
		target:         target,
		originalTarget: target,
		version:        ver,
		maxCallDepth:   MaxCallDepth,
	}
}

// Version reports the SWF version gating this execution.
func (e *Environment) Version() swfver.Version { return e.version }

// SetMaxCallDepth overrides MaxCallDepth for this Environment alone
// (e.g. from config.VMConfig.CallStackDepth). n <= 0 is ignored.
func (e *Environment) SetMaxCallDepth(n int) {
	if n > 0 {
		e.maxCallDepth = n
	}
}

// --- operand stack (Environment::push/pop/top/drop/size) ---

// Push pushes v onto the operand stack.
func (e *Environment) Push(v value.Value) { e.operand = append(e.operand, v) }

// Pop removes and returns the top of the operand stack, or Undefined
// with ok=false if empty (the interpreter's underrun repair path uses
// this: spec 4.5's "fills missing slots with Undefined").
func (e *Environment) Pop() (value.Value, bool) {
	n := len(e.operand)
	if n == 0 {
		return value.Undefined(), false
	}
	v := e.operand[n-1]
	e.operand = e.operand[:n-1]
	return v, true
}

// Top returns the top of the operand stack without removing it.
func (e *Environment) Top() (value.Value, bool) {
	n := len(e.operand)
	if n == 0 {
		return value.Undefined(), false
	}
	return e.operand[n-1], true
}

// Drop discards n values from the top of the operand stack, tolerating
// n greater than the current depth (drops everything, no panic).
func (e *Environment) Drop(n int) {
	if n <= 0 {
		return
	}
	keep := len(e.operand) - n
	if keep < 0 {
		keep = 0
	}
	e.operand = e.operand[:keep]
}

// Size reports the current operand-stack depth.
func (e *Environment) Size() int { return len(e.operand) }

// TruncateTo drops (or, if short, pads with Undefined) the operand
// stack to exactly depth, per spec 3.5's end-of-slice repair rule.
func (e *Environment) TruncateTo(depth int) {
	switch {
	case len(e.operand) > depth:
		e.operand = e.operand[:depth]
	case len(e.operand) < depth:
		for len(e.operand) < depth {
			e.operand = append(e.operand, value.Undefined())
		}
	}
}

// --- global register bank ---

// GetGlobalRegister returns register n (1-based per spec/ActionScript
// convention; 0 and out-of-range are reported invalid).
func (e *Environment) GetGlobalRegister(n int) (value.Value, bool) {
	if n < 1 || n > GlobalRegisterCount {
		return value.Undefined(), false
	}
	return e.globalRegisters[n-1], true
}

// SetGlobalRegister stores v in register n (1-based), silently ignoring
// an out-of-range index (matches reference-player tolerance of
// malformed register operands).
func (e *Environment) SetGlobalRegister(n int, v value.Value) {
	if n < 1 || n > GlobalRegisterCount {
		return
	}
	e.globalRegisters[n-1] = v
}

// --- call stack ---

// PushFrame pushes a new CallFrame, raising a *errors.CallStackOverflow
// without mutating the stack if doing so would exceed MaxCallDepth.
func (e *Environment) PushFrame(f *CallFrame) error {
	if len(e.frames) >= e.maxCallDepth {
		return &errors.CallStackOverflow{Limit: e.maxCallDepth}
	}
	e.frames = append(e.frames, f)
	return nil
}

// PopFrame removes and returns the top CallFrame, or nil if the call
// stack is empty.
func (e *Environment) PopFrame() *CallFrame {
	n := len(e.frames)
	if n == 0 {
		return nil
	}
	f := e.frames[n-1]
	e.frames = e.frames[:n-1]
	return f
}

// CurrentFrame returns the innermost CallFrame, or nil at top level.
func (e *Environment) CurrentFrame() *CallFrame {
	n := len(e.frames)
	if n == 0 {
		return nil
	}
	return e.frames[n-1]
}

// Depth reports the current call-stack depth.
func (e *Environment) Depth() int { return len(e.frames) }

// Frames returns the live call stack, outermost first. The returned
// slice is owned by the Environment and must not be retained past the
// next Push/PopFrame.
func (e *Environment) Frames() []*CallFrame { return e.frames }

// --- with-stack ---

// PushWith pushes a WithEntry onto the with-stack.
func (e *Environment) PushWith(w WithEntry) { e.with = append(e.with, w) }

// ExpireWith pops every WithEntry whose EndPC is at or before pc, per
// the dispatch loop's "expire any WithEntry whose end_pc <= pc" rule
// (spec 4.5).
func (e *Environment) ExpireWith(pc uint32) {
	kept := e.with[:0]
	for _, w := range e.with {
		if w.EndPC > pc {
			kept = append(kept, w)
		}
	}
	e.with = kept
}

// WithEntries returns the with-stack, top (innermost) last, for the
// scope-view walk (spec 4.5 step 1, which the resolver walks
// top-to-bottom — i.e. in reverse of this slice).
func (e *Environment) WithEntries() []WithEntry { return e.with }

// WithDepth reports the current with-stack depth. Exceeding the
// reference player's informational thresholds (7 for SWF <= 5, 15 for
// SWF >= 6) is a diagnostic only, never enforced (spec 4.5).
func (e *Environment) WithDepth() int { return len(e.with) }

// --- target / original target ---

// Target returns the current target display node.
func (e *Environment) Target() value.DisplayRef { return e.target }

// OriginalTarget returns the target this Environment started with.
func (e *Environment) OriginalTarget() value.DisplayRef { return e.originalTarget }

// SetTarget retargets to ref. An empty-path DisplayRef restores the
// original target, per spec 4.5 ("SetTarget with empty path restores
// the frame's original target").
func (e *Environment) SetTarget(ref value.DisplayRef) {
	if ref.Path == "" {
		e.target = e.originalTarget
		return
	}
	e.target = ref
}

// --- GC roots (component K) ---

// GCRoots returns every value.ObjectID directly reachable from this
// Environment: the operand stack, the global register bank, each
// CallFrame's locals/registers/captured scope chain, and the with-stack.
// It contributes no indirect references (an object's own properties,
// prototype, or trigger callbacks) — those are the Arena's job to walk
// once an id is marked; this method only seeds the mark phase (spec 5,
// "the property store and object graph are reachable from the GC root
// set").
func (e *Environment) GCRoots() []value.ObjectID {
	var roots []value.ObjectID
	appendIfObject := func(v value.Value) {
		if v.IsObjectLike() {
			roots = append(roots, v.AsObjectID())
		}
	}

	for _, v := range e.operand {
		appendIfObject(v)
	}
	for _, v := range e.globalRegisters {
		appendIfObject(v)
	}
	for _, f := range e.frames {
		if f == nil {
			continue
		}
		if f.Locals != 0 {
			roots = append(roots, f.Locals)
		}
		for _, v := range f.Registers {
			appendIfObject(v)
		}
		if f.Fn != nil {
			roots = append(roots, f.Fn.Scope...)
		}
	}
	for _, w := range e.with {
		if w.Object != 0 {
			roots = append(roots, w.Object)
		}
	}
	return roots
}
