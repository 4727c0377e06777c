package errors

import (
	"fmt"
	"strings"
)

// StackFrame is a snapshot of one CallFrame at the moment a Kind was
// raised: the function's name (or "<anonymous>") and the PC it was
// suspended at. Unlike a source-level language's stack trace, AVM1 has
// no line/column to report — bytecode offset is the only position a
// frame has.
type StackFrame struct {
	FunctionName string
	PC           uint32
}

// String renders a frame as "name [pc: N]". Every frame uses this form,
// including one with PC 0 or a synthetic "<...>" name.
func (sf StackFrame) String() string {
	return fmt.Sprintf("%s [pc: %d]", sf.FunctionName, sf.PC)
}

// StackTrace is a call stack snapshot, ordered oldest (bottom, index 0)
// to newest (top, last index) — the same order env.Environment's own
// call stack slice uses.
type StackTrace []StackFrame

// String renders the trace most-recent-frame-first, one per line.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a copy of st with frame order reversed.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recently pushed frame, or nil if st is empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the oldest frame, or nil if st is empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in st.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame constructs a StackFrame for the given function name and PC.
func NewStackFrame(functionName string, pc uint32) StackFrame {
	return StackFrame{FunctionName: functionName, PC: pc}
}

// NewStackTrace returns an empty StackTrace.
func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}
