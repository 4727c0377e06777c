// Package errors defines the core's error taxonomy (spec 7): one struct
// per kind, each carrying the category tag it reports through
// internal/diag and the fields a caller needs to decide how to recover.
// CoercionError is the one kind defined elsewhere (internal/value/coerce.go),
// since internal/value cannot import this package without creating a
// cycle (internal/runtime, which this package also describes errors for,
// already sits above internal/value); it is documented here for
// completeness but not redeclared.
package errors

import (
	"fmt"

	"github.com/gnashcore/avm1/internal/diag"
	"github.com/gnashcore/avm1/internal/value"
)

// Kind is implemented by every error type in this package, letting a
// caller route a raised error to diag.Sink without a type switch over
// every concrete type.
type Kind interface {
	error
	Category() diag.Category
}

// PropertyDenied is raised by a write to a readOnly property or a
// delete of a dontDelete property (spec 4.2, 7). Per propagation
// policy it is logged and the operation completes as a no-op; it is
// never thrown.
type PropertyDenied struct {
	Object value.ObjectID
	Name   string
	Reason string // "readOnly" or "dontDelete"
}

func (e *PropertyDenied) Error() string {
	return fmt.Sprintf("property %q on object %d denied: %s", e.Name, e.Object, e.Reason)
}

// Category implements Kind.
func (e *PropertyDenied) Category() diag.Category { return diag.ASCoding }

// UnknownTarget is raised when a target path resolves to no object but
// the caller requires one (spec 4.3, 7) — e.g. tellTarget to a
// nonexistent clip, or a with() on an unresolved path.
type UnknownTarget struct {
	Path string
}

func (e *UnknownTarget) Error() string {
	return fmt.Sprintf("target path %q does not resolve to an object", e.Path)
}

// Category implements Kind.
func (e *UnknownTarget) Category() diag.Category { return diag.ASCoding }

// CallStackOverflow is raised when invocation would push the call
// stack past its depth limit (spec 3.5, 4.4, 7). It aborts the current
// interpreter invocation only.
type CallStackOverflow struct {
	Limit int
}

func (e *CallStackOverflow) Error() string {
	return fmt.Sprintf("call stack depth exceeds limit of %d", e.Limit)
}

// Category implements Kind.
func (e *CallStackOverflow) Category() diag.Category { return diag.ASError }

// ActionLimitException is raised when the dispatch loop's branch
// counter exceeds its bound (spec 4.5, 5, 7), guarding against a
// script that never terminates. It aborts the current interpreter
// invocation only.
type ActionLimitException struct {
	Limit int
}

func (e *ActionLimitException) Error() string {
	return fmt.Sprintf("action limit of %d branches exceeded", e.Limit)
}

// Category implements Kind.
func (e *ActionLimitException) Category() diag.Category { return diag.ASError }

// StackUnderrun is raised when an opcode handler needs more operands
// than the stack holds (spec 4.5, 7). Per propagation policy it is
// repaired in place (missing operands are treated as Undefined) and
// execution continues; it is reported, never thrown.
type StackUnderrun struct {
	Opcode string
	Wanted int
	Got    int
}

func (e *StackUnderrun) Error() string {
	return fmt.Sprintf("%s wanted %d operand(s), stack had %d", e.Opcode, e.Wanted, e.Got)
}

// Category implements Kind.
func (e *StackUnderrun) Category() diag.Category { return diag.ASCoding }

// MalformedCode is raised when a decoded opcode's declared length would
// run past the end of its code buffer (spec 4.5, 7). Per propagation
// policy next_pc is clamped to the stop-PC, draining the slice without
// executing further opcodes.
type MalformedCode struct {
	PC     uint32
	Reason string
}

func (e *MalformedCode) Error() string {
	return fmt.Sprintf("malformed code at pc %d: %s", e.PC, e.Reason)
}

// Category implements Kind.
func (e *MalformedCode) Category() diag.Category { return diag.MalformedSWF }

// ThrownValue carries an ActionThrow'd value up through Run's error
// return so the nearest enclosing ActionTry region can catch it; one
// that no ActionTry catches unwinds the invocation and is returned as
// Run's error.
type ThrownValue struct {
	Value value.Value
}

func (e *ThrownValue) Error() string { return "uncaught AVM1 throw" }

// Category implements Kind.
func (e *ThrownValue) Category() diag.Category { return diag.ASError }

// ParserException is raised at load time when an InitAction tag is
// found inside an AS3 SWF (spec 7). It is fatal for the enclosing tag
// only, never for the whole load.
type ParserException struct {
	Tag    string
	Reason string
}

func (e *ParserException) Error() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Reason)
}

// Category implements Kind.
func (e *ParserException) Category() diag.Category { return diag.MalformedSWF }
