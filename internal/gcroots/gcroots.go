// Package gcroots implements component K: the mark phase that
// determines which value.ObjectIDs are still reachable from a set of
// roots, and a sweep step that reclaims everything that is not.
//
// Go's own runtime already manages the memory behind every *Object this
// core allocates; this package exists to reproduce the reference
// engine's own notion of object lifetime (spec 3.3, 5), where a
// scripted object becomes eligible for cleanup only once nothing —
// not a local variable, not a captured closure scope, not a pending
// queue entry — can reach it any more, and where that determination is
// made once, at a host-chosen quiescent point between frames, never
// mid-interpretation.
package gcroots

import "github.com/gnashcore/avm1/internal/value"

// Walker is the narrow capability the mark/sweep phase needs from the
// object table. internal/runtime's Arena satisfies this directly.
type Walker interface {
	// Allocated lists every live ObjectID currently in the table.
	Allocated() []value.ObjectID
	// References lists every ObjectID directly reachable from id's own
	// fields (prototype, constructor, property values, ...).
	References(id value.ObjectID) []value.ObjectID
	// Free reclaims id. Called only for ids the mark phase did not
	// reach.
	Free(id value.ObjectID)
}

// RootSource is implemented by anything that can seed the mark phase
// with its own directly-held ObjectIDs: internal/env's Environment
// (operand stack, registers, call frames, with-stack) and
// internal/queue's Queue (pending entries' captured roots) both satisfy
// this with no adaptation.
type RootSource interface {
	GCRoots() []value.ObjectID
}

// Set is a mark-phase result: the ids found reachable.
type Set map[value.ObjectID]bool

// Marked reports whether id was reached during Mark.
func (s Set) Marked(id value.ObjectID) bool { return s[id] }

// Mark walks the object graph reachable from roots via walker and
// returns the full reachable set. A root or reference of 0 (the "no
// object" sentinel every component uses for an absent link) is never
// followed.
func Mark(walker Walker, roots []value.ObjectID) Set {
	marked := make(Set, len(roots))
	stack := make([]value.ObjectID, 0, len(roots))

	push := func(id value.ObjectID) {
		if id == 0 || marked[id] {
			return
		}
		marked[id] = true
		stack = append(stack, id)
	}
	for _, r := range roots {
		push(r)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ref := range walker.References(id) {
			push(ref)
		}
	}
	return marked
}

// Sweep frees every id walker reports as allocated but marked did not
// reach, and returns how many were freed.
func Sweep(walker Walker, marked Set) int {
	freed := 0
	for _, id := range walker.Allocated() {
		if !marked.Marked(id) {
			walker.Free(id)
			freed++
		}
	}
	return freed
}

// Collect runs one full mark-then-sweep pass: it gathers roots from
// every given RootSource, marks everything reachable from them, frees
// everything else, and returns the reachable set (useful for
// diagnostics/tests) alongside the count of objects freed.
func Collect(walker Walker, sources ...RootSource) (Set, int) {
	var roots []value.ObjectID
	for _, s := range sources {
		roots = append(roots, s.GCRoots()...)
	}
	marked := Mark(walker, roots)
	freed := Sweep(walker, marked)
	return marked, freed
}
