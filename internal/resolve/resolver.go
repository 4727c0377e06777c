package resolve

import (
	"strings"

	"github.com/gnashcore/avm1/internal/env"
	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/value"
)

// DisplayGraph is the host-provided collaborator this package needs for
// absolute-root and ".." ascension (spec 6's DisplayGraph contract,
// narrowed to the two operations path resolution actually uses;
// internal/host supplies the full interface and satisfies this one).
type DisplayGraph interface {
	// Root returns the absolute root (level 0) display node.
	Root() value.DisplayRef
	// Parent returns ref's parent display node, or ok=false at the root.
	Parent(ref value.DisplayRef) (value.DisplayRef, bool)
}

// Resolver implements component G against a single Arena/DisplayGraph
// pair. It is stateless across calls; all per-execution state lives in
// the env.Environment passed to each method.
type Resolver struct {
	Arena   *runtime.Arena
	Display DisplayGraph
	Strings *strtab.StringTable
	Global  value.ObjectID // 0 under SWF < 6 / before the global object exists

	// Magic backs the display-node magic properties (spec 4.2); nil is
	// valid (no magic short-circuit, every object behaves as plain).
	Magic DisplayProperties
}

// cursor is the walk's current position: either a display-graph node
// (isDisplay) or a plain object reached via a prior member lookup.
type cursor struct {
	obj       value.ObjectID
	display   value.DisplayRef
	isDisplay bool
}

func (r *Resolver) cursorFromDisplay(ref value.DisplayRef) cursor {
	obj, _, _ := r.Arena.ResolveDisplay(ref)
	return cursor{obj: obj, display: ref, isDisplay: true}
}

// FindObject walks path (as produced by ParsePath) against the current
// target, per spec 4.3's object-resolution rules: a leading '/' in
// slash mode re-anchors at the absolute root; ".." ascends to the
// parent display node (slash mode only, and only when the current
// position is a display node — otherwise the step is a silent no-op
// and the walk goes on); every other component is a member
// lookup, with a one-shot fallback to the global object when the very
// first component fails; subsequent failures return not-found; a
// component resolving to a primitive terminates the walk with
// not-found.
func (r *Resolver) FindObject(e *env.Environment, path string, slashBased bool) (value.ObjectID, bool) {
	cur := r.walk(e, path, slashBased)
	return cur.obj, cur.obj != 0
}

// ResolvePath is FindObject's counterpart for callers that need the
// display reference itself rather than the resolved object — the
// targetpath-by-index property opcodes (GetProperty/SetProperty) and
// any other host delegation keyed on a path string.
func (r *Resolver) ResolvePath(e *env.Environment, path string, slashBased bool) (value.DisplayRef, bool) {
	cur := r.walk(e, path, slashBased)
	return cur.display, cur.isDisplay
}

// walk is the shared path-resolution loop behind FindObject and
// ResolvePath (spec 4.3): a leading '/' in slash mode re-anchors at the
// absolute root; ".." ascends to the parent display node (slash mode
// only, and only when the current position is a display node —
// otherwise the step is a no-op); every other component is a member
// lookup, with a one-shot fallback to the global object when the very
// first component fails; a component resolving to a primitive
// terminates the walk with a zero cursor.
func (r *Resolver) walk(e *env.Environment, path string, slashBased bool) cursor {
	cur := r.cursorFromDisplay(e.Target())

	if path == "" {
		return cur
	}

	if slashBased && strings.HasPrefix(path, "/") {
		cur = r.cursorFromDisplay(r.Display.Root())
		path = path[1:]
	}
	if path == "" {
		return cur
	}

	sep := byte('.')
	if slashBased {
		sep = '/'
	}

	depth := 0
	for _, part := range strings.Split(path, string(sep)) {
		if part == "" {
			continue
		}
		if slashBased && part == ".." {
			if !cur.isDisplay {
				// ".." following a non-display object: skipped, and the
				// walk continues from the same position.
				depth++
				continue
			}
			parent, ok := r.Display.Parent(cur.display)
			if !ok {
				// the root has no parent: leave cur unchanged and move on.
				depth++
				continue
			}
			cur = r.cursorFromDisplay(parent)
			depth++
			continue
		}

		v, ok := r.Arena.GetMember(cur.obj, part)
		if !ok && depth == 0 && r.Global != 0 {
			v, ok = r.Arena.GetMember(r.Global, part)
		}
		if !ok {
			return cursor{}
		}
		switch v.Kind() {
		case value.KindDisplayRef:
			cur = r.cursorFromDisplay(v.AsDisplayRef())
		case value.KindObject, value.KindFunction:
			cur = cursor{obj: v.AsObjectID(), isDisplay: false}
		default:
			return cursor{}
		}
		depth++
	}

	return cur
}
