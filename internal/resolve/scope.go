package resolve

import (
	"github.com/gnashcore/avm1/internal/env"
	"github.com/gnashcore/avm1/internal/value"
)

// LookupName resolves a bare (non-path) identifier against the full
// scope view, per spec 4.5's eight-step list: the with-stack
// (innermost/most-recently-pushed first), the current CallFrame's
// locals, the active Function's captured scope chain (innermost
// enclosing scope first, so inner declarations shadow outer ones), the
// current target's own members, the `this` literal, `_root`/`_level0`,
// `_global` (SWF >= 6), and finally the global object's own members. A
// failed lookup returns Undefined, never an error (spec 4.5).
func (r *Resolver) LookupName(e *env.Environment, name string, foldCase bool) value.Value {
	if IsMagicName(name) {
		target, isMovieClip, ok := r.Arena.ResolveDisplay(e.Target())
		if ok && isMovieClip {
			if v, ok := r.GetProperty(e.Target(), true, target, name); ok {
				return v
			}
		}
	}

	if owner, ok := r.findOwner(e, name); ok {
		v, _ := r.Arena.GetMember(owner, name)
		return v
	}

	if name == "this" {
		target, _, _ := r.Arena.ResolveDisplay(e.Target())
		return value.Object(target)
	}
	if name == "_root" || name == "_level0" {
		return value.Display(r.Display.Root())
	}
	if e.Version().HasGlobalObject() && name == "_global" && r.Global != 0 {
		return value.Object(r.Global)
	}
	if r.Global != 0 {
		if v, ok := r.Arena.GetMember(r.Global, name); ok {
			return v
		}
	}
	return value.Undefined()
}

// WriteName assigns v to name per spec 4.3/4.5: if name already exists
// anywhere in the with-stack, the current frame's locals, the active
// scope chain, the current target, or the global object, that existing
// slot is updated (respecting accessors/readOnly, via
// Arena.SetMemberID); otherwise the variable is created fresh on the
// current target — never on a WithEntry and never on the scope frame.
func (r *Resolver) WriteName(e *env.Environment, name string, v value.Value, foldCase bool) {
	if IsMagicName(name) {
		target, isMovieClip, ok := r.Arena.ResolveDisplay(e.Target())
		if ok && isMovieClip && r.Magic != nil {
			_ = r.SetProperty(e.Target(), true, target, name, v, foldCase)
			return
		}
	}

	if owner, ok := r.findOwner(e, name); ok {
		_ = r.Arena.SetMember(owner, name, v, foldCase)
		return
	}
	target, _, _ := r.Arena.ResolveDisplay(e.Target())
	if target == 0 {
		return
	}
	_ = r.Arena.SetMember(target, name, v, foldCase)
}

// FindOwner exposes findOwner for callers outside this package that
// need to resolve a bare name to its owning object before acting on it
// directly, rather than through LookupName/WriteName — ActionDelete2's
// scope-view delete is the only such caller.
func (r *Resolver) FindOwner(e *env.Environment, name string) (value.ObjectID, bool) {
	return r.findOwner(e, name)
}

// findOwner returns the first object in the scope view that already
// carries name (own or inherited), or ok=false if none does.
func (r *Resolver) findOwner(e *env.Environment, name string) (value.ObjectID, bool) {
	nameID, found := r.Strings.Find(name, false)
	if !found {
		nameID, found = r.Strings.Find(name, true)
	}
	if !found {
		return 0, false
	}

	with := e.WithEntries()
	for i := len(with) - 1; i >= 0; i-- {
		if r.Arena.HasMemberID(with[i].Object, nameID, 0) {
			return with[i].Object, true
		}
	}

	if frame := e.CurrentFrame(); frame != nil {
		if r.Arena.HasMemberID(frame.Locals, nameID, 0) {
			return frame.Locals, true
		}
		if frame.Fn != nil {
			for i := len(frame.Fn.Scope) - 1; i >= 0; i-- {
				if scopeObj := frame.Fn.Scope[i]; r.Arena.HasMemberID(scopeObj, nameID, 0) {
					return scopeObj, true
				}
			}
		}
	}

	target, _, _ := r.Arena.ResolveDisplay(e.Target())
	if target != 0 && r.Arena.HasMemberID(target, nameID, 0) {
		return target, true
	}

	if r.Global != 0 && r.Arena.HasMemberID(r.Global, nameID, 0) {
		return r.Global, true
	}

	return 0, false
}
