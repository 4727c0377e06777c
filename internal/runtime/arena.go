package runtime

import (
	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/value"
)

// DisplayResolver is the pluggable display-graph collaborator Arena
// delegates value.Host.ResolveDisplay to. internal/host supplies the
// real implementation; tests and the CLI may use a stub.
type DisplayResolver interface {
	ResolveDisplay(ref value.DisplayRef) (obj value.ObjectID, isMovieClip bool, ok bool)
}

// Arena is the object table backing every scripted value.ObjectID: a
// simple growable slice indexed by ID, exactly the "arena of indices"
// redesign spec 9 calls for in place of the teacher's heap-pointer
// ObjectInstance graph. Arena is also the implementation of
// value.Host — it is the only package that ever dereferences an
// ObjectID into an *Object.
type Arena struct {
	objects []*Object // index 0 is an unused sentinel slot

	strings *strtab.StringTable
	display DisplayResolver
	invoker Invoker
}

// NewArena returns an empty Arena backed by the given StringTable.
func NewArena(strings *strtab.StringTable) *Arena {
	return &Arena{
		objects: make([]*Object, 1, 64),
		strings: strings,
	}
}

// SetDisplayResolver wires the host's display-graph collaborator. Until
// called, ResolveDisplay always reports not-found.
func (a *Arena) SetDisplayResolver(d DisplayResolver) { a.display = d }

// New allocates obj and returns its fresh ObjectID.
func (a *Arena) New(obj *Object) value.ObjectID {
	id := value.ObjectID(len(a.objects))
	a.objects = append(a.objects, obj)
	return id
}

// Get dereferences id, or nil if id is 0 or out of range (never panics:
// a stale ObjectID from a torn-down arena is a normal occurrence via
// DisplayRef re-resolution failures, not a programming error).
func (a *Arena) Get(id value.ObjectID) *Object {
	if int(id) <= 0 || int(id) >= len(a.objects) {
		return nil
	}
	return a.objects[id]
}

// Intern is a convenience wrapper over the arena's StringTable.
func (a *Arena) Intern(name string, foldCase bool) strtab.ID {
	return a.strings.Intern(name, foldCase)
}

// --- prototype-chain read/write (spec 4.2) ---

// GetMember implements the read path: walk the prototype chain (origin
// first), breaking cycles, and invoke a getter with this=origin if the
// resolved property is an accessor. Magic properties on display nodes
// are NOT handled here — that short-circuit happens one layer up, in
// internal/resolve, before GetMember is ever reached.
func (a *Arena) GetMember(origin value.ObjectID, name string) (value.Value, bool) {
	nameID, ok := a.strings.Find(name, false)
	if !ok {
		if foldedID, ok2 := a.strings.Find(name, true); ok2 {
			nameID, ok = foldedID, true
		}
	}
	if !ok {
		return value.Undefined(), false
	}
	return a.getMemberID(origin, origin, nameID, 0, make(map[value.ObjectID]bool))
}

// GetMemberID is the ID-keyed counterpart of GetMember, used by callers
// that already interned the property name (the interpreter's hot path).
func (a *Arena) GetMemberID(origin value.ObjectID, nameID strtab.ID, ns uint32) (value.Value, bool) {
	return a.getMemberID(origin, origin, nameID, ns, make(map[value.ObjectID]bool))
}

func (a *Arena) getMemberID(origin, cur value.ObjectID, nameID strtab.ID, ns uint32, seen map[value.ObjectID]bool) (value.Value, bool) {
	if seen[cur] {
		return value.Undefined(), false
	}
	seen[cur] = true

	obj := a.Get(cur)
	if obj == nil {
		return value.Undefined(), false
	}
	if p, ok := obj.Store.Get(nameID, ns); ok {
		if !p.IsAccessor {
			return p.Value, true
		}
		if p.Getter == 0 {
			return value.Undefined(), true
		}
		result, err := a.Call(p.Getter, origin, nil)
		if err != nil {
			return value.Undefined(), true
		}
		return result, true
	}
	for _, iface := range obj.Interfaces {
		if v, ok := a.getMemberID(origin, iface, nameID, ns, seen); ok {
			return v, true
		}
	}
	if obj.Prototype != 0 {
		return a.getMemberID(origin, obj.Prototype, nameID, ns, seen)
	}
	return value.Undefined(), false
}

// HasMemberID reports whether name resolves anywhere along origin's
// prototype/interface chain, without invoking any getter. Used by
// internal/resolve to decide whether an assignment should update an
// existing property somewhere in the scope view or create a fresh one
// on the current target (spec 4.3).
func (a *Arena) HasMemberID(origin value.ObjectID, nameID strtab.ID, ns uint32) bool {
	return a.hasMemberID(origin, nameID, ns, make(map[value.ObjectID]bool))
}

func (a *Arena) hasMemberID(cur value.ObjectID, nameID strtab.ID, ns uint32, seen map[value.ObjectID]bool) bool {
	if seen[cur] {
		return false
	}
	seen[cur] = true
	obj := a.Get(cur)
	if obj == nil {
		return false
	}
	if obj.Store.Has(nameID, ns) {
		return true
	}
	for _, iface := range obj.Interfaces {
		if a.hasMemberID(iface, nameID, ns, seen) {
			return true
		}
	}
	if obj.Prototype != 0 {
		return a.hasMemberID(obj.Prototype, nameID, ns, seen)
	}
	return false
}

// SetMember implements the write path (spec 4.2): search the chain for
// an existing accessor or a readOnly-guarded own slot; otherwise create
// or update an own slot on obj directly. Triggers fire after the new
// value is decided but before — in the slot case — it is actually
// stored, per spec 4.8 ("before storing, invoke callback").
func (a *Arena) SetMember(obj value.ObjectID, name string, v value.Value, foldCase bool) error {
	nameID := a.strings.Intern(name, foldCase)
	return a.SetMemberID(obj, nameID, 0, v)
}

// SetMemberID is the ID-keyed counterpart of SetMember.
func (a *Arena) SetMemberID(objID value.ObjectID, nameID strtab.ID, ns uint32, v value.Value) error {
	obj := a.Get(objID)
	if obj == nil {
		return nil
	}

	if owner, p := a.findAccessorOrReadOnly(objID, nameID, ns, make(map[value.ObjectID]bool)); p != nil {
		if p.IsAccessor {
			if p.Setter == 0 {
				return nil // getter-only property: silent no-op
			}
			_, err := a.Call(p.Setter, objID, []value.Value{v})
			return err
		}
		// readOnly own slot on an ancestor: blocked there, but the
		// write still proceeds against obj itself as a new shadowing
		// property (spec 3.2 invariant).
		if owner == objID {
			return nil
		}
	}

	old, hadOld := obj.Store.Get(nameID, ns)
	oldVal := value.Undefined()
	if hadOld {
		oldVal = old.Value
	}
	newVal, err := a.fireTriggers(objID, nameID, ns, oldVal, v)
	if err != nil {
		return err
	}
	obj.Store.SetSlot(nameID, ns, newVal, 0)
	return nil
}

// findAccessorOrReadOnly walks the chain looking for the first property
// that is either an accessor or carries ReadOnly, returning the owning
// ObjectID so the caller can tell an ancestor readOnly block apart from
// a plain absent property.
func (a *Arena) findAccessorOrReadOnly(cur value.ObjectID, nameID strtab.ID, ns uint32, seen map[value.ObjectID]bool) (value.ObjectID, *Property) {
	if seen[cur] {
		return 0, nil
	}
	seen[cur] = true
	obj := a.Get(cur)
	if obj == nil {
		return 0, nil
	}
	if p, ok := obj.Store.Get(nameID, ns); ok {
		if p.IsAccessor || p.Flags.Has(ReadOnly) {
			return cur, p
		}
		return 0, nil
	}
	if obj.Prototype != 0 {
		return a.findAccessorOrReadOnly(obj.Prototype, nameID, ns, seen)
	}
	return 0, nil
}

// DeleteMember implements Object::delete_member.
func (a *Arena) DeleteMember(objID value.ObjectID, nameID strtab.ID, ns uint32) (found, deleted bool) {
	obj := a.Get(objID)
	if obj == nil {
		return false, false
	}
	return obj.Store.Delete(nameID, ns)
}

// --- Host interface (internal/value.Host) ---

// Call invokes a callable object. Scripted functions are run through the
// interpreter via the Invoker this Arena was configured with
// (SetInvoker) — runtime never imports bytecode, breaking the cycle the
// same way internal/value.Host breaks runtime's.
func (a *Arena) Call(objID value.ObjectID, this value.ObjectID, args []value.Value) (value.Value, error) {
	obj := a.Get(objID)
	if obj == nil || obj.Fn == nil {
		return value.Undefined(), &value.CoercionError{Hint: "call"}
	}
	fn := obj.Fn
	if fn.Kind == FuncNative {
		return fn.Native(a, this, args)
	}
	if a.invoker == nil {
		return value.Undefined(), &value.CoercionError{Hint: "call"}
	}
	return a.invoker.InvokeScripted(a, fn, objID, this, args)
}

// IsCallable reports whether objID names a Function.
func (a *Arena) IsCallable(objID value.ObjectID) bool {
	obj := a.Get(objID)
	return obj != nil && obj.Fn != nil
}

// ClassName returns the relay class name for to_string fallbacks.
func (a *Arena) ClassName(objID value.ObjectID) string {
	obj := a.Get(objID)
	if obj == nil {
		return "Object"
	}
	return obj.ClassName
}

// IsDateRelay reports whether objID carries a Date native relay.
func (a *Arena) IsDateRelay(objID value.ObjectID) bool {
	obj := a.Get(objID)
	if obj == nil {
		return false
	}
	_, ok := obj.NativeRelay.(dateRelay)
	return ok
}

// dateRelay is implemented by whatever internal/builtins uses to mark a
// Date instance's native relay; kept as an unexported marker interface
// here so this package doesn't need to import builtins.
type dateRelay interface{ IsDate() bool }

// ResolveDisplay dereferences a DisplayRef via the configured
// DisplayResolver, or reports not-found if none is configured.
func (a *Arena) ResolveDisplay(ref value.DisplayRef) (value.ObjectID, bool, bool) {
	if a.display == nil {
		return 0, false, false
	}
	return a.display.ResolveDisplay(ref)
}

// Invoker lets internal/bytecode supply the actual interpreter without
// runtime importing bytecode. callee is the Function's own object id
// (for arguments.callee); 0 if the caller has none at hand.
type Invoker interface {
	InvokeScripted(a *Arena, fn *Function, callee, this value.ObjectID, args []value.Value) (value.Value, error)
}

// SetInvoker wires the scripted-call callback. Must be called once at
// startup before any scripted function is invoked.
func (a *Arena) SetInvoker(inv Invoker) { a.invoker = inv }

// --- TriggerTable (component J) ---

// Watch installs a trigger for (name, ns) on obj.
func (a *Arena) Watch(objID value.ObjectID, nameID strtab.ID, ns uint32, callback value.ObjectID, extra value.Value) {
	obj := a.Get(objID)
	if obj == nil {
		return
	}
	obj.watch(propKey{nameID, ns}, callback, extra)
}

// Unwatch removes the trigger for (name, ns) on obj, reporting whether
// one was present.
func (a *Arena) Unwatch(objID value.ObjectID, nameID strtab.ID, ns uint32) bool {
	obj := a.Get(objID)
	if obj == nil {
		return false
	}
	return obj.unwatch(propKey{nameID, ns})
}

// fireTriggers invokes the watcher for (name, ns) on obj, if any and not
// already executing, and returns the value that should actually be
// stored (the callback's return value replaces newVal, per spec 4.8).
func (a *Arena) fireTriggers(objID value.ObjectID, nameID strtab.ID, ns uint32, oldVal, newVal value.Value) (value.Value, error) {
	obj := a.Get(objID)
	if obj == nil || obj.watchers == nil {
		return newVal, nil
	}
	key := propKey{nameID, ns}
	t, ok := obj.watchers[key]
	if !ok || t.dead || t.executing {
		return newVal, nil
	}

	t.executing = true
	result, err := a.Call(t.Callback, objID, []value.Value{oldVal, newVal, t.Extra})
	t.executing = false

	if t.dead {
		delete(obj.watchers, key)
	}
	if err != nil {
		return newVal, err
	}
	return result, nil
}

// --- GC root set support (component K) ---
//
// Arena never reclaims memory itself — Go's own collector owns that.
// What it supports here is the reference-engine's own notion of
// reachability (spec 5: "the property store and object graph are
// reachable from the GC root set; a full mark phase is invoked by the
// host between frames"): Allocated/References let internal/gcroots walk
// the object graph from a set of roots, and Free lets it tombstone a
// slot so a later Get on a stale but in-range ObjectID reports absent,
// matching a DisplayRef re-resolution failure rather than panicking.

// Allocated returns every live (non-freed) ObjectID currently in the
// arena.
func (a *Arena) Allocated() []value.ObjectID {
	ids := make([]value.ObjectID, 0, len(a.objects))
	for i, obj := range a.objects {
		if i == 0 || obj == nil {
			continue
		}
		ids = append(ids, value.ObjectID(i))
	}
	return ids
}

// References returns every ObjectID directly reachable from id's own
// fields: its prototype, constructor, interfaces, a Function's captured
// scope chain, every property's value/getter/setter (including hidden
// ones — VisitAll, not VisitNonHidden), and every trigger's callback.
func (a *Arena) References(id value.ObjectID) []value.ObjectID {
	obj := a.Get(id)
	if obj == nil {
		return nil
	}
	var refs []value.ObjectID
	if obj.Prototype != 0 {
		refs = append(refs, obj.Prototype)
	}
	if obj.Constructor != 0 {
		refs = append(refs, obj.Constructor)
	}
	refs = append(refs, obj.Interfaces...)
	if obj.Fn != nil {
		refs = append(refs, obj.Fn.Scope...)
	}
	obj.Store.VisitAll(func(_ strtab.ID, _ uint32, p *Property) {
		if p.IsAccessor {
			if p.Getter != 0 {
				refs = append(refs, p.Getter)
			}
			if p.Setter != 0 {
				refs = append(refs, p.Setter)
			}
			return
		}
		if p.Value.IsObjectLike() {
			refs = append(refs, p.Value.AsObjectID())
		}
	})
	for _, t := range obj.watchers {
		if t.Callback != 0 {
			refs = append(refs, t.Callback)
		}
	}
	return refs
}

// --- ASSetPropFlags support ---

// OwnPropertyNames returns the name of every own property of objID, in
// insertion order, including DontEnum-hidden ones (ASSetPropFlags's
// null-propList form applies to every own property regardless of its
// current enumerability).
func (a *Arena) OwnPropertyNames(objID value.ObjectID) []string {
	obj := a.Get(objID)
	if obj == nil {
		return nil
	}
	var names []string
	obj.Store.VisitAll(func(name strtab.ID, _ uint32, _ *Property) {
		names = append(names, a.strings.Value(name))
	})
	return names
}

// SetPropertyFlags applies ApplyPropFlags to the named own property of
// objID, reporting whether the property existed. A Protected property's
// flags are left untouched (spec's ASSetPropFlags, "protected-from-AS").
func (a *Arena) SetPropertyFlags(objID value.ObjectID, name string, setTrue, setFalse Flags) bool {
	obj := a.Get(objID)
	if obj == nil {
		return false
	}
	nameID, ok := a.strings.Find(name, false)
	if !ok {
		if foldedID, ok2 := a.strings.Find(name, true); ok2 {
			nameID, ok = foldedID, true
		}
	}
	if !ok {
		return false
	}
	p, ok := obj.Store.Get(nameID, 0)
	if !ok {
		return false
	}
	if p.Flags.Has(Protected) {
		return true
	}
	p.Flags = ApplyPropFlags(p.Flags, setTrue, setFalse)
	return true
}

// Free tombstones id: a subsequent Get reports nil, exactly like an
// out-of-range id, without shrinking the slice (other live ids must
// keep their index). Called only by the GC sweep phase, never during
// interpretation (spec 5: "object destruction never runs during
// interpretation — the collector runs at a quiescent point").
func (a *Arena) Free(id value.ObjectID) {
	if int(id) > 0 && int(id) < len(a.objects) {
		a.objects[id] = nil
	}
}
