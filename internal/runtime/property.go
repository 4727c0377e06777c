// Package runtime implements the AVM1 object model: PropertyStore and
// Property (component C), Object (component D), Function (component E)
// and the per-object TriggerTable (component J). Values that cross into
// this package are the arena-indexed value.Value produced by
// internal/value; this package in turn is the implementation behind
// the value.Host interface, so it is the only place that actually
// dereferences a value.ObjectID.
package runtime

import (
	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/value"
)

// propKey is the composite (name, namespace) key a PropertyStore indexes
// by. namespace 0 is the wildcard: a property stored under namespace 0
// is visible to a lookup under any namespace.
type propKey struct {
	name strtab.ID
	ns   uint32
}

// Property is either a value slot or a getter/setter pair (spec 3.2).
// Exactly one of (IsAccessor == false, holding Value) or
// (IsAccessor == true, holding Getter/Setter) applies.
type Property struct {
	Flags Flags

	IsAccessor bool
	Value      value.Value // slot form

	Getter value.ObjectID // accessor form; 0 means absent
	Setter value.ObjectID
}

// PropertyStore is an insertion-ordered map from (name, ns) to Property,
// scoped to a single Object. It never walks a prototype chain — that
// traversal lives in Arena, which is the only thing that knows how to
// dereference the ObjectID a prototype link holds.
type PropertyStore struct {
	order   []propKey
	entries map[propKey]*Property
}

func newPropertyStore() PropertyStore {
	return PropertyStore{entries: make(map[propKey]*Property)}
}

// find resolves (name, ns) against this store only: an exact (name, ns)
// entry wins; otherwise a wildcard (name, 0) entry is tried when ns != 0.
func (ps *PropertyStore) find(name strtab.ID, ns uint32) (propKey, *Property, bool) {
	k := propKey{name, ns}
	if p, ok := ps.entries[k]; ok {
		return k, p, true
	}
	if ns != 0 {
		wk := propKey{name, 0}
		if p, ok := ps.entries[wk]; ok {
			return wk, p, true
		}
	}
	return propKey{}, nil, false
}

// SetSlot creates or overwrites an own value-slot property at the exact
// (name, ns) key, never a wildcard entry stored under a different
// namespace. Flags are only applied on first creation; call SetFlags to
// change them later.
func (ps *PropertyStore) SetSlot(name strtab.ID, ns uint32, v value.Value, flags Flags) {
	k := propKey{name, ns}
	if p, ok := ps.entries[k]; ok {
		p.IsAccessor = false
		p.Value = v
		return
	}
	p := &Property{Flags: flags, Value: v}
	ps.entries[k] = p
	ps.order = append(ps.order, k)
}

// DefineAccessor creates or overwrites a getter/setter property. Either
// getter or setter may be 0 (absent) but not both.
func (ps *PropertyStore) DefineAccessor(name strtab.ID, ns uint32, getter, setter value.ObjectID, flags Flags) {
	k := propKey{name, ns}
	if p, ok := ps.entries[k]; ok {
		p.IsAccessor = true
		p.Getter = getter
		p.Setter = setter
		return
	}
	p := &Property{Flags: flags, IsAccessor: true, Getter: getter, Setter: setter}
	ps.entries[k] = p
	ps.order = append(ps.order, k)
}

// Get returns the own property at (name, ns), if any.
func (ps *PropertyStore) Get(name strtab.ID, ns uint32) (*Property, bool) {
	_, p, ok := ps.find(name, ns)
	return p, ok
}

// SetFlags overwrites the flags of an existing own property. No-op if the
// property does not exist.
func (ps *PropertyStore) SetFlags(name strtab.ID, ns uint32, flags Flags) {
	if _, p, ok := ps.find(name, ns); ok {
		p.Flags = flags
	}
}

// Delete implements spec 3.2's delete contract: deleting a missing
// property reports (false, false); deleting a dontDelete property
// reports (true, false); otherwise the property is removed and it
// reports (true, true).
func (ps *PropertyStore) Delete(name strtab.ID, ns uint32) (found, deleted bool) {
	k, p, ok := ps.find(name, ns)
	if !ok {
		return false, false
	}
	if p.Flags.Has(DontDelete) {
		return true, false
	}
	delete(ps.entries, k)
	for i, ek := range ps.order {
		if ek == k {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}
	return true, true
}

// VisitNonHidden calls visit for every own property in insertion order,
// skipping those flagged DontEnum. Stops early if visit returns false.
func (ps *PropertyStore) VisitNonHidden(visit func(name strtab.ID, ns uint32, p *Property) bool) {
	for _, k := range ps.order {
		p, ok := ps.entries[k]
		if !ok || p.Flags.Has(DontEnum) {
			continue
		}
		if !visit(k.name, k.ns, p) {
			return
		}
	}
}

// VisitAll calls visit for every own property in insertion order,
// including those flagged DontEnum. Used by the GC mark phase (component
// K), which must see hidden properties too — a DontEnum flag hides a
// property from script enumeration, not from reachability.
func (ps *PropertyStore) VisitAll(visit func(name strtab.ID, ns uint32, p *Property)) {
	for _, k := range ps.order {
		if p, ok := ps.entries[k]; ok {
			visit(k.name, k.ns, p)
		}
	}
}

// Has reports whether an own property exists at (name, ns), regardless
// of its DontEnum flag (the `in` operator per spec scenario 4).
func (ps *PropertyStore) Has(name strtab.ID, ns uint32) bool {
	_, _, ok := ps.find(name, ns)
	return ok
}

// Count returns the number of own properties (including hidden ones).
func (ps *PropertyStore) Count() int { return len(ps.order) }
