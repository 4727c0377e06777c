package bytecode

import (
	"strconv"

	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/strtab"
	"github.com/gnashcore/avm1/internal/value"
)

func (f *frame) opGetVariable() {
	name := f.toString(f.pop("ActionGetVariable"))
	f.push(f.interp.Resolver.LookupName(f.env, name, f.foldCase()))
}

func (f *frame) opSetVariable() {
	v := f.pop("ActionSetVariable")
	name := f.toString(f.pop("ActionSetVariable"))
	f.interp.Resolver.WriteName(f.env, name, v, f.foldCase())
}

func (f *frame) opGetMember() {
	nameV := f.pop("ActionGetMember")
	objV := f.pop("ActionGetMember")
	objID, ref, isDisplay := f.objAndRef(objV)
	v, _ := f.interp.Resolver.GetProperty(ref, isDisplay, objID, f.toString(nameV))
	f.push(v)
}

func (f *frame) opSetMember() {
	v := f.pop("ActionSetMember")
	nameV := f.pop("ActionSetMember")
	objV := f.pop("ActionSetMember")
	objID, ref, isDisplay := f.objAndRef(objV)
	_ = f.interp.Resolver.SetProperty(ref, isDisplay, objID, f.toString(nameV), v, f.foldCase())
}

// opDelete implements ActionDelete (spec 4.5): deletes name from the
// named object directly, not through the scope view.
func (f *frame) opDelete() {
	nameV := f.pop("ActionDelete")
	objV := f.pop("ActionDelete")
	objID, _, _ := f.objAndRef(objV)
	nameID := f.interp.Arena.Intern(f.toString(nameV), f.foldCase())
	_, deleted := f.interp.Arena.DeleteMember(objID, nameID, 0)
	f.push(value.Bool(deleted))
}

// opDelete2 implements ActionDelete2 (spec 4.5): resolves a bare name
// against the scope view to find its owner, then deletes it there.
func (f *frame) opDelete2() {
	name := f.toString(f.pop("ActionDelete2"))
	deleted := false
	if owner, ok := f.interp.Resolver.FindOwner(f.env, name); ok {
		nameID := f.interp.Arena.Intern(name, f.foldCase())
		_, deleted = f.interp.Arena.DeleteMember(owner, nameID, 0)
	}
	f.push(value.Bool(deleted))
}

// localsTarget is where DefineLocal/DefineLocal2 declare their variable:
// the current CallFrame's own scope object if one exists, otherwise the
// current target directly (spec 4.5, top-level DoAction code has no
// call frame of its own).
func (f *frame) localsTarget() value.ObjectID {
	if cf := f.env.CurrentFrame(); cf != nil {
		return cf.Locals
	}
	objID, _, _ := f.interp.Arena.ResolveDisplay(f.env.Target())
	return objID
}

func (f *frame) opDefineLocal() {
	v := f.pop("ActionDefineLocal")
	name := f.toString(f.pop("ActionDefineLocal"))
	_ = f.interp.Arena.SetMember(f.localsTarget(), name, v, f.foldCase())
}

func (f *frame) opDefineLocal2() {
	name := f.toString(f.pop("ActionDefineLocal2"))
	_ = f.interp.Arena.SetMember(f.localsTarget(), name, value.Undefined(), f.foldCase())
}

// opEnumerate implements ActionEnumerate (spec 4.5): resolves the given
// variable name to an object, then pushes Null followed by each
// enumerable property name in reverse order, so popping the result
// yields the names in enumeration order with Null as the terminator.
func (f *frame) opEnumerate() {
	name := f.toString(f.pop("ActionEnumerate"))
	v := f.interp.Resolver.LookupName(f.env, name, f.foldCase())
	objID, _, _ := f.objAndRef(v)
	f.pushEnumeration(objID)
}

func (f *frame) opEnumerate2() {
	v := f.pop("ActionEnumerate2")
	objID, _, _ := f.objAndRef(v)
	f.pushEnumeration(objID)
}

func (f *frame) pushEnumeration(objID value.ObjectID) {
	names := f.collectEnumerableNames(objID)
	f.push(value.Null())
	for i := len(names) - 1; i >= 0; i-- {
		f.push(value.String(names[i]))
	}
}

// collectEnumerableNames walks objID's own properties (insertion order,
// skipping DontEnum ones) and then its interface/prototype chain,
// skipping any name already seen closer to objID — AS1/AS2's for..in
// walks inherited properties too (spec 4.2).
func (f *frame) collectEnumerableNames(objID value.ObjectID) []string {
	var names []string
	visitedObj := make(map[value.ObjectID]bool)
	visitedName := make(map[string]bool)
	var walk func(cur value.ObjectID)
	walk = func(cur value.ObjectID) {
		if cur == 0 || visitedObj[cur] {
			return
		}
		visitedObj[cur] = true
		obj := f.interp.Arena.Get(cur)
		if obj == nil {
			return
		}
		obj.Store.VisitNonHidden(func(nameID strtab.ID, ns uint32, p *runtime.Property) bool {
			name := f.interp.Resolver.Strings.Value(nameID)
			if name != "" && !visitedName[name] {
				visitedName[name] = true
				names = append(names, name)
			}
			return true
		})
		for _, iface := range obj.Interfaces {
			walk(iface)
		}
		if obj.Prototype != 0 {
			walk(obj.Prototype)
		}
	}
	walk(objID)
	return names
}

func (f *frame) opTypeOf() {
	v := f.pop("ActionTypeOf")
	isMovieClip := false
	if v.Kind() == value.KindDisplayRef {
		_, isMovieClip, _ = f.interp.Arena.ResolveDisplay(v.AsDisplayRef())
	}
	f.push(value.String(value.TypeOf(v, false, isMovieClip)))
}

func (f *frame) opTargetPath() {
	v := f.pop("ActionTargetPath")
	if v.Kind() == value.KindDisplayRef {
		f.push(value.String(v.AsDisplayRef().Path))
		return
	}
	f.push(value.String(""))
}

// opInitArray implements ActionInitArray (spec 4.5): pop count, then
// count elements, the first popped landing at the highest index (the
// reference player builds the array back-to-front).
func (f *frame) opInitArray() {
	count := int(f.toNumber(f.pop("ActionInitArray")))
	if count < 0 {
		count = 0
	}
	arr := f.interp.Arena.New(runtime.NewObject())
	if obj := f.interp.Arena.Get(arr); obj != nil {
		obj.ClassName = "Array"
	}
	for i := count - 1; i >= 0; i-- {
		v := f.pop("ActionInitArray")
		_ = f.interp.Arena.SetMember(arr, strconv.Itoa(i), v, false)
	}
	_ = f.interp.Arena.SetMember(arr, "length", value.Number(float64(count)), false)
	f.push(value.Object(arr))
}

// opInitObject implements ActionInitObject (spec 4.5): pop count, then
// count (value, name) pairs in that order, each pair assigning obj[name]
// = value.
func (f *frame) opInitObject() {
	count := int(f.toNumber(f.pop("ActionInitObject")))
	if count < 0 {
		count = 0
	}
	obj := f.interp.Arena.New(runtime.NewObject())
	for i := 0; i < count; i++ {
		v := f.pop("ActionInitObject")
		name := f.toString(f.pop("ActionInitObject"))
		_ = f.interp.Arena.SetMember(obj, name, v, f.foldCase())
	}
	f.push(value.Object(obj))
}

func (f *frame) opInstanceOf() {
	ctorV := f.pop("ActionInstanceOf")
	objV := f.pop("ActionInstanceOf")
	objID, _, _ := f.objAndRef(objV)
	ctorID, _, _ := f.objAndRef(ctorV)
	f.push(value.Bool(ctorID != 0 && f.instanceOf(objID, ctorID)))
}

func (f *frame) opCastOp() {
	ctorV := f.pop("ActionCastOp")
	objV := f.pop("ActionCastOp")
	objID, _, _ := f.objAndRef(objV)
	ctorID, _, _ := f.objAndRef(ctorV)
	if ctorID != 0 && f.instanceOf(objID, ctorID) {
		f.push(objV)
		return
	}
	f.push(value.Null())
}

// opImplementsOp implements ActionImplementsOp (spec 4.5): pops the
// constructor, then a count, then that many interface constructors,
// appending each onto the constructor's own prototype's Interfaces list
// (instanceOf also walks Interfaces, spec 4.4).
func (f *frame) opImplementsOp() {
	ctorV := f.pop("ActionImplementsOp")
	count := int(f.toNumber(f.pop("ActionImplementsOp")))
	if count < 0 {
		count = 0
	}
	ifaces := f.popN("ActionImplementsOp", count)

	ctorID, _, _ := f.objAndRef(ctorV)
	protoVal, _ := f.interp.Arena.GetMember(ctorID, "prototype")
	if protoVal.Kind() != value.KindObject {
		return
	}
	protoObj := f.interp.Arena.Get(protoVal.AsObjectID())
	if protoObj == nil {
		return
	}
	for _, ifaceV := range ifaces {
		ifaceID, _, _ := f.objAndRef(ifaceV)
		ifaceProto, _ := f.interp.Arena.GetMember(ifaceID, "prototype")
		if ifaceProto.Kind() == value.KindObject {
			protoObj.Interfaces = append(protoObj.Interfaces, ifaceProto.AsObjectID())
		}
	}
}

// opExtends implements ActionExtends (spec 4.5): wires sub.prototype to
// a fresh object whose own prototype is super.prototype, and points its
// __constructor__ back at super for `super()` calls.
func (f *frame) opExtends() {
	superV := f.pop("ActionExtends")
	subV := f.pop("ActionExtends")
	superID, _, _ := f.objAndRef(superV)
	subID, _, _ := f.objAndRef(subV)

	superProtoVal, _ := f.interp.Arena.GetMember(superID, "prototype")
	bridge := f.interp.Arena.New(runtime.NewObject())
	if bridgeObj := f.interp.Arena.Get(bridge); bridgeObj != nil {
		if superProtoVal.Kind() == value.KindObject {
			bridgeObj.Prototype = superProtoVal.AsObjectID()
		}
		bridgeObj.Constructor = superID
	}
	_ = f.interp.Arena.SetMember(bridge, "__constructor__", superV, false)
	_ = f.interp.Arena.SetMember(subID, "prototype", value.Object(bridge), false)
}
