package builtins

import (
	"strconv"
	"strings"

	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/value"
)

// propFlagsArena is the narrow slice of Arena that ASSetPropFlags needs:
// read a value's prototype link, enumerate an object's own property
// names, read an Array-like object's elements, and flip a named
// property's flags.
type propFlagsArena interface {
	Get(id value.ObjectID) *runtime.Object
	GetMember(origin value.ObjectID, name string) (value.Value, bool)
	OwnPropertyNames(id value.ObjectID) []string
	SetPropertyFlags(id value.ObjectID, name string, setTrue, setFalse runtime.Flags) bool
}

// ASSetPropFlags implements the global ASSetPropFlags(obj, propList,
// setTrue, setFalse=0) built-in (spec 6). propList is one of: null/
// undefined (apply to every own property of obj, then once to obj's
// prototype's own properties), a comma-separated value.String of
// names, or an Array-like Object (its "length" plus indexed elements,
// the same shape ActionInitArray itself builds).
func ASSetPropFlags(a propFlagsArena, obj value.ObjectID, propList value.Value, setTrue, setFalse runtime.Flags) {
	if propList.IsNull() || propList.IsUndefined() {
		applyToAllOwn(a, obj, setTrue, setFalse)
		if o := a.Get(obj); o != nil && o.Prototype != 0 {
			applyToAllOwn(a, o.Prototype, setTrue, setFalse)
		}
		return
	}

	var names []string
	if propList.IsObjectLike() {
		names = arrayLikeStrings(a, propList.AsObjectID())
	} else {
		for _, n := range strings.Split(propList.AsString(), ",") {
			n = strings.TrimSpace(n)
			if n != "" {
				names = append(names, n)
			}
		}
	}
	for _, name := range names {
		a.SetPropertyFlags(obj, name, setTrue, setFalse)
	}
}

func applyToAllOwn(a propFlagsArena, obj value.ObjectID, setTrue, setFalse runtime.Flags) {
	for _, name := range a.OwnPropertyNames(obj) {
		a.SetPropertyFlags(obj, name, setTrue, setFalse)
	}
}

// arrayLikeStrings reads arrID's "length" member and pulls that many
// stringified indexed elements (0..length-1), the layout
// ActionInitArray produces.
func arrayLikeStrings(a propFlagsArena, arrID value.ObjectID) []string {
	lengthV, ok := a.GetMember(arrID, "length")
	if !ok {
		return nil
	}
	n := int(lengthV.AsNumber())
	if n <= 0 {
		return nil
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		elemV, ok := a.GetMember(arrID, strconv.Itoa(i))
		if !ok {
			continue
		}
		names = append(names, elemV.AsString())
	}
	return names
}
