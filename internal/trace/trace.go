// Package trace builds a JSON snapshot of interpreter state at a
// quiescent point — an opcode boundary, a call entry/exit, a host
// synchronization point between frames — for test assertions and
// debugging. It never drives execution itself; a caller (the
// Interpreter's own test harness, or a host's debugger hook) decides
// when to take one.
//
// Grounded on Gnash's server/debugger.cpp (the reference player's own
// debugger hooks into exactly these same boundaries — action
// execution, function call/return — to report state) and the spec's
// choice of a plain JSON document as the one supplementary
// introspection format worth keeping: gjson/sjson read/write one in
// pieces rather than requiring a struct roundtrip, so a test can assert
// on a single deep field (`gjson.Get(snapshot, "frames.0.name")`)
// without unmarshaling the whole document.
package trace

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/gnashcore/avm1/internal/env"
	"github.com/gnashcore/avm1/internal/runtime"
	"github.com/gnashcore/avm1/internal/value"
)

// Snapshot is a JSON document describing one Environment's state,
// optionally enriched with the live value behind any ObjectIDs it
// holds. The zero value is an empty JSON object.
type Snapshot string

// Capture builds a Snapshot of e's operand stack, call frames, and
// with-stack. arena may be nil, in which case object values are
// recorded only as their ObjectID (no className).
func Capture(e *env.Environment, arena *runtime.Arena) Snapshot {
	doc := "{}"
	doc, _ = sjson.Set(doc, "version", int(e.Version()))
	doc, _ = sjson.Set(doc, "target", e.Target().Path)
	doc, _ = sjson.Set(doc, "depth", e.Depth())
	doc, _ = sjson.Set(doc, "withDepth", e.WithDepth())

	// Environment exposes no random-access peek below the top, so a
	// snapshot only ever reports the top of stack (spec 7's own
	// diagnostics never dump the full operand stack either).
	if v, ok := e.Top(); ok {
		doc, _ = sjson.Set(doc, "stackTop", describeValue(v, arena))
	}
	doc, _ = sjson.Set(doc, "stackSize", e.Size())

	for i, f := range e.Frames() {
		path := "frames." + strconv.Itoa(i)
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		doc, _ = sjson.Set(doc, path+".name", name)
		doc, _ = sjson.Set(doc, path+".locals", uint32(f.Locals))
	}

	return Snapshot(doc)
}

// describeValue renders v as a small JSON-friendly map: its Kind always,
// plus whichever primitive field Kind implies. An object records its id
// and, given an arena, its className; its members are not dumped.
func describeValue(v value.Value, arena *runtime.Arena) map[string]any {
	desc := map[string]any{"kind": v.Kind().String()}
	switch v.Kind() {
	case value.KindBool:
		desc["value"] = v.AsBool()
	case value.KindNumber:
		desc["value"] = v.AsNumber()
	case value.KindString:
		desc["value"] = v.AsString()
	case value.KindObject, value.KindFunction:
		desc["id"] = uint32(v.AsObjectID())
		if arena != nil {
			if obj := arena.Get(v.AsObjectID()); obj != nil {
				desc["className"] = obj.ClassName
			}
		}
	case value.KindDisplayRef:
		ref := v.AsDisplayRef()
		desc["path"] = ref.Path
		desc["generation"] = ref.Generation
	}
	return desc
}

// Get reads one field out of a Snapshot by gjson path, e.g.
// "frames.0.name" or "stackTop.value".
func (s Snapshot) Get(path string) gjson.Result {
	return gjson.Get(string(s), path)
}

// String returns the raw JSON document.
func (s Snapshot) String() string { return string(s) }
